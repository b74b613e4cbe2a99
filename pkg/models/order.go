package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is a state in the order lifecycle
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// fulfilment order of the forward path; cancelled sits outside it
var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// ParseOrderStatus accepts only the known lifecycle states
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	if status == StatusCancelled {
		return status, true
	}
	_, ok := statusRank[status]
	return status, ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Forward moves may skip states, staying put is always allowed, and only
// pending or processing orders can be cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return s == StatusPending || s == StatusProcessing
	}
	from, okFrom := statusRank[s]
	to, okTo := statusRank[next]
	return okFrom && okTo && to > from
}

// OrderItem snapshots a product at purchase time so later catalog edits do
// not change historical orders
type OrderItem struct {
	ID           string          `json:"id" bson:"_id"`
	OrderID      string          `json:"orderId" bson:"order_id"`
	ProductID    string          `json:"productId" bson:"product_id"`
	ProductName  string          `json:"productName" bson:"product_name"`
	Quantity     int             `json:"quantity" bson:"quantity"`
	Price        decimal.Decimal `json:"price" bson:"price"`
	ProductImage string          `json:"productImage,omitempty" bson:"product_image,omitempty"`
}

// Timeline tracks when the order reached each fulfilment state
type Timeline struct {
	ShippedAt   *time.Time `json:"shippedAt,omitempty" bson:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty" bson:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty" bson:"cancelled_at,omitempty"`
}

// Order represents a customer order together with its line items
type Order struct {
	ID              string          `json:"id" bson:"_id"`
	UserID          string          `json:"userId" bson:"user_id"`
	Status          OrderStatus     `json:"status" bson:"status"`
	Total           decimal.Decimal `json:"total" bson:"total"`
	ShippingAddress string          `json:"shippingAddress,omitempty" bson:"shipping_address,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty" bson:"payment_method,omitempty"`
	TrackingNumber  *string         `json:"trackingNumber" bson:"tracking_number,omitempty"`
	Timeline        Timeline        `json:"timeline" bson:"timeline"`
	Items           []OrderItem     `json:"items" bson:"items"`
	CreatedAt       time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updated_at"`
}

// PricedLines converts the order items into CalculateTotals input
func (o *Order) PricedLines() []PricedLine {
	lines := make([]PricedLine, len(o.Items))
	for i, item := range o.Items {
		lines[i] = PricedLine{Price: item.Price, Quantity: item.Quantity}
	}
	return lines
}

// GetItemCount returns the total number of units in the order
func (o *Order) GetItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// ApplyStatus sets the status and stamps the timeline. The tracking number is
// only replaced when a non-empty one is given. Transition legality is the
// caller's job.
func (o *Order) ApplyStatus(newStatus OrderStatus, trackingNumber *string, now time.Time) {
	o.Status = newStatus

	switch newStatus {
	case StatusShipped:
		if o.Timeline.ShippedAt == nil {
			o.Timeline.ShippedAt = &now
		}
	case StatusDelivered:
		if o.Timeline.DeliveredAt == nil {
			o.Timeline.DeliveredAt = &now
		}
	case StatusCancelled:
		if o.Timeline.CancelledAt == nil {
			o.Timeline.CancelledAt = &now
		}
	}

	if trackingNumber != nil && *trackingNumber != "" {
		tn := *trackingNumber
		o.TrackingNumber = &tn
	}
	o.UpdatedAt = now
}

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest places an order. Without Items the user's cart is used.
type CreateOrderRequest struct {
	UserID          string             `json:"userId"`
	ShippingAddress string             `json:"shippingAddress" binding:"max=500"`
	PaymentMethod   string             `json:"paymentMethod" binding:"max=50"`
	Items           []OrderItemRequest `json:"items" binding:"omitempty,dive"`
}

type UpdateOrderStatusRequest struct {
	Status         string  `json:"status" binding:"required,orderstatus"`
	TrackingNumber *string `json:"trackingNumber" binding:"omitempty,max=100"`
}
