package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	// TaxRate is applied to every cart and order subtotal (13% HST)
	TaxRate = decimal.RequireFromString("0.13")
	// FreeShippingThreshold is the subtotal that must be exceeded for free shipping
	FreeShippingThreshold = decimal.NewFromInt(50)
	// ShippingFee is charged when the subtotal does not exceed the threshold
	ShippingFee = decimal.RequireFromString("9.99")
)

// CartItem is one line of a user's cart. There is at most one per (UserID, ProductID).
type CartItem struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	ProductID string    `json:"productId" bson:"product_id"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// CartLine is a cart item joined with its current product
type CartLine struct {
	CartItem
	Product  Product         `json:"product"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Cart is the read model returned to clients; totals are derived, never stored
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartLine `json:"items"`
	Totals Totals     `json:"totals"`
}

// Totals is the financial breakdown of a cart or order
type Totals struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Tax                   decimal.Decimal `json:"tax"`
	Shipping              decimal.Decimal `json:"shipping"`
	Total                 decimal.Decimal `json:"total"`
	ItemCount             int             `json:"itemCount"`
	FreeShippingRemaining decimal.Decimal `json:"freeShippingRemaining"`
}

// PricedLine is the minimal input for CalculateTotals
type PricedLine struct {
	Price    decimal.Decimal
	Quantity int
}

// LineSubtotal returns price * quantity
func LineSubtotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// CalculateTotals is the single pricing policy for carts and orders:
// tax is 13% of the subtotal rounded to cents, shipping is free only when the
// subtotal is strictly above 50, and an empty cart ships nothing.
func CalculateTotals(lines []PricedLine) Totals {
	var totals Totals
	for _, line := range lines {
		totals.Subtotal = totals.Subtotal.Add(LineSubtotal(line.Price, line.Quantity))
		totals.ItemCount += line.Quantity
	}

	totals.Tax = totals.Subtotal.Mul(TaxRate).Round(2)

	if totals.ItemCount > 0 && !totals.Subtotal.GreaterThan(FreeShippingThreshold) {
		totals.Shipping = ShippingFee
		totals.FreeShippingRemaining = FreeShippingThreshold.Sub(totals.Subtotal)
	}

	totals.Total = totals.Subtotal.Add(totals.Tax).Add(totals.Shipping)
	return totals
}

type AddToCartRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"gte=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}
