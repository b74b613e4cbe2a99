package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string, trackingNumber *string) (*models.Order, error)
	TrackOrder(ctx context.Context, trackingNumber string) (*models.Order, error)
}

func NewOrderService(orders store.OrderRepository, cart store.CartRepository, products store.ProductRepository) OrderService {
	return &orderService{orders: orders, cart: cart, products: products, now: time.Now}
}

type orderService struct {
	orders   store.OrderRepository
	cart     store.CartRepository
	products store.ProductRepository
	now      func() time.Time
}

func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	userID := userOrGuest(req.UserID)

	requested := req.Items
	fromCart := len(requested) == 0
	if fromCart {
		cartItems, err := s.cart.ListCartItems(ctx, userID)
		if err != nil {
			return nil, errors.Wrap(err, "list cart items")
		}
		for _, item := range cartItems {
			requested = append(requested, models.OrderItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
		}
	}
	if len(requested) == 0 {
		return nil, invalidField(ErrEmptyOrder, "items", "Order must contain at least one item", "required")
	}

	now := s.now().UTC()
	order := &models.Order{
		ID:              models.NewID(),
		UserID:          userID,
		Status:          models.StatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Items:           make([]models.OrderItem, 0, len(requested)),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// resolve everything first so a missing product leaves no trace
	for i, line := range requested {
		if line.Quantity < 1 {
			return nil, invalidField(ErrInvalidQuantity, "items", "Every item needs a quantity of at least 1", "min")
		}
		product, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, errors.Wrapf(err, "order item %d", i)
		}
		order.Items = append(order.Items, models.OrderItem{
			ID:           models.NewID(),
			OrderID:      order.ID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     line.Quantity,
			Price:        product.Price,
			ProductImage: product.PrimaryImage(),
		})
	}
	order.Total = models.CalculateTotals(order.PricedLines()).Total

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if fromCart {
		if err := s.cart.ClearCart(ctx, userID); err != nil {
			log.WithError(err).WithField("order_id", order.ID).Warn("Order placed but cart could not be cleared")
		}
	}

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"items":    order.GetItemCount(),
		"total":    order.Total.String(),
	}).Info("Order created")
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.ListOrders(ctx, userOrGuest(userID))
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id, status string, trackingNumber *string) (*models.Order, error) {
	next, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, invalidField(nil, "status", "Status must be one of pending, processing, shipped, delivered, cancelled", "orderstatus")
	}

	return s.orders.UpdateOrder(ctx, id, func(order *models.Order) error {
		if !order.Status.CanTransitionTo(next) {
			return errors.Wrapf(ErrInvalidStatusTransition, "%s to %s", order.Status, next)
		}
		order.ApplyStatus(next, trackingNumber, s.now().UTC())
		return nil
	})
}

func (s *orderService) TrackOrder(ctx context.Context, trackingNumber string) (*models.Order, error) {
	return s.orders.FindOrderByTrackingNumber(ctx, trackingNumber)
}
