package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/repository"
)

// CheckoutService converts a cart into an order. Pricing is recomputed
// from the live product documents at checkout time, the touched stores
// are collected, the order is persisted with status pending and the cart
// is deleted. No stock arithmetic happens here: every unit in the cart
// was already reserved when it was added.
type CheckoutService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   *zap.Logger
}

// NewCheckoutService creates a CheckoutService.
func NewCheckoutService(carts repository.CartRepository, products repository.ProductRepository, orders repository.OrderRepository, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{carts: carts, products: products, orders: orders, logger: logger}
}

// Checkout places an order for the contents of the cart. The cart must
// belong to the acting user and contain at least one line item.
func (s *CheckoutService) Checkout(ctx context.Context, userID, cartID primitive.ObjectID, req *models.CheckoutRequest) (*models.Order, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if cart.User != userID {
		return nil, ErrForbidden
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var orderPrice float64
	var stores []primitive.ObjectID
	seen := make(map[primitive.ObjectID]struct{})
	items := make([]models.OrderItem, 0, len(cart.Items))

	for _, item := range cart.Items {
		product, err := s.products.FindByID(ctx, item.Product)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductGone
		}
		if err != nil {
			return nil, err
		}

		orderPrice += product.Price * float64(item.Quantity)
		if _, ok := seen[product.Store]; !ok {
			seen[product.Store] = struct{}{}
			stores = append(stores, product.Store)
		}
		items = append(items, models.OrderItem{Product: item.Product, Quantity: item.Quantity})
	}

	order := &models.Order{
		User:            userID,
		Name:            req.Name,
		Surname:         req.Surname,
		Stores:          stores,
		ShippingAddress: req.ShippingAddress,
		Products:        items,
		Status:          models.OrderStatusPending,
		OrderPrice:      orderPrice,
		PaymentMethod:   req.PaymentMethod,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// A checked-out cart is gone; the next add creates a fresh one.
	if err := s.carts.Delete(ctx, cartID); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order", order.ID.Hex()),
		zap.String("user", userID.Hex()),
		zap.Float64("orderPrice", orderPrice),
		zap.Int("items", len(items)),
		zap.Int("stores", len(stores)))

	return order, nil
}
