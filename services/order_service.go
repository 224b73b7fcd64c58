package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/repository"
)

// allowedTransitions is the order status state machine. Delivered and
// cancelled are terminal; cancellation is reachable from every
// non-terminal state.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderService reads orders and drives their status lifecycle.
// Cancellation is the only transition with side effects: it restores the
// stock sold at checkout back to the pool.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	stores   repository.StoreRepository
	logger   *zap.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, stores repository.StoreRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, stores: stores, logger: logger}
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// GetOrder returns a single order with its product and store references
// resolved. Line items whose product has since been deleted keep a nil
// product. The order must belong to the acting user.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID primitive.ObjectID) (*models.PopulatedOrder, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.User != userID {
		return nil, ErrForbidden
	}

	productIDs := make([]primitive.ObjectID, 0, len(order.Products))
	for _, item := range order.Products {
		productIDs = append(productIDs, item.Product)
	}
	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	populated := &models.PopulatedOrder{Order: *order}
	for _, item := range order.Products {
		populated.PopulatedProducts = append(populated.PopulatedProducts, models.PopulatedOrderItem{
			Product:  byID[item.Product],
			Quantity: item.Quantity,
		})
	}

	stores, err := s.stores.FindByIDs(ctx, order.Stores)
	if err != nil {
		return nil, err
	}
	populated.PopulatedStores = stores

	return populated, nil
}

// Cancel sets the order's status to cancelled and releases every line
// item's quantity back to the stock ledger. Restoration failures are
// isolated per item: a deleted product is skipped and the remaining
// items are still restored. The order must belong to the acting user.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.User != userID {
		return nil, ErrForbidden
	}
	if !transitionAllowed(order.Status, models.OrderStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	// Compare-and-swap on the status read above: if a concurrent
	// transition won in between, this cancel must not run the restore.
	if err := s.orders.UpdateStatusFrom(ctx, orderID, order.Status, models.OrderStatusCancelled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	order.Status = models.OrderStatusCancelled

	for _, item := range order.Products {
		if err := s.products.Release(ctx, item.Product, item.Quantity); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Warn("skipping stock restore for deleted product",
					zap.String("order", orderID.Hex()),
					zap.String("product", item.Product.Hex()))
				continue
			}
			s.logger.Error("failed to restore stock on cancellation",
				zap.String("order", orderID.Hex()),
				zap.String("product", item.Product.Hex()),
				zap.Error(err))
		}
	}

	s.logger.Info("order cancelled",
		zap.String("order", orderID.Hex()),
		zap.Int("items", len(order.Products)))

	return order, nil
}

// UpdateStatus applies a forward transition. It performs no side effects
// beyond the status write; cancellations must go through Cancel so stock
// is restored.
func (s *OrderService) UpdateStatus(ctx context.Context, userID, orderID primitive.ObjectID, status string) (*models.Order, error) {
	if status == models.OrderStatusCancelled {
		return s.Cancel(ctx, userID, orderID)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.User != userID {
		return nil, ErrForbidden
	}
	if !transitionAllowed(order.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateStatusFrom(ctx, orderID, order.Status, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	order.Status = status
	return order, nil
}
