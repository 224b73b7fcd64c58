package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/repository"
)

// CartService mutates the per-user cart together with the stock ledger.
// Adding a line item moves one unit from available stock into the cart's
// reservation; removing it moves the unit back. Stock is reserved first,
// so a cart write failure is compensated with a release.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a CartService.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// GetCart returns the user's cart, creating an empty one if absent.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	return s.carts.GetOrCreate(ctx, userID)
}

// AddItem reserves one unit of the product and adds it to the user's
// cart, incrementing the quantity in place when a line item already
// exists. Fails with repository.ErrOutOfStock or repository.ErrNotFound
// without touching the cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	if _, err := s.products.Reserve(ctx, productID, 1); err != nil {
		return err
	}

	if err := s.addLineItem(ctx, userID, productID); err != nil {
		// Undo the reservation so the unit returns to the pool.
		if relErr := s.products.Release(ctx, productID, 1); relErr != nil {
			s.logger.Error("failed to release stock after cart write failure",
				zap.String("product", productID.Hex()),
				zap.Error(relErr))
		}
		return err
	}
	return nil
}

func (s *CartService) addLineItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	matched, err := s.carts.IncrementItem(ctx, userID, productID, 1)
	if err != nil {
		return err
	}
	if matched {
		return nil
	}

	err = s.carts.PushItem(ctx, userID, productID)
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost the race against a concurrent add; the line item exists now.
		_, err = s.carts.IncrementItem(ctx, userID, productID, 1)
	}
	return err
}

// RemoveItem decrements the product's line item by one, dropping the
// line item when its quantity reaches zero, and releases one unit back
// to available stock. Fails with repository.ErrNotFound when the user has
// no cart or the product is not a line item; stock is left untouched.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	matched, err := s.carts.IncrementItem(ctx, userID, productID, -1)
	if err != nil {
		return err
	}
	if !matched {
		return repository.ErrNotFound
	}

	if err := s.carts.PruneEmptyItems(ctx, userID); err != nil {
		return err
	}

	if err := s.products.Release(ctx, productID, 1); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The product was deleted while sitting in the cart; nothing to
			// restore.
			s.logger.Warn("skipping stock release for deleted product",
				zap.String("product", productID.Hex()))
			return nil
		}
		return err
	}
	return nil
}
