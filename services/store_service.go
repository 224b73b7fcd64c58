package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/repository"
)

// StoreService manages merchant stores and their products. Every mutation
// verifies the acting user owns the store.
type StoreService struct {
	stores   repository.StoreRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewStoreService creates a StoreService.
func NewStoreService(stores repository.StoreRepository, products repository.ProductRepository, logger *zap.Logger) *StoreService {
	return &StoreService{stores: stores, products: products, logger: logger}
}

// CreateStore creates a store owned by the acting user.
func (s *StoreService) CreateStore(ctx context.Context, ownerID primitive.ObjectID, req *models.StoreCreateRequest) (*models.Store, error) {
	store := &models.Store{
		Name:        req.Name,
		Description: req.Description,
		Owner:       ownerID,
		Category:    req.Category,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// GetStore returns a store owned by the acting user.
func (s *StoreService) GetStore(ctx context.Context, ownerID, storeID primitive.ObjectID) (*models.Store, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.Owner != ownerID {
		return nil, ErrForbidden
	}
	return store, nil
}

// UpdateStore edits a store the acting user owns.
func (s *StoreService) UpdateStore(ctx context.Context, ownerID, storeID primitive.ObjectID, req *models.StoreUpdateRequest) error {
	if _, err := s.GetStore(ctx, ownerID, storeID); err != nil {
		return err
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.RefundPolicy != nil {
		updates["refundPolicy"] = *req.RefundPolicy
	}
	if len(updates) == 0 {
		return nil
	}
	return s.stores.Update(ctx, storeID, updates)
}

// DeleteStore removes a store the acting user owns.
func (s *StoreService) DeleteStore(ctx context.Context, ownerID, storeID primitive.ObjectID) error {
	if _, err := s.GetStore(ctx, ownerID, storeID); err != nil {
		return err
	}
	return s.stores.Delete(ctx, storeID)
}

// AddProduct creates a product inside a store the acting user owns.
func (s *StoreService) AddProduct(ctx context.Context, ownerID, storeID primitive.ObjectID, req *models.ProductCreateRequest) (*models.Product, error) {
	if _, err := s.GetStore(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Store:       storeID,
		Category:    req.Category,
		Stock:       req.Stock,
		Images:      req.Images,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created",
		zap.String("product", product.ID.Hex()),
		zap.String("store", storeID.Hex()))
	return product, nil
}

// ListProducts returns the products of a store.
func (s *StoreService) ListProducts(ctx context.Context, storeID primitive.ObjectID) ([]models.Product, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	return s.products.FindByStore(ctx, storeID)
}

// UpdateProduct edits a product inside a store the acting user owns.
// Stock is deliberately not editable here: it only moves through the
// ledger's reserve/release operations.
func (s *StoreService) UpdateProduct(ctx context.Context, ownerID, storeID, productID primitive.ObjectID, req *models.ProductUpdateRequest) error {
	if err := s.checkProductOwnership(ctx, ownerID, storeID, productID); err != nil {
		return err
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}
	if len(updates) == 0 {
		return nil
	}
	return s.products.Update(ctx, productID, updates)
}

// DeleteProduct removes a product from a store the acting user owns.
func (s *StoreService) DeleteProduct(ctx context.Context, ownerID, storeID, productID primitive.ObjectID) error {
	if err := s.checkProductOwnership(ctx, ownerID, storeID, productID); err != nil {
		return err
	}
	return s.products.Delete(ctx, productID)
}

func (s *StoreService) checkProductOwnership(ctx context.Context, ownerID, storeID, productID primitive.ObjectID) error {
	if _, err := s.GetStore(ctx, ownerID, storeID); err != nil {
		return err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.Store != storeID {
		return ErrForbidden
	}
	return nil
}
