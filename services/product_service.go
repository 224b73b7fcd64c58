package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/repository"
)

// ProductService serves the public product catalog reads.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService creates a ProductService.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// ListProducts returns every available product.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.FindAll(ctx)
}

// GetProduct returns a single product by id.
func (s *ProductService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}
