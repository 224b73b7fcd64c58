package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raulgarrigos/tapiocraft-server/services"
)

// ProductController serves the public product catalog.
type ProductController struct {
	service *services.ProductService
}

// NewProductController creates a ProductController.
func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// ListProducts returns every available product.
// GET /products
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.service.ListProducts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product.
// GET /products/:productId
func (pc *ProductController) GetProduct(c *gin.Context) {
	productID, ok := parseObjectID(c, "productId")
	if !ok {
		return
	}

	product, err := pc.service.GetProduct(c.Request.Context(), productID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}
