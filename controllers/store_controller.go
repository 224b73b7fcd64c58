package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raulgarrigos/tapiocraft-server/middleware"
	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/services"
)

// StoreController handles merchant store and store-product management.
type StoreController struct {
	service *services.StoreService
}

// NewStoreController creates a StoreController.
func NewStoreController(service *services.StoreService) *StoreController {
	return &StoreController{service: service}
}

// CreateStore creates a store owned by the caller.
// POST /store
func (sc *StoreController) CreateStore(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.StoreCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	store, err := sc.service.CreateStore(c.Request.Context(), userID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, store)
}

// GetStore returns a store the caller owns.
// GET /store/:storeId
func (sc *StoreController) GetStore(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	storeID, ok := parseObjectID(c, "storeId")
	if !ok {
		return
	}

	store, err := sc.service.GetStore(c.Request.Context(), userID, storeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, store)
}

// UpdateStore edits a store the caller owns.
// PUT /store/:storeId
func (sc *StoreController) UpdateStore(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	storeID, ok := parseObjectID(c, "storeId")
	if !ok {
		return
	}

	var req models.StoreUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := sc.service.UpdateStore(c.Request.Context(), userID, storeID, &req); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store updated"})
}

// DeleteStore removes a store the caller owns.
// DELETE /store/:storeId
func (sc *StoreController) DeleteStore(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	storeID, ok := parseObjectID(c, "storeId")
	if !ok {
		return
	}

	if err := sc.service.DeleteStore(c.Request.Context(), userID, storeID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store deleted"})
}

// AddProduct creates a product inside a store the caller owns.
// POST /store/:storeId/products
func (sc *StoreController) AddProduct(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	storeID, ok := parseObjectID(c, "storeId")
	if !ok {
		return
	}

	var req models.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, err := sc.service.AddProduct(c.Request.Context(), userID, storeID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// ListProducts returns the products of a store.
// GET /store/:storeId/products
func (sc *StoreController) ListProducts(c *gin.Context) {
	storeID, ok := parseObjectID(c, "storeId")
	if !ok {
		return
	}

	products, err := sc.service.ListProducts(c.Request.Context(), storeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// UpdateProduct edits a product inside a store the caller owns.
// PUT /store/:storeId/products/:productId
func (sc *StoreController) UpdateProduct(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	storeID, ok := parseObjectID(c, "storeId")
	if !ok {
		return
	}
	productID, ok := parseObjectID(c, "productId")
	if !ok {
		return
	}

	var req models.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := sc.service.UpdateProduct(c.Request.Context(), userID, storeID, productID, &req); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct removes a product from a store the caller owns.
// DELETE /store/:storeId/products/:productId
func (sc *StoreController) DeleteProduct(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	storeID, ok := parseObjectID(c, "storeId")
	if !ok {
		return
	}
	productID, ok := parseObjectID(c, "productId")
	if !ok {
		return
	}

	if err := sc.service.DeleteProduct(c.Request.Context(), userID, storeID, productID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
