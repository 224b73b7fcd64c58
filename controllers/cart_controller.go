package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raulgarrigos/tapiocraft-server/middleware"
	"github.com/raulgarrigos/tapiocraft-server/services"
)

// CartController handles HTTP requests for the user's cart.
type CartController struct {
	service *services.CartService
}

// NewCartController creates a CartController.
func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

// GetCart returns the current user's cart, creating an empty one if absent.
// GET /cart
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := cc.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddProduct adds one unit of a product to the cart.
// POST /cart/products/:productId
func (cc *CartController) AddProduct(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	productID, ok := parseObjectID(c, "productId")
	if !ok {
		return
	}

	if err := cc.service.AddItem(c.Request.Context(), userID, productID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product added to cart"})
}

// RemoveProduct removes one unit of a product from the cart.
// DELETE /cart/products/:productId
func (cc *CartController) RemoveProduct(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	productID, ok := parseObjectID(c, "productId")
	if !ok {
		return
	}

	if err := cc.service.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart"})
}
