package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raulgarrigos/tapiocraft-server/middleware"
	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/services"
)

// CheckoutController handles placing orders from carts.
type CheckoutController struct {
	service *services.CheckoutService
}

// NewCheckoutController creates a CheckoutController.
func NewCheckoutController(service *services.CheckoutService) *CheckoutController {
	return &CheckoutController{service: service}
}

// Checkout places an order for the products in the cart.
// POST /checkout/:cartId/order
func (cc *CheckoutController) Checkout(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	cartID, ok := parseObjectID(c, "cartId")
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := cc.service.Checkout(c.Request.Context(), userID, cartID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": order})
}
