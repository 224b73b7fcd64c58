package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raulgarrigos/tapiocraft-server/middleware"
	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/services"
)

// OrderController handles order reads and status changes.
type OrderController struct {
	service *services.OrderService
}

// NewOrderController creates an OrderController.
func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// pathUser resolves the :userId path parameter and verifies it matches
// the authenticated identity.
func (oc *OrderController) pathUser(c *gin.Context) (primitive.ObjectID, bool) {
	authID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return primitive.NilObjectID, false
	}
	pathID, ok := parseObjectID(c, "userId")
	if !ok {
		return primitive.NilObjectID, false
	}
	if pathID != authID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return primitive.NilObjectID, false
	}
	return authID, true
}

// ListOrders returns the user's orders, newest first.
// GET /orders/:userId/list
func (oc *OrderController) ListOrders(c *gin.Context) {
	userID, ok := oc.pathUser(c)
	if !ok {
		return
	}

	orders, err := oc.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order with its references resolved.
// GET /orders/:userId/:orderId
func (oc *OrderController) GetOrder(c *gin.Context) {
	userID, ok := oc.pathUser(c)
	if !ok {
		return
	}
	orderID, ok := parseObjectID(c, "orderId")
	if !ok {
		return
	}

	order, err := oc.service.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder cancels an order and restores its stock.
// PUT /orders/:userId/:orderId
func (oc *OrderController) CancelOrder(c *gin.Context) {
	userID, ok := oc.pathUser(c)
	if !ok {
		return
	}
	orderID, ok := parseObjectID(c, "orderId")
	if !ok {
		return
	}

	order, err := oc.service.Cancel(c.Request.Context(), userID, orderID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order": order})
}

// UpdateStatus moves an order forward in its lifecycle.
// PUT /orders/:userId/:orderId/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	userID, ok := oc.pathUser(c)
	if !ok {
		return
	}
	orderID, ok := parseObjectID(c, "orderId")
	if !ok {
		return
	}

	var req models.OrderStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.service.UpdateStatus(c.Request.Context(), userID, orderID, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
