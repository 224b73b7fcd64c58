package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raulgarrigos/tapiocraft-server/repository"
	"github.com/raulgarrigos/tapiocraft-server/services"
)

// parseObjectID reads a path parameter as a Mongo ObjectID, writing a 400
// response when it is malformed.
func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return primitive.NilObjectID, false
	}
	return id, true
}

// writeServiceError maps service and repository errors onto the HTTP
// error taxonomy. Storage causes are never exposed to the caller.
func writeServiceError(c *gin.Context, err error) {
	var fieldErr *services.FieldError
	switch {
	case errors.As(err, &fieldErr):
		body := gin.H{"errorMessage": fieldErr.Message}
		if fieldErr.Field != "" {
			body["field"] = fieldErr.Field
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, repository.ErrOutOfStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Out of stock"})
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, services.ErrProductGone):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A product in the cart no longer exists"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, services.ErrNotPurchased):
		c.JSON(http.StatusForbidden, gin.H{"error": "Reviews require a prior purchase"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid order status transition"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrAccountLocked):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed login attempts, try again later"})
	default:
		// The cause goes to the request log, never to the caller.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
