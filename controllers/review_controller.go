package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raulgarrigos/tapiocraft-server/middleware"
	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/services"
)

// ReviewController handles posting and listing reviews.
type ReviewController struct {
	service *services.ReviewService
}

// NewReviewController creates a ReviewController.
func NewReviewController(service *services.ReviewService) *ReviewController {
	return &ReviewController{service: service}
}

// CreateReview posts a review for a purchased product or store.
// POST /review
func (rc *ReviewController) CreateReview(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	review, err := rc.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListProductReviews returns the reviews for a product.
// GET /review/product/:productId
func (rc *ReviewController) ListProductReviews(c *gin.Context) {
	productID, ok := parseObjectID(c, "productId")
	if !ok {
		return
	}

	reviews, err := rc.service.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// ListStoreReviews returns the reviews for a store.
// GET /review/store/:storeId
func (rc *ReviewController) ListStoreReviews(c *gin.Context) {
	storeID, ok := parseObjectID(c, "storeId")
	if !ok {
		return
	}

	reviews, err := rc.service.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
