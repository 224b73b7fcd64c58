package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/services"
)

// AuthController handles registration and login.
type AuthController struct {
	service *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register creates an account and returns an auth token.
// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "all fields must be filled"})
		return
	}

	token, err := ac.service.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// Login verifies credentials and returns an auth token.
// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "all fields must be filled"})
		return
	}

	token, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
