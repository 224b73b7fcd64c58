package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/raulgarrigos/tapiocraft-server/middleware"
	"github.com/raulgarrigos/tapiocraft-server/services"
)

// orderTestRouter mounts the list route behind a stub identity. The
// service never runs in these cases, so its repositories stay nil.
func orderTestRouter(authID primitive.ObjectID, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewOrderController(services.NewOrderService(nil, nil, nil, zap.NewNop()))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if authenticated {
			c.Set(middleware.UserContextKey, authID)
		}
		c.Next()
	})
	router.GET("/orders/:userId/list", ctrl.ListOrders)
	return router
}

func TestOrderControllerPathIdentity(t *testing.T) {
	authID := primitive.NewObjectID()

	t.Run("rejects a mismatched user id with 403", func(t *testing.T) {
		router := orderTestRouter(authID, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders/"+primitive.NewObjectID().Hex()+"/list", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rejects a malformed user id with 400", func(t *testing.T) {
		router := orderTestRouter(authID, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders/not-an-id/list", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects an unauthenticated request with 401", func(t *testing.T) {
		router := orderTestRouter(authID, false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders/"+authID.Hex()+"/list", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
