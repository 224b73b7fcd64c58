package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/raulgarrigos/tapiocraft-server/middleware"
)

func TestWriteServiceErrorHidesStorageCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(middleware.RequestLogger(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		writeServiceError(c, errors.New("mongo connection reset"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "mongo connection reset")

	// The cause still lands in the request log.
	entries := logs.FilterMessage("http_request").All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Contains(t, fields["errors"], "mongo connection reset")
}
