package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tour-booking-api/internal/config"
	appErrors "tour-booking-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devConfig() *config.Config {
	return &config.Config{Server: config.ServerConfig{Environment: "development"}}
}

func newFailingRouter(cfg *config.Config, err error) *gin.Engine {
	router := gin.New()
	router.Use(ErrorHandler(cfg))
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
		c.Abort()
	})
	return router
}

func doGet(router *gin.Engine) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestErrorHandler_OperationalErrorInProduction(t *testing.T) {
	router := newFailingRouter(prodConfig(), appErrors.ErrTourNotFound)

	w, body := doGet(router)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, appErrors.ErrTourNotFound.Message, body["message"])
	assert.NotContains(t, body, "error")
	assert.NotContains(t, body, "stack")
}

func TestErrorHandler_UnclassifiedErrorInProduction(t *testing.T) {
	router := newFailingRouter(prodConfig(), errors.New("pq: connection refused"))

	w, body := doGet(router)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "something went very wrong", body["message"])
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.NotContains(t, body, "stack")
}

func TestErrorHandler_UnclassifiedErrorInDevelopment(t *testing.T) {
	router := newFailingRouter(devConfig(), errors.New("pq: connection refused"))

	w, body := doGet(router)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["error"], "connection refused")
	require.Contains(t, body, "stack")
	assert.NotEmpty(t, body["stack"])
}

func TestErrorHandler_OperationalErrorInDevelopmentKeepsStatus(t *testing.T) {
	router := newFailingRouter(devConfig(), appErrors.ErrBadCredentials)

	w, body := doGet(router)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, appErrors.ErrBadCredentials.Message, body["message"])
}

func TestErrorHandler_NoErrorsNoBody(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(prodConfig()))
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "success")
}

func TestStatusWord(t *testing.T) {
	assert.Equal(t, "fail", statusWord(http.StatusBadRequest))
	assert.Equal(t, "fail", statusWord(http.StatusNotFound))
	assert.Equal(t, "error", statusWord(http.StatusInternalServerError))
	assert.Equal(t, "error", statusWord(http.StatusServiceUnavailable))
}
