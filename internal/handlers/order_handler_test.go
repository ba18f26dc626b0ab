package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"canteen/internal/models"
	"canteen/internal/redis"
	"canteen/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderService returns canned results so the handler's error mapping can
// be exercised without a database.
type stubOrderService struct {
	order *models.Order
	err   error
}

func (s *stubOrderService) PlaceOrder(uint, []services.OrderLine) (*models.Order, error) {
	return s.order, s.err
}
func (s *stubOrderService) TransitionStatus(uint, string, string) (*models.Order, error) {
	return s.order, s.err
}
func (s *stubOrderService) RegenerateOTP(uint, uint) (*models.Order, error) {
	return s.order, s.err
}
func (s *stubOrderService) VerifyOTPAndComplete(uint, string, string) (*models.Order, error) {
	return s.order, s.err
}
func (s *stubOrderService) DeleteOrder(uint, uint, string) error {
	return s.err
}
func (s *stubOrderService) GetOrder(uint) (*models.Order, error) {
	return s.order, s.err
}
func (s *stubOrderService) ListOrders(uint, string) ([]models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, nil
}

func testRouter(svc services.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewOrderHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(sessionKey, &redis.SessionData{UserID: 1, Role: string(models.RoleKitchen), Name: "Kitchen Staff"})
	})
	router.POST("/api/orders", handler.Create)
	router.PUT("/api/orders/:id/status", handler.UpdateStatus)
	router.POST("/api/orders/:id/verify", handler.Verify)
	router.DELETE("/api/orders/:id", handler.Delete)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderMapsInsufficientStock(t *testing.T) {
	svc := &stubOrderService{err: &services.InsufficientStockError{ItemName: "Milk Tea", Available: 1, Requested: 2}}
	router := testRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/api/orders",
		gin.H{"items": []gin.H{{"menuItemId": 2, "quantity": 2}}})

	require.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Milk Tea", body["item"])
	assert.Equal(t, float64(1), body["available"])
	assert.Equal(t, float64(2), body["requested"])
}

func TestUpdateStatusMapsInvalidTransition(t *testing.T) {
	svc := &stubOrderService{err: &services.InvalidTransitionError{From: "Pending", To: "Completed"}}
	router := testRouter(svc)

	rec := doJSON(t, router, http.MethodPut, "/api/orders/7/status", gin.H{"status": "Completed"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Pending", body["from"])
	assert.Equal(t, "Completed", body["to"])
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"invalid state", services.ErrInvalidState, http.StatusBadRequest},
		{"invalid otp", services.ErrInvalidOTP, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testRouter(&stubOrderService{err: tt.err})
			rec := doJSON(t, router, http.MethodPost, "/api/orders/7/verify", gin.H{"otp": "12345"})
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestDeleteOrderSuccess(t *testing.T) {
	router := testRouter(&stubOrderService{})
	rec := doJSON(t, router, http.MethodDelete, "/api/orders/7", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	// The service is never reached: unknown status names fail at the handler.
	router := testRouter(&stubOrderService{err: services.ErrNotFound})
	rec := doJSON(t, router, http.MethodPut, "/api/orders/7/status", gin.H{"status": "Cancelled"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cancelled")
}

func TestInvalidOrderIDRejected(t *testing.T) {
	router := testRouter(&stubOrderService{})
	rec := doJSON(t, router, http.MethodPut, "/api/orders/abc/status", gin.H{"status": "Preparing"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
