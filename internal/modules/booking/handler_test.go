package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeservices/internal/domain"
	"homeservices/internal/middleware"
	"homeservices/internal/pkg/jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

type apiHarness struct {
	*fixture
	router *gin.Engine
	tokens *jwt.Service
}

func setupAPI(t *testing.T) *apiHarness {
	gin.SetMode(gin.TestMode)
	f := setupFixture(t)
	tokens := jwt.New("handler-test-secret", time.Hour)

	r := gin.New()
	api := r.Group("/api/v1", middleware.JWTAuth(tokens))
	NewHandler(f.svc).RegisterRoutes(api)

	return &apiHarness{fixture: f, router: r, tokens: tokens}
}

func (h *apiHarness) do(t *testing.T, u *domain.User, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if u != nil {
		token, err := h.tokens.GenerateToken(u.ID, string(u.Role))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decodeBooking(t *testing.T, env envelope) domain.ServiceRequest {
	t.Helper()
	var data struct {
		Booking domain.ServiceRequest `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Booking
}

func TestHandler_OfferFlow(t *testing.T) {
	h := setupAPI(t)

	code, env := h.do(t, h.customer, http.MethodPost, "/api/v1/bookings", gin.H{
		"category":    "Plumbing",
		"description": "Blocked drain",
		"address":     "4 Oak Rd",
	})
	require.Equal(t, http.StatusCreated, code)
	b := decodeBooking(t, env)
	assert.Equal(t, domain.BookingPending, b.Status)

	code, env = h.do(t, h.provider, http.MethodPost, "/api/v1/bookings/"+b.ID+"/offers", gin.H{"min_price": 400, "max_price": 600})
	require.Equal(t, http.StatusCreated, code)
	b = decodeBooking(t, env)
	require.Len(t, b.Offers, 1)

	code, env = h.do(t, h.customer, http.MethodPost, "/api/v1/bookings/"+b.ID+"/offers/"+b.Offers[0].ID+"/accept", nil)
	require.Equal(t, http.StatusOK, code)
	b = decodeBooking(t, env)
	assert.Equal(t, domain.BookingAccepted, b.Status)
	assert.Equal(t, int64(400), b.Price)

	code, env = h.do(t, h.customer, http.MethodPatch, "/api/v1/bookings/"+b.ID+"/status", gin.H{"status": "IN_PROGRESS"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	code, _ = h.do(t, h.provider, http.MethodPatch, "/api/v1/bookings/"+b.ID+"/status", gin.H{"status": "IN_PROGRESS"})
	assert.Equal(t, http.StatusOK, code)

	code, env = h.do(t, h.customer, http.MethodPost, "/api/v1/bookings/"+b.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	h := setupAPI(t)

	code, env := h.do(t, nil, http.MethodGet, "/api/v1/bookings", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, env = h.do(t, h.customer, http.MethodPost, "/api/v1/bookings", gin.H{"category": "Plumbing"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = h.do(t, h.customer, http.MethodPost, "/api/v1/bookings", gin.H{
		"category":    "Retired",
		"description": "Anything",
		"address":     "Nowhere",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = h.do(t, h.customer, http.MethodGet, "/api/v1/bookings/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestHandler_MessagesAndUnreadCount(t *testing.T) {
	h := setupAPI(t)
	b := h.create(t, h.provider.ID)

	code, _ := h.do(t, h.provider, http.MethodPost, "/api/v1/bookings/"+b.ID+"/messages", gin.H{"text": "On my way"})
	require.Equal(t, http.StatusCreated, code)

	code, env := h.do(t, h.customer, http.MethodGet, "/api/v1/messages/unread-count", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"unread_count":1}`, string(env.Data))

	code, env = h.do(t, h.customer, http.MethodPost, "/api/v1/bookings/"+b.ID+"/messages/read", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"updated":1}`, string(env.Data))

	code, _ = h.do(t, h.rival, http.MethodGet, "/api/v1/bookings/"+b.ID+"/messages", nil)
	assert.Equal(t, http.StatusForbidden, code)
}
