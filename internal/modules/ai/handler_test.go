package ai

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutesKeepsCallerHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var calls int
	counted := func(c *gin.Context) { calls++ }

	extra := make([]gin.HandlerFunc, 1, 4)
	extra[0] = counted

	svc := NewService(NewKeywordSuggester(nil), staticCategories{items: active}, nil, time.Second, nil)
	NewHandler(svc).RegisterRoutes(r.Group("/api"), extra...)

	assert.Nil(t, extra[:2][1], "caller's backing array must stay untouched")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ai/suggest-category", strings.NewReader(`{"text":"my sink pipe has a leak","lang":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, calls)
	assert.Contains(t, w.Body.String(), "Plumbing")
}
