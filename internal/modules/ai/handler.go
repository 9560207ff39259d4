package ai

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeservices/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type SuggestRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
	Lang string `json:"lang" binding:"max=8"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, extra ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, extra...), h.SuggestCategory)
	rg.POST("/ai/suggest-category", handlers...)
}

// SuggestCategory answers with a null suggestion when the model cannot help.
func (h *Handler) SuggestCategory(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"suggestion": h.service.Suggest(c.Request.Context(), req.Text, req.Lang)})
}
