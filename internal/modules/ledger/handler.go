package ledger

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, admin *gin.RouterGroup) {
	protected.GET("/ledger/me", h.GetMine)
	admin.GET("/ledger", h.GetPlatform)
}

func (h *Handler) GetMine(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	sum, err := h.service.ProviderSummary(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": sum, "commission": h.service.Commission()})
}

func (h *Handler) GetPlatform(c *gin.Context) {
	sum, err := h.service.PlatformSummary(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": sum})
}
