package fee

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeservices/internal/domain"
	"homeservices/internal/middleware"
	"homeservices/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, admin *gin.RouterGroup) {
	provider := middleware.RequireRole(string(domain.RoleProvider))

	protected.GET("/fees", provider, h.ListMine)
	protected.POST("/fees/:id/settle", provider, h.Settle)

	admin.GET("/fees", h.ListAll)
	admin.POST("/providers/:providerId/fees/:id", h.Manage)
}

func (h *Handler) ListMine(c *gin.Context) {
	out, err := h.service.ListForProvider(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Settle(c *gin.Context) {
	var req SettleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
	}

	f, err := h.service.SettleFee(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.Proof)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fee": f})
}

func (h *Handler) ListAll(c *gin.Context) {
	out, err := h.service.ListAll(c.Request.Context(), domain.FeeStatus(c.Query("status")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fees": out})
}

func (h *Handler) Manage(c *gin.Context) {
	var req ManageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	f, err := h.service.ManageFee(c.Request.Context(), c.GetString("user_id"), c.Param("providerId"), c.Param("id"), req.Action, req.NewAmount)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fee": f})
}
