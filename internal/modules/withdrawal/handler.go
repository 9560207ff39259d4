package withdrawal

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

	protected.POST("/withdrawals", provider, h.Request)
	protected.GET("/withdrawals", provider, h.ListMine)

	admin.GET("/withdrawals", h.ListAll)
	admin.POST("/withdrawals/:id", h.Process)
}

func (h *Handler) Request(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	w, err := h.service.RequestWithdrawal(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"withdrawal": w})
}

func (h *Handler) ListMine(c *gin.Context) {
	out, err := h.service.ListForProvider(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ListAll(c *gin.Context) {
	out, err := h.service.ListAll(c.Request.Context(), domain.WithdrawalStatus(c.Query("status")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdrawals": out})
}

func (h *Handler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	w, err := h.service.ProcessWithdrawal(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdrawal": w})
}
