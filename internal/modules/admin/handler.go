package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homeservices/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects admin to be guarded by middleware.AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// statistics
	admin.GET("/statistics", h.GetStats)

	// users moderation
	admin.GET("/users", h.GetUsers)
	admin.POST("/users/:id/block", h.BlockUser)
	admin.POST("/users/:id/unblock", h.UnblockUser)
}

// GetStats godoc
// @Summary		Platform statistics
// @Description	Counts of users, bookings, fees and withdrawals grouped by role or status.
// @Tags		Admin
// @Security	BearerAuth
// @Success		200	{object}	StatisticsResponse
// @Router		/admin/statistics [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GetUsers handles GET /api/v1/admin/users?role=&blocked=&q=&page=&limit=
func (h *Handler) GetUsers(c *gin.Context) {
	page := parseIntDefault(c.Query("page"), 1)
	limit := parseIntDefault(c.Query("limit"), 20)

	var filter UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, UserListResponse{
		Users: users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handler) BlockUser(c *gin.Context) {
	var req BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	u, err := h.service.BlockUser(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) UnblockUser(c *gin.Context) {
	u, err := h.service.UnblockUser(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func parseIntDefault(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
