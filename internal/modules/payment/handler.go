package payment

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/payment", middleware.RequireRole(string(domain.RoleCustomer)), h.ProcessPayment)
}

// ProcessPayment godoc
// @Summary      Pay for a completed booking
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path string true "Booking ID"
// @Param        body body ProcessPaymentRequest true "Payment method"
// @Success      200 {object} Result
// @Failure      400 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /bookings/{id}/payment [post]
func (h *Handler) ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.ProcessPayment(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.Method)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
