package booking

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
	customer := middleware.RequireRole(string(domain.RoleCustomer))
	provider := middleware.RequireRole(string(domain.RoleProvider))

	b := rg.Group("/bookings")
	{
		b.POST("", customer, h.CreateBooking)
		b.GET("", h.ListBookings)
		b.GET("/:id", h.GetBooking)

		b.GET("/:id/offers", h.ListOffers)
		b.POST("/:id/offers", provider, h.MakeOffer)
		b.POST("/:id/offers/:offerId/accept", customer, h.AcceptOffer)
		b.POST("/:id/offers/:offerId/decline", customer, h.DeclineOffer)

		b.POST("/:id/accept", provider, h.AcceptJob)
		b.POST("/:id/decline", provider, h.DeclineJob)
		b.POST("/:id/provider-cancel", provider, h.ProviderCancel)
		b.PATCH("/:id/status", provider, h.UpdateStatus)

		b.POST("/:id/cancel", customer, h.CancelBooking)
		b.POST("/:id/rating", customer, h.RateService)

		b.GET("/:id/messages", h.ListMessages)
		b.POST("/:id/messages", h.SendMessage)
		b.POST("/:id/messages/read", h.MarkMessagesRead)
	}

	rg.GET("/messages/unread-count", h.UnreadCount)
}

func actorFrom(c *gin.Context) Actor {
	return Actor{ID: c.GetString("user_id"), Role: domain.UserRole(c.GetString("role"))}
}

func (h *Handler) respond(c *gin.Context, status int, b *domain.ServiceRequest, err error) {
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, status, gin.H{"booking": b})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	req.CustomerID = c.GetString("user_id")

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	h.respond(c, http.StatusCreated, b, err)
}

func (h *Handler) ListBookings(c *gin.Context) {
	status := domain.BookingStatus(c.Query("status"))

	list, err := h.service.List(c.Request.Context(), actorFrom(c), status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), c.Param("id"), actorFrom(c))
	h.respond(c, http.StatusOK, b, err)
}

func (h *Handler) ListOffers(c *gin.Context) {
	offers, err := h.service.OpenOffers(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offers": offers})
}

func (h *Handler) MakeOffer(c *gin.Context) {
	var req MakeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.MakeOffer(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.MinPrice, req.MaxPrice)
	h.respond(c, http.StatusCreated, b, err)
}

func (h *Handler) AcceptOffer(c *gin.Context) {
	b, err := h.service.AcceptOffer(c.Request.Context(), c.Param("id"), c.Param("offerId"), c.GetString("user_id"))
	h.respond(c, http.StatusOK, b, err)
}

func (h *Handler) DeclineOffer(c *gin.Context) {
	b, err := h.service.DeclineOffer(c.Request.Context(), c.Param("id"), c.Param("offerId"), c.GetString("user_id"))
	h.respond(c, http.StatusOK, b, err)
}

func (h *Handler) AcceptJob(c *gin.Context) {
	b, err := h.service.AcceptJob(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	h.respond(c, http.StatusOK, b, err)
}

func (h *Handler) DeclineJob(c *gin.Context) {
	b, err := h.service.ProviderDeclineJob(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	h.respond(c, http.StatusOK, b, err)
}

func (h *Handler) ProviderCancel(c *gin.Context) {
	b, err := h.service.ProviderCancelJob(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	h.respond(c, http.StatusOK, b, err)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.Status, req.FinalPrice)
	h.respond(c, http.StatusOK, b, err)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	b, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	h.respond(c, http.StatusOK, b, err)
}

func (h *Handler) RateService(c *gin.Context) {
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.RateService(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.Rating, req.Review)
	h.respond(c, http.StatusOK, b, err)
}

func (h *Handler) ListMessages(c *gin.Context) {
	msgs, err := h.service.Messages(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.Text)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) MarkMessagesRead(c *gin.Context) {
	n, err := h.service.MarkMessagesRead(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	n, err := h.service.UnreadMessageCount(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread_count": n})
}
