package catalog

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

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/categories", h.GetCategories)
	v1.GET("/providers", h.GetProviders)
	v1.GET("/providers/:id", h.GetProvider)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.PATCH("/providers/me", middleware.RequireRole(string(domain.RoleProvider)), h.UpdateMyProfile)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/categories", h.GetAllCategories)
	admin.POST("/categories", h.CreateCategory)
	admin.PATCH("/categories/:id", h.UpdateCategory)
}

/* ---------- CATEGORY HANDLERS ---------- */

// GetCategories handles GET /api/v1/categories
func (h *Handler) GetCategories(c *gin.Context) {
	list, err := h.service.ListCategories(c.Request.Context(), false)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": list})
}

func (h *Handler) GetAllCategories(c *gin.Context) {
	list, err := h.service.ListCategories(c.Request.Context(), true)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": list})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": cat})
}

// UpdateCategory handles PATCH /api/v1/admin/categories/:id; is_active=false deactivates.
func (h *Handler) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": cat})
}

/* ---------- PROVIDER HANDLERS ---------- */

// GetProviders handles GET /api/v1/providers?category=
func (h *Handler) GetProviders(c *gin.Context) {
	list, err := h.service.ListProviders(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"providers": list})
}

func (h *Handler) GetProvider(c *gin.Context) {
	p, err := h.service.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": p})
}

func (h *Handler) UpdateMyProfile(c *gin.Context) {
	var req UpdateProviderProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.service.UpdateProviderProfile(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": p})
}
