package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rwangliu/library-lending-server/internal/models"
)

// ListUsers handles GET /api/users (admin)
func (h *Handler) ListUsers(c *gin.Context) {
	filter := parseListFilter(c)

	users, pagination, err := h.svc.ListUsers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserListResponse{
		Status:     "success",
		Users:      users,
		Pagination: pagination,
	})
}

// GetUser handles GET /api/users/:id (admin)
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "user": user})
}

// UpdateUser handles PUT /api/users/:id (admin)
func (h *Handler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "user": user})
}

// DeactivateUser handles DELETE /api/users/:id (admin)
func (h *Handler) DeactivateUser(c *gin.Context) {
	if err := h.svc.DeactivateUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Status:  "success",
		Message: "User deactivated successfully",
	})
}
