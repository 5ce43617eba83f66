package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rwangliu/library-lending-server/internal/models"
)

// GetMostBorrowedBooks handles GET /api/reports/most-borrowed (admin)
func (h *Handler) GetMostBorrowedBooks(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	books, err := h.svc.MostBorrowedBooks(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MostBorrowedResponse{
		Status:            "success",
		MostBorrowedBooks: books,
	})
}

// GetActiveMembers handles GET /api/reports/active-members (admin)
func (h *Handler) GetActiveMembers(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	members, err := h.svc.ActiveMembers(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ActiveMembersResponse{
		Status:        "success",
		ActiveMembers: members,
	})
}

// GetBookAvailability handles GET /api/reports/availability (admin)
func (h *Handler) GetBookAvailability(c *gin.Context) {
	report, err := h.svc.BookAvailability(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AvailabilityResponse{
		Status: "success",
		Report: *report,
	})
}
