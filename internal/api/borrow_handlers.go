package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rwangliu/library-lending-server/internal/models"
)

// BorrowBook handles POST /api/borrow
func (h *Handler) BorrowBook(c *gin.Context) {
	var req models.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	userID := c.GetString("userId")

	borrow, err := h.svc.BorrowBook(c.Request.Context(), userID, req.BookID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.BorrowResponse{
		Status:  "success",
		Message: "Book borrowed successfully",
		Borrow:  borrow,
	})
}

// ReturnBook handles PUT /api/borrow/:id/return
func (h *Handler) ReturnBook(c *gin.Context) {
	userID := c.GetString("userId")

	borrow, err := h.svc.ReturnBook(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BorrowResponse{
		Status:  "success",
		Message: "Book returned successfully",
		Borrow:  borrow,
	})
}

// GetBorrowHistory handles GET /api/borrow/history
func (h *Handler) GetBorrowHistory(c *gin.Context) {
	userID := c.GetString("userId")
	filter := parseListFilter(c)

	borrows, pagination, err := h.svc.GetBorrowHistory(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BorrowListResponse{
		Status:     "success",
		Borrows:    borrows,
		Pagination: pagination,
	})
}

// GetAllBorrows handles GET /api/borrow/all (admin)
func (h *Handler) GetAllBorrows(c *gin.Context) {
	filter := parseListFilter(c)

	borrows, pagination, err := h.svc.GetAllBorrows(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BorrowListResponse{
		Status:     "success",
		Borrows:    borrows,
		Pagination: pagination,
	})
}
