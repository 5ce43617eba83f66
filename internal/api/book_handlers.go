package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rwangliu/library-lending-server/internal/models"
)

// ListBooks handles GET /api/books
func (h *Handler) ListBooks(c *gin.Context) {
	filter := parseListFilter(c)

	books, pagination, err := h.svc.ListBooks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BookListResponse{
		Status:     "success",
		Books:      books,
		Pagination: pagination,
	})
}

// GetBook handles GET /api/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.svc.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "book": book})
}

// CreateBook handles POST /api/books (admin)
func (h *Handler) CreateBook(c *gin.Context) {
	var req models.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	book, err := h.svc.CreateBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "book": book})
}

// UpdateBook handles PUT /api/books/:id (admin)
func (h *Handler) UpdateBook(c *gin.Context) {
	var req models.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	book, err := h.svc.UpdateBook(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "book": book})
}

// DeleteBook handles DELETE /api/books/:id (admin)
func (h *Handler) DeleteBook(c *gin.Context) {
	if err := h.svc.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Status:  "success",
		Message: "Book deleted successfully",
	})
}
