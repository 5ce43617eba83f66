package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rwangliu/library-lending-server/internal/apperrors"
	"github.com/rwangliu/library-lending-server/internal/models"
	"github.com/rwangliu/library-lending-server/internal/service"
)

// Handler holds the API handlers and their service dependency
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/profile", AuthMiddleware(), h.GetProfile)
	}

	books := api.Group("/books", AuthMiddleware())
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBook)
		books.POST("", AdminOnly(), h.CreateBook)
		books.PUT("/:id", AdminOnly(), h.UpdateBook)
		books.DELETE("/:id", AdminOnly(), h.DeleteBook)
	}

	borrow := api.Group("/borrow", AuthMiddleware())
	{
		borrow.POST("", h.BorrowBook)
		borrow.PUT("/:id/return", h.ReturnBook)
		borrow.GET("/history", h.GetBorrowHistory)
		borrow.GET("/all", AdminOnly(), h.GetAllBorrows)
	}

	reports := api.Group("/reports", AuthMiddleware(), AdminOnly())
	{
		reports.GET("/most-borrowed", h.GetMostBorrowedBooks)
		reports.GET("/active-members", h.GetActiveMembers)
		reports.GET("/availability", h.GetBookAvailability)
	}

	users := api.Group("/users", AuthMiddleware(), AdminOnly())
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeactivateUser)
	}
}

// statusForKind maps each business failure kind to its HTTP status
var statusForKind = map[apperrors.Kind]int{
	apperrors.KindBookNotFound:          http.StatusNotFound,
	apperrors.KindBorrowNotFound:        http.StatusNotFound,
	apperrors.KindUserNotFound:          http.StatusNotFound,
	apperrors.KindNoCopiesAvailable:     http.StatusBadRequest,
	apperrors.KindDuplicateActiveBorrow: http.StatusConflict,
	apperrors.KindEmailTaken:            http.StatusBadRequest,
	apperrors.KindISBNTaken:             http.StatusBadRequest,
	apperrors.KindInvalidCredentials:    http.StatusUnauthorized,
	apperrors.KindTransientConflict:     http.StatusServiceUnavailable,
}

// respondError translates a service error into a wire response. Tagged
// business failures keep their kind and message; anything else is an opaque
// internal error, logged here at the edge.
func respondError(c *gin.Context, err error) {
	if kind, ok := apperrors.KindOf(err); ok {
		status, known := statusForKind[kind]
		if !known {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{
			Status:  "error",
			Code:    string(kind),
			Message: err.Error(),
		})
		return
	}

	slog.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Status:  "error",
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
	})
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "VALIDATION_ERROR",
		Message: err.Error(),
	})
}

// parseLimit reads the limit query parameter for reports: default 10,
// non-numeric or non-positive values are rejected here so the reporting
// engine never sees them.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 10, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "VALIDATION_ERROR",
			Message: "limit must be a positive integer",
		})
		return 0, false
	}
	if limit > 100 {
		limit = 100
	}
	return limit, true
}

// parseListFilter reads the shared pagination/filter query parameters
func parseListFilter(c *gin.Context) models.ListFilter {
	filter := models.ListFilter{
		Status: c.Query("status"),
		Genre:  c.Query("genre"),
		Author: c.Query("author"),
		Role:   c.Query("role"),
		Search: c.Query("search"),
		SortBy: c.Query("sortBy"),
		Order:  c.Query("order"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	filter.Normalize()
	return filter
}
