package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rwangliu/library-lending-server/internal/models"
	"github.com/rwangliu/library-lending-server/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)

	// Catalog
	CreateBook(ctx context.Context, req models.CreateBookRequest) (*models.Book, error)
	UpdateBook(ctx context.Context, bookID string, req models.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, bookID string) error
	GetBook(ctx context.Context, bookID string) (*models.Book, error)
	ListBooks(ctx context.Context, filter models.ListFilter) ([]models.Book, models.Pagination, error)

	// Lending ledger
	BorrowBook(ctx context.Context, userID, bookID string) (*models.BorrowDetail, error)
	ReturnBook(ctx context.Context, userID, borrowID string) (*models.BorrowDetail, error)
	GetBorrowHistory(ctx context.Context, userID string, filter models.ListFilter) ([]models.BorrowDetail, models.Pagination, error)
	GetAllBorrows(ctx context.Context, filter models.ListFilter) ([]models.BorrowDetail, models.Pagination, error)

	// Reports
	MostBorrowedBooks(ctx context.Context, limit int) ([]models.MostBorrowedBook, error)
	ActiveMembers(ctx context.Context, limit int) ([]models.ActiveMember, error)
	BookAvailability(ctx context.Context) (*models.AvailabilityReport, error)

	// User management
	ListUsers(ctx context.Context, filter models.ListFilter) ([]models.User, models.Pagination, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error)
	DeactivateUser(ctx context.Context, userID string) error
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string, tokenDuration time.Duration) Service {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
	}
}

// Helper methods
func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub":  user.ID, // subject
		"role": user.Role,
		"exp":  expirationTime.Unix(),
		"iat":  time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
