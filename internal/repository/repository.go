package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rwangliu/library-lending-server/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, filter models.ListFilter) ([]models.User, int, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeactivateUser(ctx context.Context, id string) (bool, error)

	// Catalog operations
	CreateBook(ctx context.Context, book *models.Book) error
	GetBookByID(ctx context.Context, id string) (*models.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error)
	ListBooks(ctx context.Context, filter models.ListFilter) ([]models.Book, int, error)
	UpdateBook(ctx context.Context, book *models.Book, copyDelta int) error
	DeactivateBook(ctx context.Context, id string) (bool, error)

	// Lending ledger operations
	CreateBorrow(ctx context.Context, userID, bookID string, borrowDate, dueDate time.Time) (*models.BorrowDetail, error)
	ReturnBorrow(ctx context.Context, userID, borrowID string, returnDate time.Time) (*models.BorrowDetail, error)
	ListBorrowsByUser(ctx context.Context, userID string, filter models.ListFilter) ([]models.BorrowDetail, int, error)
	ListAllBorrows(ctx context.Context, filter models.ListFilter) ([]models.BorrowDetail, int, error)

	// Reporting operations
	MostBorrowedBooks(ctx context.Context, limit int) ([]models.MostBorrowedBook, error)
	ActiveMembers(ctx context.Context, limit int) ([]models.ActiveMember, error)
	BookAvailability(ctx context.Context) (*models.AvailabilityReport, error)
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// IsRetryableConflict reports whether err is a transient concurrency failure
// worth retrying: a serialization failure or a deadlock. Business-rule
// failures never match.
func IsRetryableConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// isUniqueViolation reports whether err is a unique violation on the named
// constraint or index. An empty name matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
