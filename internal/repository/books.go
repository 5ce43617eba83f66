package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rwangliu/library-lending-server/internal/models"
)

// Catalog repository methods
func (r *PostgresRepository) CreateBook(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (id, title, author, isbn, publication_date, genre,
			total_copies, available_copies, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	if book.ID == "" {
		book.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		book.ID, book.Title, book.Author, book.ISBN, book.PublicationDate, book.Genre,
		book.TotalCopies, book.AvailableCopies, book.Description, book.IsActive,
		book.CreatedAt, book.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetBookByID(ctx context.Context, id string) (*models.Book, error) {
	query := `SELECT * FROM books WHERE id = $1 AND is_active = TRUE`

	var book models.Book
	err := r.db.GetContext(ctx, &book, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Book not found
		}
		return nil, err
	}

	return &book, nil
}

func (r *PostgresRepository) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	query := `SELECT * FROM books WHERE isbn = $1`

	var book models.Book
	err := r.db.GetContext(ctx, &book, query, isbn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Book not found
		}
		return nil, err
	}

	return &book, nil
}

// sortColumns whitelists the ListBooks sort keys
var sortColumns = map[string]string{
	"title":     "title",
	"author":    "author",
	"createdAt": "created_at",
}

func (r *PostgresRepository) ListBooks(ctx context.Context, filter models.ListFilter) ([]models.Book, int, error) {
	query := `SELECT * FROM books WHERE is_active = TRUE`
	args := []interface{}{}
	argIdx := 1

	if filter.Genre != "" {
		query += fmt.Sprintf(" AND genre ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Genre+"%")
		argIdx++
	}
	if filter.Author != "" {
		query += fmt.Sprintf(" AND author ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Author+"%")
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d OR genre ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var total int
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	sortBy, ok := sortColumns[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	order := "DESC"
	if filter.Order == "asc" {
		order = "ASC"
	}

	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", sortBy, order, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	var books []models.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// UpdateBook writes the book's catalog fields. copyDelta is the change to
// total_copies; the same delta is applied to available_copies in the same
// statement so the update cannot race a concurrent borrow, clamped to keep
// 0 <= available_copies <= total_copies.
func (r *PostgresRepository) UpdateBook(ctx context.Context, book *models.Book, copyDelta int) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, publication_date = $3, genre = $4, description = $5,
			total_copies = $6,
			available_copies = LEAST(GREATEST(available_copies + $7, 0), $6),
			updated_at = $8
		WHERE id = $9 AND is_active = TRUE
	`

	book.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, book.PublicationDate, book.Genre, book.Description,
		book.TotalCopies, copyDelta, book.UpdatedAt, book.ID)
	return err
}

func (r *PostgresRepository) DeactivateBook(ctx context.Context, id string) (bool, error) {
	query := `UPDATE books SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE`

	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
