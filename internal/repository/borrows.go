package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rwangliu/library-lending-server/internal/apperrors"
	"github.com/rwangliu/library-lending-server/internal/models"
)

// CreateBorrow performs the borrow as one atomic unit: the conditional copy
// decrement and the record insert either both commit or neither does.
//
// The decrement is a single conditional UPDATE, so two concurrent borrows of
// the last copy serialize on the row lock and the loser sees zero rows
// updated. The partial unique index uniq_active_borrow rejects a second
// active record for the same (user, book), which keeps the precondition
// order of the contract: existence first, availability second, duplication
// last.
func (r *PostgresRepository) CreateBorrow(ctx context.Context, userID, bookID string, borrowDate, dueDate time.Time) (*models.BorrowDetail, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE books
		 SET available_copies = available_copies - 1, updated_at = $1
		 WHERE id = $2 AND is_active = TRUE AND available_copies > 0`,
		borrowDate, bookID)
	if err != nil {
		return nil, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Distinguish a missing (or inactive) book from an exhausted one.
		var exists bool
		err = tx.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM books WHERE id = $1 AND is_active = TRUE)`, bookID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.BookNotFound()
		}
		return nil, apperrors.NoCopiesAvailable()
	}

	recordID := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO borrow_records (id, user_id, book_id, borrow_date, due_date, return_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NULL, $6, $7, $7)`,
		recordID, userID, bookID, borrowDate, dueDate, models.StatusBorrowed, borrowDate)
	if err != nil {
		if isUniqueViolation(err, "uniq_active_borrow") {
			// Rolling back also undoes the decrement above.
			return nil, apperrors.DuplicateActiveBorrow()
		}
		return nil, err
	}

	detail, err := getBorrowDetail(ctx, tx, recordID, false)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return detail, nil
}

// ReturnBorrow performs the return as one atomic unit: the status transition
// and the copy increment commit together or not at all. The conditional
// UPDATE makes the first concurrent caller win; later callers match zero
// rows and get BorrowNotFound, which deliberately also covers records that
// never existed or belong to someone else.
func (r *PostgresRepository) ReturnBorrow(ctx context.Context, userID, borrowID string, returnDate time.Time) (*models.BorrowDetail, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var bookID string
	err = tx.QueryRowContext(ctx,
		`UPDATE borrow_records
		 SET status = $1, return_date = $2, updated_at = $2
		 WHERE id = $3 AND user_id = $4 AND status = $5
		 RETURNING book_id`,
		models.StatusReturned, returnDate, borrowID, userID, models.StatusBorrowed,
	).Scan(&bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.BorrowNotFound()
		}
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE books
		 SET available_copies = available_copies + 1, updated_at = $1
		 WHERE id = $2 AND available_copies < total_copies`,
		returnDate, bookID)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("copy counts out of sync for book %s", bookID)
	}

	detail, err := getBorrowDetail(ctx, tx, borrowID, false)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return detail, nil
}

const borrowDetailColumns = `
	br.id, br.user_id, br.book_id, br.borrow_date, br.due_date, br.return_date, br.status,
	br.created_at, br.updated_at,
	b.title AS book_title, b.author AS book_author, b.isbn AS book_isbn, b.genre AS book_genre`

func getBorrowDetail(ctx context.Context, tx *sqlx.Tx, borrowID string, withUser bool) (*models.BorrowDetail, error) {
	query := `SELECT` + borrowDetailColumns
	if withUser {
		query += `, u.name AS user_name, u.email AS user_email`
	}
	query += `
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id`
	if withUser {
		query += `
		JOIN users u ON u.id = br.user_id`
	}
	query += ` WHERE br.id = $1`

	var detail models.BorrowDetail
	if err := tx.GetContext(ctx, &detail, query, borrowID); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *PostgresRepository) ListBorrowsByUser(ctx context.Context, userID string, filter models.ListFilter) ([]models.BorrowDetail, int, error) {
	return r.listBorrows(ctx, userID, filter, false)
}

func (r *PostgresRepository) ListAllBorrows(ctx context.Context, filter models.ListFilter) ([]models.BorrowDetail, int, error) {
	return r.listBorrows(ctx, "", filter, true)
}

func (r *PostgresRepository) listBorrows(ctx context.Context, userID string, filter models.ListFilter, withUser bool) ([]models.BorrowDetail, int, error) {
	query := `SELECT` + borrowDetailColumns
	if withUser {
		query += `, u.name AS user_name, u.email AS user_email`
	}
	query += `
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id`
	if withUser {
		query += `
		JOIN users u ON u.id = br.user_id`
	}
	query += ` WHERE TRUE`

	args := []interface{}{}
	argIdx := 1

	if userID != "" {
		query += fmt.Sprintf(" AND br.user_id = $%d", argIdx)
		args = append(args, userID)
		argIdx++
	}

	switch filter.Status {
	case "":
		// no status filter
	case models.StatusOverdue:
		// Overdue is derived, not stored: an active loan past its due date.
		query += fmt.Sprintf(" AND br.status = $%d AND br.due_date < $%d", argIdx, argIdx+1)
		args = append(args, models.StatusBorrowed, time.Now().UTC())
		argIdx += 2
	default:
		query += fmt.Sprintf(" AND br.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var total int
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY br.borrow_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	var borrows []models.BorrowDetail
	if err := r.db.SelectContext(ctx, &borrows, query, args...); err != nil {
		return nil, 0, err
	}

	return borrows, total, nil
}
