package repository

import (
	"context"
	"database/sql"

	"github.com/rwangliu/library-lending-server/internal/models"
)

// Reporting queries. These are read-only aggregations over the borrow audit
// trail and the catalog; they tolerate slightly stale data and never mutate
// state.

func (r *PostgresRepository) MostBorrowedBooks(ctx context.Context, limit int) ([]models.MostBorrowedBook, error) {
	query := `
		SELECT br.book_id, b.title, b.author, b.isbn, b.genre, COUNT(*) AS borrow_count
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id
		GROUP BY br.book_id, b.title, b.author, b.isbn, b.genre
		ORDER BY borrow_count DESC, MIN(br.borrow_date) ASC, br.book_id ASC
		LIMIT $1
	`

	books := []models.MostBorrowedBook{}
	if err := r.db.SelectContext(ctx, &books, query, limit); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *PostgresRepository) ActiveMembers(ctx context.Context, limit int) ([]models.ActiveMember, error) {
	query := `
		SELECT br.user_id, u.name, u.email,
			COUNT(*) AS total_borrows,
			COUNT(*) FILTER (WHERE br.status = 'borrowed') AS currently_borrowed
		FROM borrow_records br
		JOIN users u ON u.id = br.user_id
		GROUP BY br.user_id, u.name, u.email
		ORDER BY total_borrows DESC, MIN(br.borrow_date) ASC, br.user_id ASC
		LIMIT $1
	`

	members := []models.ActiveMember{}
	if err := r.db.SelectContext(ctx, &members, query, limit); err != nil {
		return nil, err
	}
	return members, nil
}

// BookAvailability computes the whole report inside one repeatable-read
// read-only transaction, so the summary, the independent active-borrow
// cross-check and the genre breakdown all describe the same snapshot.
func (r *PostgresRepository) BookAvailability(ctx context.Context) (*models.AvailabilityReport, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var summary models.AvailabilitySummary
	err = tx.GetContext(ctx, &summary, `
		SELECT COUNT(*) AS total_unique_books,
			COALESCE(SUM(total_copies), 0) AS total_copies,
			COALESCE(SUM(available_copies), 0) AS available_copies
		FROM books
		WHERE is_active = TRUE
	`)
	if err != nil {
		return nil, err
	}
	summary.BorrowedCopies = summary.TotalCopies - summary.AvailableCopies

	err = tx.GetContext(ctx, &summary.CurrentActiveBorrows,
		`SELECT COUNT(*) FROM borrow_records WHERE status = 'borrowed'`)
	if err != nil {
		return nil, err
	}

	breakdown := []models.GenreAvailability{}
	err = tx.SelectContext(ctx, &breakdown, `
		SELECT genre, COUNT(*) AS count,
			SUM(total_copies) AS total_copies,
			SUM(available_copies) AS available
		FROM books
		WHERE is_active = TRUE
		GROUP BY genre
		ORDER BY count DESC, genre ASC
	`)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.AvailabilityReport{
		Summary:        summary,
		GenreBreakdown: breakdown,
	}, nil
}
