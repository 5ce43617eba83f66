package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rwangliu/library-lending-server/internal/apperrors"
	"github.com/rwangliu/library-lending-server/internal/models"
	"github.com/rwangliu/library-lending-server/internal/repository"
)

// Retry budget for the atomic borrow/return transactions. Only transient
// store conflicts are retried; business-rule failures surface immediately.
const (
	maxConflictAttempts = 3
	conflictRetryDelay  = 25 * time.Millisecond
)

// BorrowBook lends one copy of the book to the user. The availability check,
// the copy decrement and the record creation are one atomic unit in the
// repository; this layer owns the due-date rule and the conflict retries.
func (s *DefaultService) BorrowBook(ctx context.Context, userID, bookID string) (*models.BorrowDetail, error) {
	now := time.Now().UTC()
	dueDate := now.Add(models.BorrowPeriod)

	detail, err := withConflictRetry(ctx, func() (*models.BorrowDetail, error) {
		return s.repo.CreateBorrow(ctx, userID, bookID, now, dueDate)
	})
	if err != nil {
		if _, tagged := apperrors.KindOf(err); tagged {
			return nil, err
		}
		return nil, fmt.Errorf("error borrowing book: %w", err)
	}
	return detail, nil
}

// ReturnBook closes the user's active loan. A record that does not exist,
// belongs to another user or was already returned all yield the same
// BorrowNotFound; a repeated return is an error, not a no-op, so callers can
// tell a retry apart from a success.
func (s *DefaultService) ReturnBook(ctx context.Context, userID, borrowID string) (*models.BorrowDetail, error) {
	now := time.Now().UTC()

	detail, err := withConflictRetry(ctx, func() (*models.BorrowDetail, error) {
		return s.repo.ReturnBorrow(ctx, userID, borrowID, now)
	})
	if err != nil {
		if _, tagged := apperrors.KindOf(err); tagged {
			return nil, err
		}
		return nil, fmt.Errorf("error returning book: %w", err)
	}
	return detail, nil
}

// withConflictRetry runs fn, retrying on transient store conflicts with a
// short linear backoff. After the budget is spent the caller gets
// TransientConflict, the only kind it may itself retry.
func withConflictRetry(ctx context.Context, fn func() (*models.BorrowDetail, error)) (*models.BorrowDetail, error) {
	var detail *models.BorrowDetail
	var err error

	for attempt := 0; attempt < maxConflictAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * conflictRetryDelay):
			}
		}

		detail, err = fn()
		if err == nil || !repository.IsRetryableConflict(err) {
			return detail, err
		}
	}

	return nil, apperrors.TransientConflict()
}

func (s *DefaultService) GetBorrowHistory(ctx context.Context, userID string, filter models.ListFilter) ([]models.BorrowDetail, models.Pagination, error) {
	filter.Normalize()

	borrows, total, err := s.repo.ListBorrowsByUser(ctx, userID, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("error getting borrow history: %w", err)
	}

	applyDisplayStatus(borrows)
	return borrows, models.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *DefaultService) GetAllBorrows(ctx context.Context, filter models.ListFilter) ([]models.BorrowDetail, models.Pagination, error) {
	filter.Normalize()

	borrows, total, err := s.repo.ListAllBorrows(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("error getting borrows: %w", err)
	}

	applyDisplayStatus(borrows)
	return borrows, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// applyDisplayStatus rewrites stored statuses to their display form, marking
// past-due active loans as overdue.
func applyDisplayStatus(borrows []models.BorrowDetail) {
	now := time.Now().UTC()
	for i := range borrows {
		borrows[i].Status = borrows[i].DisplayStatus(now)
	}
}
