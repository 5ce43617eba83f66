package service

import (
	"context"
	"fmt"

	"github.com/rwangliu/library-lending-server/internal/models"
)

// Reporting methods. Pure read-side aggregations over the borrow audit trail
// and the catalog; limits are validated by the transport layer before they
// get here.

func (s *DefaultService) MostBorrowedBooks(ctx context.Context, limit int) ([]models.MostBorrowedBook, error) {
	books, err := s.repo.MostBorrowedBooks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error computing most borrowed books: %w", err)
	}
	return books, nil
}

func (s *DefaultService) ActiveMembers(ctx context.Context, limit int) ([]models.ActiveMember, error) {
	members, err := s.repo.ActiveMembers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error computing active members: %w", err)
	}
	return members, nil
}

func (s *DefaultService) BookAvailability(ctx context.Context) (*models.AvailabilityReport, error) {
	report, err := s.repo.BookAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing book availability: %w", err)
	}
	return report, nil
}
