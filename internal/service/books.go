package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rwangliu/library-lending-server/internal/apperrors"
	"github.com/rwangliu/library-lending-server/internal/models"
)

// Catalog methods. These are plain record CRUD around the ledger; the only
// rules of substance are the ISBN uniqueness check, the available-equals-
// total creation rule and the copy-delta adjustment on updates.

func (s *DefaultService) CreateBook(ctx context.Context, req models.CreateBookRequest) (*models.Book, error) {
	existing, err := s.repo.GetBookByISBN(ctx, req.ISBN)
	if err != nil {
		return nil, fmt.Errorf("error checking ISBN: %w", err)
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.KindISBNTaken, "Book with this ISBN already exists")
	}

	pubDate, err := parseDate(req.PublicationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid publication date: %w", err)
	}

	book := models.NewBook(req.Title, req.Author, req.ISBN, pubDate, req.Genre, req.TotalCopies, req.Description)

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("error creating book: %w", err)
	}

	return book, nil
}

func (s *DefaultService) UpdateBook(ctx context.Context, bookID string, req models.UpdateBookRequest) (*models.Book, error) {
	book, err := s.repo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("error getting book: %w", err)
	}
	if book == nil {
		return nil, apperrors.BookNotFound()
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.PublicationDate != nil {
		pubDate, err := parseDate(*req.PublicationDate)
		if err != nil {
			return nil, fmt.Errorf("invalid publication date: %w", err)
		}
		book.PublicationDate = pubDate
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}
	if req.Description != nil {
		book.Description = *req.Description
	}

	// A change to the copies owned moves the available count by the same
	// delta; copies currently on loan stay on loan.
	copyDelta := 0
	if req.TotalCopies != nil {
		copyDelta = *req.TotalCopies - book.TotalCopies
		book.TotalCopies = *req.TotalCopies
	}

	if err := s.repo.UpdateBook(ctx, book, copyDelta); err != nil {
		return nil, fmt.Errorf("error updating book: %w", err)
	}

	// Re-read so the response carries the atomically adjusted counts.
	updated, err := s.repo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("error reloading book: %w", err)
	}
	if updated == nil {
		return nil, apperrors.BookNotFound()
	}
	return updated, nil
}

func (s *DefaultService) DeleteBook(ctx context.Context, bookID string) error {
	// Soft delete: the book disappears from the catalog but existing loans
	// stay valid and its audit history remains.
	found, err := s.repo.DeactivateBook(ctx, bookID)
	if err != nil {
		return fmt.Errorf("error deleting book: %w", err)
	}
	if !found {
		return apperrors.BookNotFound()
	}
	return nil
}

func (s *DefaultService) GetBook(ctx context.Context, bookID string) (*models.Book, error) {
	book, err := s.repo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("error getting book: %w", err)
	}
	if book == nil {
		return nil, apperrors.BookNotFound()
	}
	return book, nil
}

func (s *DefaultService) ListBooks(ctx context.Context, filter models.ListFilter) ([]models.Book, models.Pagination, error) {
	filter.Normalize()

	books, total, err := s.repo.ListBooks(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("error listing books: %w", err)
	}

	return books, models.NewPagination(filter.Page, filter.Limit, total), nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
