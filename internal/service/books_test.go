package service

import (
	"context"
	"testing"
	"time"

	"github.com/rwangliu/library-lending-server/internal/apperrors"
	"github.com/rwangliu/library-lending-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookStartsFullyAvailable(t *testing.T) {
	var created *models.Book
	repo := &stubRepository{
		getBookByISBNFn: func(ctx context.Context, isbn string) (*models.Book, error) {
			return nil, nil
		},
		createBookFn: func(ctx context.Context, book *models.Book) error {
			created = book
			return nil
		},
	}

	book, err := newTestService(repo).CreateBook(context.Background(), models.CreateBookRequest{
		Title:           "Title",
		Author:          "Author",
		ISBN:            "isbn-1",
		PublicationDate: "2020-01-15",
		Genre:           "Fiction",
		TotalCopies:     6,
	})
	require.NoError(t, err)

	assert.Same(t, created, book)
	assert.Equal(t, 6, book.TotalCopies)
	assert.Equal(t, 6, book.AvailableCopies)
	assert.Equal(t, 2020, book.PublicationDate.Year())
	assert.True(t, book.IsActive)
}

func TestCreateBookRejectsDuplicateISBN(t *testing.T) {
	repo := &stubRepository{
		getBookByISBNFn: func(ctx context.Context, isbn string) (*models.Book, error) {
			return &models.Book{ID: "existing", ISBN: isbn}, nil
		},
	}

	_, err := newTestService(repo).CreateBook(context.Background(), models.CreateBookRequest{
		Title: "Title", Author: "Author", ISBN: "isbn-1",
		PublicationDate: "2020-01-15", Genre: "Fiction", TotalCopies: 1,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindISBNTaken))
}

func TestCreateBookRejectsBadDate(t *testing.T) {
	repo := &stubRepository{
		getBookByISBNFn: func(ctx context.Context, isbn string) (*models.Book, error) {
			return nil, nil
		},
	}

	_, err := newTestService(repo).CreateBook(context.Background(), models.CreateBookRequest{
		Title: "Title", Author: "Author", ISBN: "isbn-1",
		PublicationDate: "15/01/2020", Genre: "Fiction", TotalCopies: 1,
	})
	require.Error(t, err)
	_, tagged := apperrors.KindOf(err)
	assert.False(t, tagged)
}

func TestUpdateBookComputesCopyDelta(t *testing.T) {
	stored := &models.Book{
		ID: "book-1", Title: "Title", Author: "Author", ISBN: "isbn-1",
		Genre: "Fiction", TotalCopies: 3, AvailableCopies: 1, IsActive: true,
	}

	var gotDelta int
	repo := &stubRepository{
		getBookByIDFn: func(ctx context.Context, id string) (*models.Book, error) {
			copy := *stored
			return &copy, nil
		},
		updateBookFn: func(ctx context.Context, book *models.Book, copyDelta int) error {
			gotDelta = copyDelta
			stored.TotalCopies = book.TotalCopies
			stored.AvailableCopies += copyDelta
			return nil
		},
	}

	newTotal := 5
	book, err := newTestService(repo).UpdateBook(context.Background(), "book-1",
		models.UpdateBookRequest{TotalCopies: &newTotal})
	require.NoError(t, err)

	assert.Equal(t, 2, gotDelta)
	assert.Equal(t, 5, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies)
}

func TestUpdateBookUnknownID(t *testing.T) {
	repo := &stubRepository{
		getBookByIDFn: func(ctx context.Context, id string) (*models.Book, error) {
			return nil, nil
		},
	}

	title := "New Title"
	_, err := newTestService(repo).UpdateBook(context.Background(), "ghost",
		models.UpdateBookRequest{Title: &title})
	assert.True(t, apperrors.IsKind(err, apperrors.KindBookNotFound))
}

func TestListBooksNormalizesPagination(t *testing.T) {
	var gotFilter models.ListFilter
	repo := &stubRepository{
		listBooksFn: func(ctx context.Context, filter models.ListFilter) ([]models.Book, int, error) {
			gotFilter = filter
			return []models.Book{}, 42, nil
		},
	}

	_, pagination, err := newTestService(repo).ListBooks(context.Background(),
		models.ListFilter{Page: -3, Limit: 1000})
	require.NoError(t, err)

	assert.Equal(t, 1, gotFilter.Page)
	assert.Equal(t, 100, gotFilter.Limit)
	assert.Equal(t, 42, pagination.Total)
	assert.Equal(t, 1, pagination.Pages)
}

func TestParseDateAcceptsBothForms(t *testing.T) {
	for _, value := range []string{"2015-11-16", "2015-11-16T00:00:00Z"} {
		parsed, err := parseDate(value)
		require.NoError(t, err, value)
		assert.Equal(t, time.November, parsed.Month())
	}

	_, err := parseDate("November 16, 2015")
	assert.Error(t, err)
}
