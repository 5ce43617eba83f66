package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rwangliu/library-lending-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMostBorrowedBooksMapping(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY br.book_id")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"book_id", "title", "author", "isbn", "genre", "borrow_count"}).
			AddRow("b2", "Popular", "A. Author", "isbn-2", "Fiction", 5).
			AddRow("b1", "Middling", "B. Author", "isbn-1", "History", 3))

	books, err := repo.MostBorrowedBooks(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, models.MostBorrowedBook{
		BookID: "b2", Title: "Popular", Author: "A. Author", ISBN: "isbn-2", Genre: "Fiction", BorrowCount: 5,
	}, books[0])
	assert.Equal(t, 3, books[1].BorrowCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMostBorrowedBooksEmpty(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY br.book_id")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"book_id", "title", "author", "isbn", "genre", "borrow_count"}))

	books, err := repo.MostBorrowedBooks(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveMembersMapping(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY br.user_id")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "email", "total_borrows", "currently_borrowed"}).
			AddRow("u1", "Heavy Reader", "heavy@example.com", 7, 2).
			AddRow("u2", "Light Reader", "light@example.com", 1, 0))

	members, err := repo.ActiveMembers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, 7, members[0].TotalBorrows)
	assert.Equal(t, 2, members[0].CurrentlyBorrowed)
	assert.Equal(t, "light@example.com", members[1].Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookAvailabilitySnapshot(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) AS total_unique_books")).
		WillReturnRows(sqlmock.NewRows([]string{"total_unique_books", "total_copies", "available_copies"}).
			AddRow(4, 12, 9))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM borrow_records")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY genre")).
		WillReturnRows(sqlmock.NewRows([]string{"genre", "count", "total_copies", "available"}).
			AddRow("Fiction", 3, 9, 6).
			AddRow("History", 1, 3, 3))
	mock.ExpectCommit()

	report, err := repo.BookAvailability(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Summary.TotalUniqueBooks)
	assert.Equal(t, 12, report.Summary.TotalCopies)
	assert.Equal(t, 9, report.Summary.AvailableCopies)
	assert.Equal(t, 3, report.Summary.BorrowedCopies, "borrowed is derived from the copy totals")
	assert.Equal(t, 3, report.Summary.CurrentActiveBorrows)

	require.Len(t, report.GenreBreakdown, 2)
	assert.Equal(t, "Fiction", report.GenreBreakdown[0].Genre)
	assert.Equal(t, 6, report.GenreBreakdown[0].Available)

	assert.NoError(t, mock.ExpectationsWereMet())
}
