package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	record := BorrowRecord{Status: StatusBorrowed, DueDate: now.Add(time.Hour)}
	assert.Equal(t, StatusBorrowed, record.DisplayStatus(now))

	record.DueDate = now.Add(-time.Hour)
	assert.Equal(t, StatusOverdue, record.DisplayStatus(now))

	// Exactly at the due date is not overdue yet.
	record.DueDate = now
	assert.Equal(t, StatusBorrowed, record.DisplayStatus(now))

	record.Status = StatusReturned
	record.DueDate = now.Add(-time.Hour)
	assert.Equal(t, StatusReturned, record.DisplayStatus(now))
}

func TestNewBook(t *testing.T) {
	pub := time.Date(2015, 11, 16, 0, 0, 0, 0, time.UTC)
	book := NewBook("Title", "Author", "isbn-1", pub, "Fiction", 3, "desc")

	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies)
	assert.True(t, book.IsActive)
	assert.Empty(t, book.ID, "the store assigns the id")
}

func TestListFilterNormalize(t *testing.T) {
	cases := []struct {
		name      string
		in        ListFilter
		wantPage  int
		wantLimit int
	}{
		{"defaults", ListFilter{}, 1, 10},
		{"negative page", ListFilter{Page: -5, Limit: 20}, 1, 20},
		{"limit capped", ListFilter{Page: 2, Limit: 500}, 2, 100},
		{"in range untouched", ListFilter{Page: 3, Limit: 25}, 3, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.wantPage, tc.in.Page)
			assert.Equal(t, tc.wantLimit, tc.in.Limit)
		})
	}
}

func TestListFilterOffset(t *testing.T) {
	f := ListFilter{Page: 3, Limit: 25}
	assert.Equal(t, 50, f.Offset())

	f = ListFilter{Page: 1, Limit: 10}
	assert.Equal(t, 0, f.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 35)
	assert.Equal(t, Pagination{Current: 2, Pages: 4, Total: 35, Limit: 10}, p)

	p = NewPagination(1, 10, 30)
	assert.Equal(t, 3, p.Pages)

	p = NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.Pages)
}
