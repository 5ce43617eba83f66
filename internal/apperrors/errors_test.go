package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(NoCopiesAvailable())
	assert.True(t, ok)
	assert.Equal(t, KindNoCopiesAvailable, kind)

	_, ok = KindOf(errors.New("connection refused"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}

func TestKindOfSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("borrowing: %w", BookNotFound())

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindBookNotFound, kind)
	assert.True(t, IsKind(wrapped, KindBookNotFound))
	assert.False(t, IsKind(wrapped, KindBorrowNotFound))
}

func TestConstructorMessages(t *testing.T) {
	assert.Equal(t, "Book not found", BookNotFound().Error())
	assert.Equal(t, "No copies available for borrowing", NoCopiesAvailable().Error())
	assert.Equal(t, "You already have this book borrowed", DuplicateActiveBorrow().Error())
	assert.Equal(t, "Borrow record not found or already returned", BorrowNotFound().Error())
}
