// Package apperrors defines the closed set of business failures the lending
// core can report. Handlers branch on the Kind discriminator instead of
// matching message strings.
package apperrors

import (
	"errors"
)

// Kind identifies a business failure category. The set is closed: the service
// layer produces no other kinds, and infrastructure faults are passed through
// as plain wrapped errors instead.
type Kind string

const (
	// KindBookNotFound covers both a missing book and an inactive one; the
	// effect on the caller is identical, so the two are deliberately folded.
	KindBookNotFound Kind = "BOOK_NOT_FOUND"

	// KindNoCopiesAvailable means every copy is currently on loan.
	KindNoCopiesAvailable Kind = "NO_COPIES_AVAILABLE"

	// KindDuplicateActiveBorrow means the user already holds this title.
	KindDuplicateActiveBorrow Kind = "DUPLICATE_ACTIVE_BORROW"

	// KindBorrowNotFound covers a record that never existed, belongs to
	// another user, or was already returned. One kind on purpose: the ledger
	// must not leak whether someone else's loan exists.
	KindBorrowNotFound Kind = "BORROW_NOT_FOUND"

	// KindUserNotFound is reported by user lookups outside the ledger.
	KindUserNotFound Kind = "USER_NOT_FOUND"

	// KindEmailTaken is reported when registering an already-used email.
	KindEmailTaken Kind = "EMAIL_TAKEN"

	// KindISBNTaken is reported when creating a catalog entry with a
	// duplicate ISBN.
	KindISBNTaken Kind = "ISBN_TAKEN"

	// KindInvalidCredentials covers bad email/password and deactivated
	// accounts without distinguishing them.
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"

	// KindTransientConflict means the atomic update lost its retry budget to
	// concurrent writers. The only kind a caller may sensibly retry.
	KindTransientConflict Kind = "TRANSIENT_CONFLICT"
)

// Error is a tagged business failure
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a tagged error with the given kind and message
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the failure kind from err. The second return is false for
// infrastructure errors, which carry no kind.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a tagged error of the given kind
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Constructors for the ledger kinds, with the user-visible messages the
// handlers pass through unchanged.

func BookNotFound() *Error {
	return New(KindBookNotFound, "Book not found")
}

func NoCopiesAvailable() *Error {
	return New(KindNoCopiesAvailable, "No copies available for borrowing")
}

func DuplicateActiveBorrow() *Error {
	return New(KindDuplicateActiveBorrow, "You already have this book borrowed")
}

func BorrowNotFound() *Error {
	return New(KindBorrowNotFound, "Borrow record not found or already returned")
}

func TransientConflict() *Error {
	return New(KindTransientConflict, "Operation conflicted with concurrent updates, please retry")
}
