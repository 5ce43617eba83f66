package models

import (
	"time"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Borrow record statuses. Overdue is never stored; it is derived from the
// due date at read time (see BorrowRecord.DisplayStatus).
const (
	StatusBorrowed = "borrowed"
	StatusReturned = "returned"
	StatusOverdue  = "overdue"
)

// BorrowPeriod is how long a copy may be kept before it counts as overdue.
const BorrowPeriod = 14 * 24 * time.Hour

// User represents a library member or administrator
type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"` // Password hash, not returned in JSON
	Role      string    `db:"role" json:"role"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Book represents a title in the catalog with its copy counts
type Book struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Author          string    `db:"author" json:"author"`
	ISBN            string    `db:"isbn" json:"isbn"`
	PublicationDate time.Time `db:"publication_date" json:"publicationDate"`
	Genre           string    `db:"genre" json:"genre"`
	TotalCopies     int       `db:"total_copies" json:"totalCopies"`
	AvailableCopies int       `db:"available_copies" json:"availableCopies"`
	Description     string    `db:"description" json:"description"`
	IsActive        bool      `db:"is_active" json:"isActive"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBook builds a Book ready for insertion. Available copies always start
// equal to total copies; lending is the only thing that moves them apart.
func NewBook(title, author, isbn string, publicationDate time.Time, genre string, totalCopies int, description string) *Book {
	return &Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		PublicationDate: publicationDate,
		Genre:           genre,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		Description:     description,
		IsActive:        true,
	}
}

// BorrowRecord represents a single loan of one copy to one user. Records are
// the audit trail for reporting and are never deleted.
type BorrowRecord struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"userId"`
	BookID     string     `db:"book_id" json:"bookId"`
	BorrowDate time.Time  `db:"borrow_date" json:"borrowDate"`
	DueDate    time.Time  `db:"due_date" json:"dueDate"`
	ReturnDate *time.Time `db:"return_date" json:"returnDate"`
	Status     string     `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

// DisplayStatus reports the record status with overdue derived from the due
// date. An overdue record is still "borrowed" in the store and can be
// returned normally.
func (b *BorrowRecord) DisplayStatus(now time.Time) string {
	if b.Status == StatusBorrowed && now.After(b.DueDate) {
		return StatusOverdue
	}
	return b.Status
}

// BorrowDetail is a BorrowRecord joined to book (and optionally user)
// display fields for history and admin listings.
type BorrowDetail struct {
	BorrowRecord
	BookTitle  string  `db:"book_title" json:"bookTitle"`
	BookAuthor string  `db:"book_author" json:"bookAuthor"`
	BookISBN   string  `db:"book_isbn" json:"bookIsbn"`
	BookGenre  string  `db:"book_genre" json:"bookGenre"`
	UserName   *string `db:"user_name" json:"userName,omitempty"`
	UserEmail  *string `db:"user_email" json:"userEmail,omitempty"`
}

// MostBorrowedBook is one row of the most-borrowed report
type MostBorrowedBook struct {
	BookID      string `db:"book_id" json:"bookId"`
	Title       string `db:"title" json:"title"`
	Author      string `db:"author" json:"author"`
	ISBN        string `db:"isbn" json:"isbn"`
	Genre       string `db:"genre" json:"genre"`
	BorrowCount int    `db:"borrow_count" json:"borrowCount"`
}

// ActiveMember is one row of the active-members report
type ActiveMember struct {
	UserID            string `db:"user_id" json:"userId"`
	Name              string `db:"name" json:"name"`
	Email             string `db:"email" json:"email"`
	TotalBorrows      int    `db:"total_borrows" json:"totalBorrows"`
	CurrentlyBorrowed int    `db:"currently_borrowed" json:"currentlyBorrowed"`
}

// AvailabilitySummary aggregates copy counts over the active catalog.
// CurrentActiveBorrows is computed independently from the borrow records as a
// cross-check against BorrowedCopies.
type AvailabilitySummary struct {
	TotalUniqueBooks     int `db:"total_unique_books" json:"totalUniqueBooks"`
	TotalCopies          int `db:"total_copies" json:"totalCopies"`
	AvailableCopies      int `db:"available_copies" json:"availableCopies"`
	BorrowedCopies       int `json:"borrowedCopies"`
	CurrentActiveBorrows int `json:"currentActiveBorrows"`
}

// GenreAvailability is one row of the per-genre availability breakdown
type GenreAvailability struct {
	Genre       string `db:"genre" json:"genre"`
	Count       int    `db:"count" json:"count"`
	TotalCopies int    `db:"total_copies" json:"totalCopies"`
	Available   int    `db:"available" json:"available"`
}

// AvailabilityReport is the full availability report
type AvailabilityReport struct {
	Summary        AvailabilitySummary `json:"summary"`
	GenreBreakdown []GenreAvailability `json:"genreBreakdown"`
}
