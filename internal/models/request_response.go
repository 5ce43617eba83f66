package models

// Request models
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin member"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateBookRequest struct {
	Title           string `json:"title" binding:"required"`
	Author          string `json:"author" binding:"required"`
	ISBN            string `json:"isbn" binding:"required"`
	PublicationDate string `json:"publicationDate" binding:"required"`
	Genre           string `json:"genre" binding:"required"`
	TotalCopies     int    `json:"totalCopies" binding:"required,min=1"`
	Description     string `json:"description"`
}

// UpdateBookRequest carries optional field updates; nil means leave unchanged.
type UpdateBookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	PublicationDate *string `json:"publicationDate"`
	Genre           *string `json:"genre"`
	TotalCopies     *int    `json:"totalCopies" binding:"omitempty,min=0"`
	Description     *string `json:"description"`
}

type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2"`
	Role *string `json:"role" binding:"omitempty,oneof=admin member"`
}

type BorrowRequest struct {
	BookID string `json:"bookId" binding:"required"`
}

// ListFilter holds common pagination and filtering query parameters
type ListFilter struct {
	Page   int
	Limit  int
	Status string
	Genre  string
	Author string
	Role   string
	Search string
	SortBy string
	Order  string
}

// Normalize clamps pagination to sane bounds; callers get defaults for free.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// Offset returns the row offset for the current page
func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

// Pagination is the envelope describing a paginated result set
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
	Limit   int `json:"limit"`
}

// NewPagination computes the page envelope for a total row count
func NewPagination(page, limit, total int) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Pagination{Current: page, Pages: pages, Total: total, Limit: limit}
}

type BookListResponse struct {
	Status     string     `json:"status"`
	Books      []Book     `json:"books"`
	Pagination Pagination `json:"pagination"`
}

type UserListResponse struct {
	Status     string     `json:"status"`
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type BorrowResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message,omitempty"`
	Borrow  *BorrowDetail `json:"borrow"`
}

type BorrowListResponse struct {
	Status     string         `json:"status"`
	Borrows    []BorrowDetail `json:"borrows"`
	Pagination Pagination     `json:"pagination"`
}

type MostBorrowedResponse struct {
	Status            string             `json:"status"`
	MostBorrowedBooks []MostBorrowedBook `json:"mostBorrowedBooks"`
}

type ActiveMembersResponse struct {
	Status        string         `json:"status"`
	ActiveMembers []ActiveMember `json:"activeMembers"`
}

type AvailabilityResponse struct {
	Status string             `json:"status"`
	Report AvailabilityReport `json:"report"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
