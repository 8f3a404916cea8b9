package handler

import "github.com/bookshelf/storefront/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	Loading       bool         `json:"loading"`
	Role          domain.Role  `json:"role,omitempty"`
	User          *domain.User `json:"user,omitempty"`
}

type loginResponse struct {
	User domain.User `json:"user"`
}

type purchaseRequest struct {
	BookID   int64 `json:"bookId"   validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"min=1"`
}

type loanRequest struct {
	BookID int64 `json:"bookId" validate:"required,gt=0"`
}

type checkoutResponse struct {
	State domain.CheckoutState `json:"state"`
	Last  domain.CheckoutState `json:"last"`
}

type checkoutResult struct {
	Bill  *domain.Bill `json:"bill"`
	Total string       `json:"total"`
}

type bookRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Author      string  `json:"author"      validate:"required"`
	ISBN        string  `json:"isbn"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Pages       int     `json:"pages"       validate:"gte=0"`
	PublishYear int     `json:"publishYear" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl"    validate:"omitempty,url"`
	Price       float64 `json:"price"       validate:"gte=0"`
	RentalPrice float64 `json:"rentalPrice" validate:"gte=0"`
	Stock       int     `json:"stock"       validate:"gte=0"`
}

type profileRequest struct {
	FullName string `json:"fullName" validate:"omitempty,min=1"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}
