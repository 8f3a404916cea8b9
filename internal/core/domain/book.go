package domain

// Book is a catalog entry as served by the backend.
type Book struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn,omitempty"`
	Description string  `json:"description,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	Pages       int     `json:"pages,omitempty"`
	PublishYear int     `json:"publishYear,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Price       float64 `json:"price"`
	RentalPrice float64 `json:"rentalPrice"`
	Stock       int     `json:"stock"`
	Available   bool    `json:"available"`
}

// BookRef is the id-only book reference used on the wire.
type BookRef struct {
	ID int64 `json:"id"`
}

// BookInput carries the admin-editable fields of a book.
type BookInput struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn,omitempty"`
	Description string  `json:"description,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	Pages       int     `json:"pages,omitempty"`
	PublishYear int     `json:"publishYear,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Price       float64 `json:"price"`
	RentalPrice float64 `json:"rentalPrice"`
	Stock       int     `json:"stock"`
}
