package mockbackend

import (
	"fmt"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// Seed accounts, usable on a fresh mock backend.
const (
	SeedAdminEmail    = "admin@library.test"
	SeedAdminPassword = "admin123"
	SeedUserEmail     = "reader@library.test"
	SeedUserPassword  = "reader123"
)

var seedBooks = []domain.BookInput{
	{Title: "The Pragmatic Programmer", Author: "Andrew Hunt, David Thomas", ISBN: "9780135957059", Genre: "Software", Pages: 352, PublishYear: 2019, Price: 42.50, RentalPrice: 4.50, Stock: 5},
	{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719", Genre: "Science Fiction", Pages: 688, PublishYear: 1965, Price: 10.00, RentalPrice: 5.00, Stock: 3},
	{Title: "The Name of the Rose", Author: "Umberto Eco", ISBN: "9780156001311", Genre: "Mystery", Pages: 536, PublishYear: 1980, Price: 18.99, RentalPrice: 3.25, Stock: 2},
	{Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: "9780141439518", Genre: "Classic", Pages: 480, PublishYear: 1813, Price: 7.99, RentalPrice: 1.50, Stock: 8},
	{Title: "Out of Print", Author: "Anonymous", Genre: "Curiosity", Pages: 100, PublishYear: 1901, Price: 99.00, RentalPrice: 9.00, Stock: 0},
}

// Seed fills an empty library with an admin, a reader and a few books.
func Seed(lib *Library, auth *AuthService) error {
	if _, err := auth.create(domain.Profile{Email: SeedAdminEmail, Password: SeedAdminPassword, FullName: "Library Admin"}, domain.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if _, err := auth.create(domain.Profile{Email: SeedUserEmail, Password: SeedUserPassword, FullName: "Avid Reader"}, domain.RoleUser); err != nil {
		return fmt.Errorf("seed reader: %w", err)
	}
	for _, b := range seedBooks {
		lib.AddBook(b)
	}
	return nil
}
