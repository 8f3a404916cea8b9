package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bookshelf/storefront/internal/core/domain"
)

func (c *Client) ListBooks(ctx context.Context, token string) ([]domain.Book, error) {
	var out []domain.Book
	err := c.do(ctx, call{method: http.MethodGet, route: "/library/books", path: "/library/books", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBook(ctx context.Context, token string, id int64) (*domain.Book, error) {
	var out domain.Book
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/library/books/{id}",
		path:   fmt.Sprintf("/library/books/%d", id),
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBook(ctx context.Context, token string, in domain.BookInput) (*domain.Book, error) {
	var out domain.Book
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/library/admin/books",
		path:   "/library/admin/books",
		token:  token,
		in:     in,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBook(ctx context.Context, token string, id int64, in domain.BookInput) (*domain.Book, error) {
	var out domain.Book
	err := c.do(ctx, call{
		method: http.MethodPut,
		route:  "/library/admin/books/{id}",
		path:   fmt.Sprintf("/library/admin/books/%d", id),
		token:  token,
		in:     in,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBook(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/library/admin/books/{id}",
		path:   fmt.Sprintf("/library/admin/books/%d", id),
		token:  token,
	})
}
