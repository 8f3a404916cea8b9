package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bookshelf/storefront/internal/core/domain"
)

func (c *Client) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{method: http.MethodGet, route: "/library/profile", path: "/library/profile", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, in domain.ProfileUpdate) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{method: http.MethodPut, route: "/library/profile", path: "/library/profile", token: token, in: in, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProfile(ctx context.Context, token string) error {
	return c.do(ctx, call{method: http.MethodDelete, route: "/library/profile", path: "/library/profile", token: token})
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, call{method: http.MethodGet, route: "/library/admin/users", path: "/library/admin/users", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, token string, id int64) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/library/users/{id}",
		path:   fmt.Sprintf("/library/users/%d", id),
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/library/admin/users/{id}",
		path:   fmt.Sprintf("/library/admin/users/%d", id),
		token:  token,
	})
}

type roleRequest struct {
	Role domain.Role `json:"role"`
}

func (c *Client) UpdateUserRole(ctx context.Context, token string, id int64, role domain.Role) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{
		method: http.MethodPut,
		route:  "/library/users/{id}/role",
		path:   fmt.Sprintf("/library/users/%d/role", id),
		token:  token,
		in:     roleRequest{Role: role},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUserBooks(ctx context.Context, token string, id int64) ([]domain.Book, error) {
	var out []domain.Book
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/library/users/{id}/books",
		path:   fmt.Sprintf("/library/users/%d/books", id),
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
