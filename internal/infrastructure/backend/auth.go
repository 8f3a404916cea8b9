package backend

import (
	"context"
	"net/http"

	"github.com/bookshelf/storefront/internal/core/domain"
)

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	var out domain.LoginResult
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/auth/login",
		path:   "/auth/login",
		in:     creds,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/auth/register",
		path:   "/auth/register",
		in:     profile,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
