package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// CreateBill submits a checkout. It is a single call; the client never
// resubmits on failure.
func (c *Client) CreateBill(ctx context.Context, token string, req domain.TransactionRequest) (*domain.Bill, error) {
	var out domain.Bill
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/library/bills",
		path:   "/library/bills",
		token:  token,
		in:     req,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBill(ctx context.Context, token string, id int64) (*domain.Bill, error) {
	var out domain.Bill
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/library/bills/{id}",
		path:   fmt.Sprintf("/library/bills/%d", id),
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUserBills(ctx context.Context, token string, userID int64) ([]domain.Bill, error) {
	var out []domain.Bill
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/library/bills/user/{id}",
		path:   fmt.Sprintf("/library/bills/user/%d", userID),
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAllBills(ctx context.Context, token string) ([]domain.Bill, error) {
	var out []domain.Bill
	err := c.do(ctx, call{method: http.MethodGet, route: "/library/admin/bills", path: "/library/admin/bills", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return out, nil
}
