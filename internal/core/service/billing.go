package service

import (
	"context"
	"fmt"

	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/ports"
)

// BillingService reads bills for the current user and, for admins, everyone.
type BillingService struct {
	session ports.SessionService
	bills   ports.BillBackend
}

func NewBillingService(session ports.SessionService, bills ports.BillBackend) *BillingService {
	return &BillingService{session: session, bills: bills}
}

// MyBills lists the bills of the session user.
func (s *BillingService) MyBills(ctx context.Context) ([]domain.Bill, error) {
	token, user, err := requireUser(s.session)
	if err != nil {
		return nil, err
	}
	bills, err := s.bills.ListUserBills(ctx, token, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list bills of user %d: %w", user.ID, err)
	}
	return bills, nil
}

func (s *BillingService) GetBill(ctx context.Context, id int64) (*domain.Bill, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	bill, err := s.bills.GetBill(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("get bill %d: %w", id, err)
	}
	return bill, nil
}

func (s *BillingService) AllBills(ctx context.Context) ([]domain.Bill, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	bills, err := s.bills.ListAllBills(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list all bills: %w", err)
	}
	return bills, nil
}
