package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/ports"
)

// AccountService manages the session user's profile and, for admins, the
// user directory.
type AccountService struct {
	session ports.SessionService
	users   ports.UserBackend
	bills   ports.BillBackend
	log     zerolog.Logger
}

func NewAccountService(session ports.SessionService, users ports.UserBackend, bills ports.BillBackend, log zerolog.Logger) *AccountService {
	return &AccountService{session: session, users: users, bills: bills, log: log}
}

func (s *AccountService) Profile(ctx context.Context) (*domain.User, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetProfile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// UpdateProfile always targets the session user, whatever id in carries.
func (s *AccountService) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.User, error) {
	token, user, err := requireUser(s.session)
	if err != nil {
		return nil, err
	}
	in.ID = user.ID
	updated, err := s.users.UpdateProfile(ctx, token, in)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.log.Info().Int64("user_id", user.ID).Msg("profile updated")
	return updated, nil
}

// DeleteProfile removes the session user's account and logs out.
func (s *AccountService) DeleteProfile(ctx context.Context) error {
	token, user, err := requireUser(s.session)
	if err != nil {
		return err
	}
	if err := s.users.DeleteProfile(ctx, token); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	s.log.Info().Int64("user_id", user.ID).Msg("profile deleted")
	return s.session.Logout(ctx)
}

func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AccountService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (s *AccountService) DeleteUser(ctx context.Context, id int64) error {
	token, err := requireToken(s.session)
	if err != nil {
		return err
	}
	if err := s.users.DeleteUser(ctx, token, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *AccountService) ChangeRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	user, err := s.users.UpdateUserRole(ctx, token, id, role.Normalize())
	if err != nil {
		return nil, fmt.Errorf("change role of user %d: %w", id, err)
	}
	s.log.Info().Int64("user_id", id).Str("role", string(role.Normalize())).Msg("role changed")
	return user, nil
}

func (s *AccountService) UserBills(ctx context.Context, id int64) ([]domain.Bill, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	bills, err := s.bills.ListUserBills(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("list bills of user %d: %w", id, err)
	}
	return bills, nil
}

func (s *AccountService) UserBooks(ctx context.Context, id int64) ([]domain.Book, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	books, err := s.users.ListUserBooks(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("list books of user %d: %w", id, err)
	}
	return books, nil
}
