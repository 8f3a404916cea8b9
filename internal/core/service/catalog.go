package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/ports"
)

// CatalogService reads the catalog anonymously or with the current session,
// and forwards admin edits with the session token.
type CatalogService struct {
	session ports.SessionService
	books   ports.BookBackend
	log     zerolog.Logger
}

func NewCatalogService(session ports.SessionService, books ports.BookBackend, log zerolog.Logger) *CatalogService {
	return &CatalogService{session: session, books: books, log: log}
}

func (s *CatalogService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := s.books.ListBooks(ctx, s.session.Current().Token)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *CatalogService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	book, err := s.books.GetBook(ctx, s.session.Current().Token, id)
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return book, nil
}

func (s *CatalogService) CreateBook(ctx context.Context, in domain.BookInput) (*domain.Book, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	book, err := s.books.CreateBook(ctx, token, in)
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	s.log.Info().Int64("book_id", book.ID).Str("title", book.Title).Msg("book created")
	return book, nil
}

func (s *CatalogService) UpdateBook(ctx context.Context, id int64, in domain.BookInput) (*domain.Book, error) {
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	book, err := s.books.UpdateBook(ctx, token, id, in)
	if err != nil {
		return nil, fmt.Errorf("update book %d: %w", id, err)
	}
	s.log.Info().Int64("book_id", id).Msg("book updated")
	return book, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, id int64) error {
	token, err := requireToken(s.session)
	if err != nil {
		return err
	}
	if err := s.books.DeleteBook(ctx, token, id); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	s.log.Info().Int64("book_id", id).Msg("book deleted")
	return nil
}

// requireToken returns the bearer token of an authenticated session.
func requireToken(session ports.SessionService) (string, error) {
	s := session.Current()
	if !s.Authenticated {
		return "", domain.ErrUnauthenticated
	}
	return s.Token, nil
}

// requireUser returns the token and user of an authenticated session.
func requireUser(session ports.SessionService) (string, *domain.User, error) {
	s := session.Current()
	if !s.Authenticated || s.User == nil {
		return "", nil, domain.ErrUnauthenticated
	}
	return s.Token, s.User, nil
}
