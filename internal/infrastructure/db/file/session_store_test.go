package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bookshelf/storefront/internal/core/domain"
)

func newStore(t *testing.T) *SessionStore {
	t.Helper()
	return NewSessionStore(filepath.Join(t.TempDir(), "nested", "session.json"))
}

func TestSessionStore_LoadMissing(t *testing.T) {
	s := newStore(t)
	ps, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ps != nil {
		t.Fatalf("expected no session, got %+v", ps)
	}
}

func TestSessionStore_SaveLoadClear(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	want := domain.PersistedSession{
		Token: "tok",
		User:  domain.User{ID: 7, FullName: "Ada", Email: "ada@example.com", Role: domain.RoleAdmin},
	}

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600, got %o", perm)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || *got != want {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second clear should be a no-op: %v", err)
	}
	if got, _ := s.Load(ctx); got != nil {
		t.Fatalf("expected cleared session, got %+v", got)
	}
}

func TestSessionStore_Corrupt(t *testing.T) {
	s := newStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := s.Load(context.Background()); !errors.Is(err, domain.ErrCorruptSession) {
		t.Fatalf("expected ErrCorruptSession, got %v", err)
	}
}

func TestSessionStore_TokenWithoutUserIsCorrupt(t *testing.T) {
	for name, body := range map[string]string{
		"no user":    `{"token":"tok"}`,
		"null user":  `{"token":"tok","user":null}`,
		"no user id": `{"token":"tok","user":{"email":"a@b.c"}}`,
		"no token":   `{"user":{"id":7}}`,
	} {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			if err := os.MkdirAll(filepath.Dir(s.Path()), 0o700); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := os.WriteFile(s.Path(), []byte(body), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}

			ps, err := s.Load(context.Background())
			if !errors.Is(err, domain.ErrCorruptSession) {
				t.Fatalf("expected ErrCorruptSession, got %v (%+v)", err, ps)
			}
		})
	}
}
