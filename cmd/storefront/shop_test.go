package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookshelf/storefront/internal/core/service"
	"github.com/bookshelf/storefront/internal/infrastructure/backend"
	"github.com/bookshelf/storefront/internal/infrastructure/db/memory"
	"github.com/bookshelf/storefront/internal/mockbackend"
)

func newTestStorefront(t *testing.T) *service.Storefront {
	t.Helper()
	lib := mockbackend.NewLibrary()
	auth := mockbackend.NewAuthService(lib, "secret", time.Hour)
	require.NoError(t, mockbackend.Seed(lib, auth))
	srv := httptest.NewServer(mockbackend.NewRouter(lib, auth, zerolog.Nop()))
	t.Cleanup(srv.Close)

	client := backend.New(backend.Config{BaseURL: srv.URL}, zerolog.Nop())
	sf := service.New(client, memory.NewSessionStore(), zerolog.Nop())
	require.NoError(t, sf.Session.Initialize(context.Background()))
	return sf
}

func runShell(t *testing.T, sf *service.Storefront, script string) string {
	t.Helper()
	var out bytes.Buffer
	sh := newShell(sf, strings.NewReader(script), &out)
	sh.now = func() time.Time { return time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, sh.loop(context.Background()))
	return out.String()
}

func TestShell_ShoppingSession(t *testing.T) {
	sf := newTestStorefront(t)

	out := runShell(t, sf, strings.Join([]string{
		"buy 1",
		"login " + mockbackend.SeedUserEmail,
		mockbackend.SeedUserPassword,
		"buy 2 2",
		"loan 1",
		"cart",
		"checkout",
		"cart",
		"exit",
		"books",
	}, "\n")+"\n")

	assert.Contains(t, out, "error: authentication required")
	assert.Contains(t, out, "Welcome, Avid Reader.")
	assert.Contains(t, out, "Total: 24.50")
	assert.Contains(t, out, "2026-06-10")
	assert.Contains(t, out, "Checkout complete.")
	assert.Contains(t, out, "Cart is empty")
	assert.True(t, sf.Cart.Contents().IsEmpty())
}

func TestShell_Errors(t *testing.T) {
	sf := newTestStorefront(t)

	out := runShell(t, sf, "frobnicate\nremove wishlist 1\nbook x\ncheckout\n")

	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, "unknown cart kind")
	assert.Contains(t, out, `invalid id "x"`)
	assert.Contains(t, out, "authentication required")
}
