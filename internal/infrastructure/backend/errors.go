package backend

import (
	"io"
	"net/http"
	"strings"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// APIError is a non-2xx backend response. Message is the backend's own
// user-displayable text when it sent one.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return strings.ToLower(http.StatusText(e.Status))
}

// Unwrap maps the status onto the domain's sentinel errors.
func (e *APIError) Unwrap() error {
	auth := strings.HasPrefix(e.Path, "/auth/")
	switch e.Status {
	case http.StatusUnauthorized:
		if auth {
			return domain.ErrInvalidCredentials
		}
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		if auth {
			return domain.ErrInvalidCredentials
		}
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		if auth {
			return domain.ErrUserExists
		}
	}
	return nil
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newAPIError(method, path string, resp *http.Response) *APIError {
	e := &APIError{Method: method, Path: path, Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return e
	}

	var env errorEnvelope
	if json.Unmarshal(data, &env) == nil {
		switch {
		case env.Message != "":
			e.Message = env.Message
		case env.Error != "":
			e.Message = env.Error
		}
		return e
	}

	if text := strings.TrimSpace(string(data)); !strings.HasPrefix(text, "<") {
		e.Message = text
	}
	return e
}
