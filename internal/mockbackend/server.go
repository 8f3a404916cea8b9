package mockbackend

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookshelf/storefront/internal/api/handler"
	"github.com/bookshelf/storefront/internal/api/middleware"
	"github.com/bookshelf/storefront/internal/core/domain"
	infrahttp "github.com/bookshelf/storefront/internal/infrastructure/http"
)

// Server serves the library REST API from a Library.
type Server struct {
	lib  *Library
	auth *AuthService
	log  zerolog.Logger
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

// NewRouter builds the Echo instance serving the library API.
func NewRouter(lib *Library, auth *AuthService, log zerolog.Logger) *echo.Echo {
	s := &Server{lib: lib, auth: auth, log: log}

	e := infrahttp.NewEcho(log, nil)
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = s.handleError

	requireAuth := middleware.Auth(auth.jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", s.register)
	e.POST("/auth/login", s.login)

	library := e.Group("/library")
	library.GET("/books", s.listBooks)
	library.GET("/books/:id", s.getBook)

	// --- Authenticated routes ---
	user := library.Group("", requireAuth)
	user.GET("/profile", s.getProfile)
	user.PUT("/profile", s.updateProfile)
	user.DELETE("/profile", s.deleteProfile)
	user.GET("/users/:id", s.getUser)
	user.GET("/users/:id/books", s.userBooks)
	user.PUT("/users/:id/role", s.changeRole, adminOnly)
	user.POST("/bills", s.createBill)
	user.GET("/bills/:id", s.getBill)
	user.GET("/bills/user/:id", s.userBills)

	// --- Admin routes ---
	admin := library.Group("/admin", requireAuth, adminOnly)
	admin.POST("/books", s.createBook)
	admin.PUT("/books/:id", s.updateBook)
	admin.DELETE("/books/:id", s.deleteBook)
	admin.GET("/users", s.listUsers)
	admin.DELETE("/users/:id", s.deleteUser)
	admin.GET("/bills", s.listBills)

	return e
}

// handleError renders {"error": "..."} the way the real backend does.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code, msg = he.Code, fmt.Sprintf("%v", he.Message)
	case errors.Is(err, domain.ErrInvalidCredentials):
		code, msg = http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, domain.ErrForbidden):
		code, msg = http.StatusForbidden, "access denied"
	case errors.Is(err, domain.ErrNotFound):
		code, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUserExists):
		code, msg = http.StatusConflict, "email already registered"
	case errors.Is(err, errInsufficientStock):
		code, msg = http.StatusConflict, err.Error()
	case errors.Is(err, errBadTransaction):
		code, msg = http.StatusBadRequest, err.Error()
	default:
		s.log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	_ = c.JSON(code, map[string]string{"error": msg})
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func caller(c echo.Context) (int64, domain.Role) {
	id, _ := c.Get(middleware.KeyUserID).(int64)
	role, _ := c.Get(middleware.KeyRole).(domain.Role)
	return id, role
}

// selfOrAdmin allows the caller to act on target only as itself or as admin.
func selfOrAdmin(c echo.Context, target int64) error {
	id, role := caller(c)
	if id != target && role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// --- auth ---

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := s.auth.Register(c.Request().Context(), domain.Profile{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	token, user, err := s.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: *user})
}

// --- books ---

func (s *Server) listBooks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.lib.Books())
}

func (s *Server) getBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	b, err := s.lib.Book(id)
	if err != nil {
		return fmt.Errorf("book %d: %w", id, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) createBook(c echo.Context) error {
	var in domain.BookInput
	if err := c.Bind(&in); err != nil || in.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.JSON(http.StatusCreated, s.lib.AddBook(in))
}

func (s *Server) updateBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in domain.BookInput
	if err := c.Bind(&in); err != nil || in.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	b, err := s.lib.UpdateBook(id, in)
	if err != nil {
		return fmt.Errorf("book %d: %w", id, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) deleteBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.lib.DeleteBook(id); err != nil {
		return fmt.Errorf("book %d: %w", id, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- users ---

func (s *Server) getProfile(c echo.Context) error {
	id, _ := caller(c)
	u, err := s.lib.User(id)
	if err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateProfile(c echo.Context) error {
	id, _ := caller(c)
	var in domain.ProfileUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if in.ID != 0 && in.ID != id {
		return domain.ErrForbidden
	}
	var hash []byte
	if in.Password != "" {
		h, err := s.auth.HashPassword(in.Password)
		if err != nil {
			return err
		}
		hash = h
	}
	u, err := s.lib.updateUser(id, in, hash)
	if err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) deleteProfile(c echo.Context) error {
	id, _ := caller(c)
	if err := s.lib.DeleteUser(id); err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.lib.Users())
}

func (s *Server) getUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := selfOrAdmin(c, id); err != nil {
		return err
	}
	u, err := s.lib.User(id)
	if err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.lib.DeleteUser(id); err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) changeRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req roleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := s.lib.SetRole(id, domain.Role(req.Role))
	if err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) userBooks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := selfOrAdmin(c, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.lib.BooksOf(id))
}

// --- bills ---

func (s *Server) createBill(c echo.Context) error {
	var req domain.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := selfOrAdmin(c, req.User.ID); err != nil {
		return err
	}
	bill, err := s.lib.CreateBill(req)
	if err != nil {
		return err
	}
	s.log.Info().Int64("bill_id", bill.ID).Int64("user_id", bill.User.ID).Float64("total", bill.Total).Msg("bill created")
	return c.JSON(http.StatusCreated, bill)
}

func (s *Server) getBill(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	bill, err := s.lib.Bill(id)
	if err != nil {
		return fmt.Errorf("bill %d: %w", id, err)
	}
	if err := selfOrAdmin(c, bill.User.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bill)
}

func (s *Server) userBills(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := selfOrAdmin(c, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.lib.Bills(id))
}

func (s *Server) listBills(c echo.Context) error {
	return c.JSON(http.StatusOK, s.lib.Bills(0))
}
