package mockbackend

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookshelf/storefront/internal/api/middleware"
	"github.com/bookshelf/storefront/internal/core/domain"
)

// AuthService implements registration and login against the Library.
type AuthService struct {
	lib       *Library
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(lib *Library, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{lib: lib, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// Register creates a USER account.
func (s *AuthService) Register(_ context.Context, profile domain.Profile) (*domain.User, error) {
	return s.create(profile, domain.RoleUser)
}

func (s *AuthService) create(profile domain.Profile, role domain.Role) (*domain.User, error) {
	if profile.Email == "" || profile.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(profile.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.lib.addUser(domain.User{
		FullName: profile.FullName,
		Email:    profile.Email,
		Role:     role,
	}, hash)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Login checks the password and issues a signed token.
func (s *AuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, hash, err := s.lib.accountByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// HashPassword is exposed for profile password changes.
func (s *AuthService) HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

func (s *AuthService) generateToken(user domain.User) (string, error) {
	now := s.now()
	claims := middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
