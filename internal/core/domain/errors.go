package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists")

	ErrUnknownCartKind    = errors.New("unknown cart kind")
	ErrCartLocked         = errors.New("cart is locked while a checkout is submitting")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and the available stock")
	ErrCheckoutInProgress = errors.New("a checkout is already in progress")
)

// ErrCorruptSession is returned by a session store whose persisted record
// cannot be decoded. The session manager treats it as "no session".
var ErrCorruptSession = errors.New("persisted session is unreadable")
