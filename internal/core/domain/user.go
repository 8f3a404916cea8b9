package domain

import "strings"

// Role is the advisory authorization level carried by a user record.
// The backend enforces real authorization; the storefront only uses it to
// gate what it offers.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Normalize maps an empty or unrecognised role to RoleUser.
func (r Role) Normalize() Role {
	switch Role(strings.ToUpper(strings.TrimSpace(string(r)))) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// User is the user record returned by the backend and persisted next to the
// bearer token.
type User struct {
	ID       int64  `json:"id" bson:"id"`
	FullName string `json:"fullName,omitempty" bson:"full_name,omitempty"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Role     Role   `json:"role,omitempty" bson:"role,omitempty"`
}

// UserRef is the id-only user reference used in transaction requests and bills.
type UserRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ProfileUpdate carries the editable fields of the current user's profile.
type ProfileUpdate struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}
