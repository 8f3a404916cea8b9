package domain

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the new-account payload sent to /auth/register.
type Profile struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// LoginResult is the backend payload of a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// PersistedSession is the token and user record pair that survives a restart.
// Both halves are always written and cleared together.
type PersistedSession struct {
	Token string `json:"token" bson:"token"`
	User  User   `json:"user" bson:"user"`
}

// Session is a read-only snapshot of the session manager's state.
type Session struct {
	Token         string
	User          *User
	Role          Role
	Authenticated bool
	Loading       bool
}
