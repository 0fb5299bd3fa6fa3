package domain

import "github.com/google/uuid"

// Role distinguishes the two kinds of user the system serves.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleRecruiter
}

// User is an account known to the service. Accounts are provisioned by the
// external auth service; this service only reads them.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  Role
}

// Session is the identity of the caller for one request. It is resolved by
// middleware and then passed explicitly to every service method that needs it.
type Session struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   Role
}

// SessionFor builds the Session for an authenticated user.
func SessionFor(u User) Session {
	return Session{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Is reports whether the session holds the given role.
func (s Session) Is(r Role) bool {
	return s.Role == r
}
