// Package service contains the business logic for the availability API.
// Services check the caller's role, enforce scheduling rules, and orchestrate
// repo calls. No SQL lives here; services depend on repo interfaces.
package service

import (
	"fmt"

	"github.com/recruitflow/availability/internal/domain"
)

// requireRole returns domain.ErrForbidden unless the session holds role.
func requireRole(sess domain.Session, role domain.Role) error {
	if !sess.Is(role) {
		return fmt.Errorf("%w: %s only", domain.ErrForbidden, role)
	}
	return nil
}
