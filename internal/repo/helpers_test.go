package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// rolled back when the test finishes, giving free per-test isolation.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test, so no cleanup SQL is needed.
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// mustCreateUser inserts a user directly; accounts are provisioned by the
// auth service in production, so no repo method writes them.
func mustCreateUser(t *testing.T, tx pgx.Tx, name string, role domain.Role) domain.User {
	t.Helper()
	u := domain.User{Name: name, Email: uuid.NewString() + "@example.com", Role: role}
	err := tx.QueryRow(context.Background(),
		`INSERT INTO users (name, email, role) VALUES (@name, @email, @role) RETURNING id`,
		pgx.NamedArgs{"name": u.Name, "email": u.Email, "role": string(role)},
	).Scan(&u.ID)
	require.NoError(t, err, "create user")
	return u
}

// weekday returns 2030-06-<day> hh:00 UTC. June 3 2030 is a Monday.
func weekday(day, hh int) time.Time {
	return time.Date(2030, time.June, day, hh, 0, 0, 0, time.UTC)
}

func hour(start time.Time) domain.Interval {
	return domain.Interval{Start: start, End: start.Add(time.Hour)}
}
