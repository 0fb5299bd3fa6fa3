package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recruitflow/availability/internal/api"
	"github.com/recruitflow/availability/internal/availability"
	"github.com/recruitflow/availability/internal/domain"
)

// memoryBackend is an in-process availability.Backend.
type memoryBackend struct {
	slots []domain.Slot
}

func (m *memoryBackend) ListSlots(context.Context) ([]domain.Slot, error) {
	return append([]domain.Slot(nil), m.slots...), nil
}

func (m *memoryBackend) CreateSlots(_ context.Context, in []domain.Interval) ([]domain.Slot, error) {
	var out []domain.Slot
	for _, iv := range in {
		out = append(out, domain.Slot{ID: uuid.New(), StartTime: iv.Start, EndTime: iv.End, Origin: domain.OriginPersisted})
	}
	m.slots = append(m.slots, out...)
	return out, nil
}

func (m *memoryBackend) DeleteSlot(_ context.Context, id uuid.UUID) error {
	for i, s := range m.slots {
		if s.ID == id {
			m.slots = append(m.slots[:i], m.slots[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeDashboard struct{ d api.Dashboard }

func (f fakeDashboard) Dashboard(context.Context) (api.Dashboard, error) { return f.d, nil }

func runShell(t *testing.T, backend *memoryBackend, script string) string {
	t.Helper()
	var out bytes.Buffer
	policy := availability.DefaultPolicy(time.UTC)
	sh := newShell(availability.NewWorkspace(backend, policy, nil), fakeDashboard{}, policy, &out)
	require.NoError(t, sh.run(context.Background(), strings.NewReader(script)))
	return out.String()
}

func TestShell_AddSubmit(t *testing.T) {
	backend := &memoryBackend{}

	out := runShell(t, backend, "add 2030-06-03 09:00 10:00\nadd 2030-06-03 10:00 11:00\nsubmit\nquit\n")

	assert.Contains(t, out, "saved 2 slot(s)")
	assert.Len(t, backend.slots, 2)
}

func TestShell_RejectionsAreReadable(t *testing.T) {
	out := runShell(t, &memoryBackend{}, strings.Join([]string{
		"add 2030-06-03 09:00 09:45",
		"add 2030-06-08 09:00 10:00",
		"submit",
		"",
	}, "\n"))

	assert.Contains(t, out, "error: slot must be exactly 1 hour")
	assert.Contains(t, out, "error: slots cannot fall on a weekend")
	assert.Contains(t, out, "error: add at least one time slot")
}

func TestShell_RemoveByNumber(t *testing.T) {
	start := time.Date(2030, 6, 3, 9, 0, 0, 0, time.UTC)
	backend := &memoryBackend{slots: []domain.Slot{
		{ID: uuid.New(), StartTime: start, EndTime: start.Add(time.Hour)},
		{ID: uuid.New(), StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour)},
	}}
	keep := backend.slots[1].ID

	out := runShell(t, backend, "remove 1\nlist\n")

	assert.Contains(t, out, "removed")
	require.Len(t, backend.slots, 1)
	assert.Equal(t, keep, backend.slots[0].ID)
}

func TestShell_UnknownCommand(t *testing.T) {
	out := runShell(t, &memoryBackend{}, "frobnicate\n")

	assert.Contains(t, out, `unknown command "frobnicate"`)
}
