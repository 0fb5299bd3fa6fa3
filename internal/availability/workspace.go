package availability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/recruitflow/availability/internal/domain"
)

// ErrNothingToSubmit is returned by Submit when no slot is staged.
var ErrNothingToSubmit = fmt.Errorf("%w: add at least one time slot", domain.ErrValidation)

// Backend is the server contract the workspace relies on.
// internal/client.Client is the HTTP implementation.
type Backend interface {
	// ListSlots returns the caller's persisted slots in server order.
	ListSlots(ctx context.Context) ([]domain.Slot, error)

	// CreateSlots stores all intervals or none.
	CreateSlots(ctx context.Context, slots []domain.Interval) ([]domain.Slot, error)

	// DeleteSlot removes one persisted slot by its server identity.
	DeleteSlot(ctx context.Context, id uuid.UUID) error
}

// Workspace merges a candidate's persisted slots with the slots they have
// staged locally but not yet submitted.
//
// All methods are safe for concurrent use. Network calls are made without
// holding the lock; the busy flags keep a second submit, or a second delete of
// the same slot, from being dispatched while the first is outstanding.
type Workspace struct {
	backend Backend
	policy  Policy
	log     *slog.Logger

	mu         sync.Mutex
	persisted  []domain.Slot
	staged     []domain.Slot
	submitting bool
	deleting   map[uuid.UUID]struct{}

	// gen counts confirmed server writes. A fetch that started under an
	// older gen is discarded so it cannot undo a submit or delete.
	gen uint64

	fetch singleflight.Group
}

// fetchTimeout bounds a shared fetch, which outlives the callers waiting on it.
const fetchTimeout = 30 * time.Second

// NewWorkspace returns an empty workspace. Call Refresh to load persisted slots.
func NewWorkspace(backend Backend, policy Policy, log *slog.Logger) *Workspace {
	if log == nil {
		log = slog.Default()
	}
	return &Workspace{
		backend:  backend,
		policy:   policy,
		log:      log,
		deleting: make(map[uuid.UUID]struct{}),
	}
}

// Refresh replaces the persisted set with the server's current list.
//
// Concurrent callers share a single request. The request is not bound to any
// one caller's context, so a caller that gives up returns ctx.Err() without
// failing the others. On error the persisted set is left as it was.
func (w *Workspace) Refresh(ctx context.Context) error {
	ch := w.fetch.DoChan("slots", func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return nil, w.load(fctx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return fmt.Errorf("availability.Workspace.Refresh: %w", res.Err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("availability.Workspace.Refresh: %w", ctx.Err())
	}
}

// load fetches the server list and installs it unless a write was confirmed
// while the request was out.
func (w *Workspace) load(ctx context.Context) error {
	w.mu.Lock()
	gen := w.gen
	w.mu.Unlock()

	slots, err := w.backend.ListSlots(ctx)
	if err != nil {
		return err
	}
	persisted := make([]domain.Slot, len(slots))
	for i, s := range slots {
		s.Origin = domain.OriginPersisted
		persisted[i] = s
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		w.log.DebugContext(ctx, "stale slot list discarded")
		return nil
	}
	w.persisted = persisted
	return nil
}

// Add validates [start, end) against every slot in the workspace and stages
// it on success. The returned slot carries the temporary ID used to remove it.
func (w *Workspace) Add(start, end time.Time) (domain.Slot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	iv := domain.Interval{Start: start, End: end}
	if err := Validate(w.policy, iv, w.mergedLocked()); err != nil {
		return domain.Slot{}, err
	}

	slot := domain.Slot{
		ID:        uuid.New(),
		StartTime: start,
		EndTime:   end,
		Origin:    domain.OriginStaged,
	}
	w.staged = append(w.staged, slot)
	return slot, nil
}

// Slots returns persisted slots in fetch order followed by staged slots in
// the order they were added.
func (w *Workspace) Slots() []domain.Slot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mergedLocked()
}

// Persisted returns a copy of the persisted set.
func (w *Workspace) Persisted() []domain.Slot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.Slot(nil), w.persisted...)
}

// Staged returns a copy of the staged set.
func (w *Workspace) Staged() []domain.Slot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.Slot(nil), w.staged...)
}

// Submitting reports whether a submit is in flight.
func (w *Workspace) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Deleting reports whether a delete of id is in flight.
func (w *Workspace) Deleting(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.deleting[id]
	return ok
}

// Remove drops the slot with the given ID.
// A staged slot is removed locally with no network call. A persisted slot is
// deleted on the server first and only removed locally once the server has
// confirmed. Returns domain.ErrNotFound for an unknown ID and domain.ErrBusy
// if a delete of the same slot is already outstanding.
func (w *Workspace) Remove(ctx context.Context, id uuid.UUID) error {
	w.mu.Lock()
	if i := indexOf(w.staged, id); i >= 0 {
		w.staged = append(w.staged[:i:i], w.staged[i+1:]...)
		w.mu.Unlock()
		return nil
	}
	if indexOf(w.persisted, id) < 0 {
		w.mu.Unlock()
		return fmt.Errorf("availability.Workspace.Remove: %w", domain.ErrNotFound)
	}
	if _, busy := w.deleting[id]; busy {
		w.mu.Unlock()
		return fmt.Errorf("availability.Workspace.Remove: %w", domain.ErrBusy)
	}
	w.deleting[id] = struct{}{}
	w.mu.Unlock()

	err := w.backend.DeleteSlot(ctx, id)

	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.deleting, id)
	if err != nil {
		w.log.WarnContext(ctx, "delete slot failed", "slot_id", id, "error", err)
		return fmt.Errorf("availability.Workspace.Remove: %w", err)
	}
	w.gen++
	if i := indexOf(w.persisted, id); i >= 0 {
		w.persisted = append(w.persisted[:i:i], w.persisted[i+1:]...)
	}
	w.log.DebugContext(ctx, "slot deleted", "slot_id", id)
	return nil
}

// Submit sends every staged slot to the server in one request.
//
// On success the submitted slots leave the staged set and the persisted set is
// re-fetched rather than patched with the response. On failure the staged set
// is untouched so the user can try again. Slots staged while the request was
// in flight stay staged.
func (w *Workspace) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return fmt.Errorf("availability.Workspace.Submit: %w", domain.ErrBusy)
	}
	if len(w.staged) == 0 {
		w.mu.Unlock()
		return ErrNothingToSubmit
	}
	batch := append([]domain.Slot(nil), w.staged...)
	w.submitting = true
	w.mu.Unlock()

	intervals := make([]domain.Interval, len(batch))
	for i, s := range batch {
		intervals[i] = s.Interval()
	}
	_, err := w.backend.CreateSlots(ctx, intervals)

	w.mu.Lock()
	w.submitting = false
	if err != nil {
		w.mu.Unlock()
		w.log.WarnContext(ctx, "submit availability failed", "staged", len(batch), "error", err)
		return fmt.Errorf("availability.Workspace.Submit: %w", err)
	}
	w.gen++
	for _, s := range batch {
		if i := indexOf(w.staged, s.ID); i >= 0 {
			w.staged = append(w.staged[:i:i], w.staged[i+1:]...)
		}
	}
	w.mu.Unlock()
	w.log.DebugContext(ctx, "availability submitted", "count", len(batch))

	// A fetch already in flight predates the write; start a new one.
	w.fetch.Forget("slots")

	if err := w.Refresh(ctx); err != nil {
		return fmt.Errorf("availability.Workspace.Submit: refresh after submit: %w", err)
	}
	return nil
}

func (w *Workspace) mergedLocked() []domain.Slot {
	out := make([]domain.Slot, 0, len(w.persisted)+len(w.staged))
	out = append(out, w.persisted...)
	return append(out, w.staged...)
}

func indexOf(slots []domain.Slot, id uuid.UUID) int {
	for i, s := range slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}
