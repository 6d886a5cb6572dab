package repository

import (
	"context"
	"fmt"
	"sync"

	"herdly-go/domain/herd"
)

// MemoryHerdStore implements herd.Store and herd.Coordinator in memory.
// It honors the same conditional-update contract as the MongoDB store,
// which makes it a drop-in substitute for unit tests.
//
// A transaction holds the store's write lock for its whole duration and
// rolls back by restoring a snapshot, so concurrent operations are
// trivially serialized, matching the observable guarantees of the real
// store.
type MemoryHerdStore struct {
	mu    sync.RWMutex
	herds map[string]*herd.Herd
}

// NewMemoryHerdStore creates an empty in-memory herd store.
func NewMemoryHerdStore() *MemoryHerdStore {
	return &MemoryHerdStore{
		herds: make(map[string]*herd.Herd),
	}
}

// FindByName retrieves a herd by name. Returns nil, nil when absent.
func (m *MemoryHerdStore) FindByName(ctx context.Context, name string) (*herd.Herd, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findLocked(name), nil
}

// FindAll retrieves all herds.
func (m *MemoryHerdStore) FindAll(ctx context.Context) ([]*herd.Herd, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	herds := make([]*herd.Herd, 0, len(m.herds))
	for _, h := range m.herds {
		herds = append(herds, h.Clone())
	}
	return herds, nil
}

// InsertIfAbsent creates a new herd, failing on a duplicate name.
func (m *MemoryHerdStore) InsertIfAbsent(ctx context.Context, h *herd.Herd) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(h)
}

// ConditionalUpdate applies mutations if every predicate still holds.
func (m *MemoryHerdStore) ConditionalUpdate(ctx context.Context, name string, preds []herd.Predicate, muts []herd.Mutation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateLocked(name, preds, muts)
}

// InTransaction runs fn against a view of the store with the write lock
// held. On error the pre-transaction snapshot is restored, so partial
// writes are never observable.
func (m *MemoryHerdStore) InTransaction(ctx context.Context, fn func(ctx context.Context, s herd.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[string]*herd.Herd, len(m.herds))
	for name, h := range m.herds {
		snapshot[name] = h.Clone()
	}

	if err := fn(ctx, &memTxView{store: m}); err != nil {
		m.herds = snapshot
		return err
	}
	return nil
}

// memTxView is the Store handed to InTransaction callbacks. The parent
// lock is already held, so it calls the locked internals directly.
type memTxView struct {
	store *MemoryHerdStore
}

func (v *memTxView) FindByName(ctx context.Context, name string) (*herd.Herd, error) {
	return v.store.findLocked(name), nil
}

func (v *memTxView) FindAll(ctx context.Context) ([]*herd.Herd, error) {
	herds := make([]*herd.Herd, 0, len(v.store.herds))
	for _, h := range v.store.herds {
		herds = append(herds, h.Clone())
	}
	return herds, nil
}

func (v *memTxView) InsertIfAbsent(ctx context.Context, h *herd.Herd) error {
	return v.store.insertLocked(h)
}

func (v *memTxView) ConditionalUpdate(ctx context.Context, name string, preds []herd.Predicate, muts []herd.Mutation) error {
	return v.store.updateLocked(name, preds, muts)
}

func (m *MemoryHerdStore) findLocked(name string) *herd.Herd {
	h, ok := m.herds[name]
	if !ok {
		return nil
	}
	return h.Clone()
}

func (m *MemoryHerdStore) insertLocked(h *herd.Herd) error {
	if _, ok := m.herds[h.Name]; ok {
		return herd.NewError(herd.KindDuplicateName, "herd %q already exists", h.Name)
	}
	m.herds[h.Name] = h.Clone()
	return nil
}

func (m *MemoryHerdStore) updateLocked(name string, preds []herd.Predicate, muts []herd.Mutation) error {
	h, ok := m.herds[name]
	if !ok {
		return herd.NewError(herd.KindConflict, "herd %q changed concurrently or is gone", name)
	}
	for _, p := range preds {
		if !evalPredicate(h, p) {
			return herd.NewError(herd.KindConflict, "herd %q changed concurrently or is gone", name)
		}
	}
	for _, mut := range muts {
		applyMutation(h, mut)
	}
	return nil
}

// evalPredicate checks one guard against a herd. The predicate set is
// closed; an unknown type is a programming error and panics.
func evalPredicate(h *herd.Herd, p herd.Predicate) bool {
	switch p := p.(type) {
	case herd.NotArchived:
		return !h.Archived
	case herd.Contains:
		return h.Contains(p.Animal)
	case herd.NotContains:
		return !h.Contains(p.Animal)
	default:
		panic(fmt.Sprintf("unknown predicate type %T", p))
	}
}

// applyMutation applies one change to a herd in place.
func applyMutation(h *herd.Herd, m herd.Mutation) {
	switch m := m.(type) {
	case herd.PushMember:
		h.Add(m.Animal)
	case herd.PushMembers:
		for _, a := range m.Animals {
			h.Add(a)
		}
	case herd.PullMember:
		h.Remove(m.Animal)
	case herd.PullMembers:
		for _, a := range m.Animals {
			h.Remove(a)
		}
	case herd.MarkArchived:
		h.Members = []string{}
		h.Archived = true
	default:
		panic(fmt.Sprintf("unknown mutation type %T", m))
	}
}

// Ensure MemoryHerdStore implements the domain contracts
var (
	_ herd.Store       = (*MemoryHerdStore)(nil)
	_ herd.Coordinator = (*MemoryHerdStore)(nil)
)
