package herd

import (
	"context"
	"sort"
	"strings"
)

// Service provides business logic for herd management.
//
// Single-record mutations rely on the store's conditional update; the
// guard is re-checked when the write commits, so a precondition observed
// here can still fail there, surfacing as KindConflict. Multi-record
// mutations run inside one Coordinator transaction and re-validate every
// precondition against the transactional view before writing.
type Service struct {
	store Store
	txn   Coordinator
}

// NewService creates a new herd service.
func NewService(store Store, txn Coordinator) *Service {
	return &Service{
		store: store,
		txn:   txn,
	}
}

// Create inserts a new empty, unarchived herd.
func (s *Service) Create(ctx context.Context, name, description string) (*Herd, error) {
	if isBlank(name) {
		return nil, NewError(KindEmptyInput, "herd name must not be blank")
	}

	h := New(name, description)
	if err := s.store.InsertIfAbsent(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// AddMember inserts an animal into a herd's member set.
func (s *Service) AddMember(ctx context.Context, herdName, animal string) error {
	if isBlank(herdName) || isBlank(animal) {
		return NewError(KindEmptyInput, "herd name and animal ID must not be blank")
	}

	h, err := mustFind(ctx, s.store, herdName)
	if err != nil {
		return err
	}
	if h.Contains(animal) {
		return NewError(KindAlreadyMember, "animal %q is already in herd %q", animal, herdName)
	}

	return s.store.ConditionalUpdate(ctx, herdName,
		[]Predicate{NotArchived{}, NotContains{Animal: animal}},
		[]Mutation{PushMember{Animal: animal}})
}

// RemoveMember removes an animal from a herd's member set.
func (s *Service) RemoveMember(ctx context.Context, herdName, animal string) error {
	if isBlank(herdName) || isBlank(animal) {
		return NewError(KindEmptyInput, "herd name and animal ID must not be blank")
	}

	h, err := mustFind(ctx, s.store, herdName)
	if err != nil {
		return err
	}
	if !h.Contains(animal) {
		return NewError(KindNotMember, "animal %q is not in herd %q", animal, herdName)
	}

	return s.store.ConditionalUpdate(ctx, herdName,
		[]Predicate{NotArchived{}, Contains{Animal: animal}},
		[]Mutation{PullMember{Animal: animal}})
}

// MoveMember moves an animal from one herd to another as a single
// atomic unit. The animal must be in the source; it may already be in
// the target, in which case the add side is a no-op rather than an
// error, so a retried move converges instead of failing.
func (s *Service) MoveMember(ctx context.Context, source, target, animal string) error {
	if isBlank(source) || isBlank(target) || isBlank(animal) {
		return NewError(KindEmptyInput, "herd names and animal ID must not be blank")
	}
	if source == target {
		return NewError(KindSameHerd, "source and target are both %q", source)
	}

	return s.txn.InTransaction(ctx, func(ctx context.Context, tx Store) error {
		src, err := mustFind(ctx, tx, source)
		if err != nil {
			return err
		}
		if !src.Contains(animal) {
			return NewError(KindNotMember, "animal %q is not in herd %q", animal, source)
		}
		if _, err := mustFind(ctx, tx, target); err != nil {
			return err
		}

		if err := tx.ConditionalUpdate(ctx, source,
			[]Predicate{NotArchived{}, Contains{Animal: animal}},
			[]Mutation{PullMember{Animal: animal}}); err != nil {
			return err
		}
		return tx.ConditionalUpdate(ctx, target,
			[]Predicate{NotArchived{}},
			[]Mutation{PushMember{Animal: animal}})
	})
}

// MergeHerds folds every member of the archive herd into the keep herd
// (set union), then clears and archives the losing herd, all as one
// atomic unit. The keep herd stays active; the archived herd becomes a
// terminal, read-only historical record.
func (s *Service) MergeHerds(ctx context.Context, keep, archive string) error {
	if isBlank(keep) || isBlank(archive) {
		return NewError(KindEmptyInput, "herd names must not be blank")
	}
	if keep == archive {
		return NewError(KindSameHerd, "keep and archive are both %q", keep)
	}

	return s.txn.InTransaction(ctx, func(ctx context.Context, tx Store) error {
		if _, err := mustFind(ctx, tx, keep); err != nil {
			return err
		}
		losing, err := mustFind(ctx, tx, archive)
		if err != nil {
			return err
		}

		if !losing.IsEmpty() {
			if err := tx.ConditionalUpdate(ctx, keep,
				[]Predicate{NotArchived{}},
				[]Mutation{PushMembers{Animals: losing.Members}}); err != nil {
				return err
			}
		}
		return tx.ConditionalUpdate(ctx, archive,
			[]Predicate{NotArchived{}},
			[]Mutation{MarkArchived{}})
	})
}

// SplitMembers moves a subset of a herd's members into another herd as
// one atomic unit, creating the target inside the same transaction when
// it does not exist yet. Every listed animal must currently be in the
// source; otherwise the whole operation fails and nothing changes.
//
// If target creation races with a concurrent explicit Create of the
// same name, the split aborts with KindConflict; a retry then finds the
// existing herd and proceeds.
func (s *Service) SplitMembers(ctx context.Context, source, target string, animals []string) error {
	if isBlank(source) || isBlank(target) {
		return NewError(KindEmptyInput, "herd names must not be blank")
	}
	if source == target {
		return NewError(KindSameHerd, "source and target are both %q", source)
	}
	moving := dedupe(animals)
	if len(moving) == 0 {
		return NewError(KindEmptyInput, "no animals given to split")
	}

	return s.txn.InTransaction(ctx, func(ctx context.Context, tx Store) error {
		src, err := mustFind(ctx, tx, source)
		if err != nil {
			return err
		}

		preds := make([]Predicate, 0, len(moving)+1)
		preds = append(preds, NotArchived{})
		for _, animal := range moving {
			if !src.Contains(animal) {
				return NewError(KindNotMember, "animal %q is not in herd %q", animal, source)
			}
			preds = append(preds, Contains{Animal: animal})
		}

		dst, err := tx.FindByName(ctx, target)
		if err != nil {
			return err
		}
		switch {
		case dst == nil:
			// A racing explicit Create of the same name surfaces here
			// as DuplicateName; the later writer loses with Conflict.
			if err := tx.InsertIfAbsent(ctx, New(target, "")); err != nil {
				if IsKind(err, KindDuplicateName) {
					return NewError(KindConflict, "herd %q was created concurrently", target)
				}
				return err
			}
		case dst.Archived:
			return NewError(KindArchived, "herd %q is archived", target)
		}

		if err := tx.ConditionalUpdate(ctx, source, preds,
			[]Mutation{PullMembers{Animals: moving}}); err != nil {
			return err
		}
		return tx.ConditionalUpdate(ctx, target,
			[]Predicate{NotArchived{}},
			[]Mutation{PushMembers{Animals: moving}})
	})
}

// ViewComposition returns the current members of a herd, sorted.
func (s *Service) ViewComposition(ctx context.Context, herdName string) ([]string, error) {
	if isBlank(herdName) {
		return nil, NewError(KindEmptyInput, "herd name must not be blank")
	}

	h, err := s.store.FindByName(ctx, herdName)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, NewError(KindNotFound, "herd %q not found", herdName)
	}
	return h.SortedMembers(), nil
}

// ListHerds returns summaries of all herds, active and archived,
// sorted by name.
func (s *Service) ListHerds(ctx context.Context) ([]Summary, error) {
	herds, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(herds))
	for i, h := range herds {
		summaries[i] = h.Summarize()
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// mustFind loads a herd through the given store view and enforces the
// exists + not-archived preconditions shared by every mutation.
func mustFind(ctx context.Context, store Store, name string) (*Herd, error) {
	h, err := store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, NewError(KindNotFound, "herd %q not found", name)
	}
	if h.Archived {
		return nil, NewError(KindArchived, "herd %q is archived", name)
	}
	return h, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// dedupe collapses duplicate IDs and drops blank ones, preserving order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if isBlank(id) {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
