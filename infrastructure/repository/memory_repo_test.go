package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"herdly-go/domain/herd"
)

func kindOf(t *testing.T, err error) herd.ErrorKind {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	return herd.KindOf(err)
}

func TestMemoryHerdStore_InsertIfAbsent(t *testing.T) {
	store := NewMemoryHerdStore()
	ctx := context.Background()

	if err := store.InsertIfAbsent(ctx, herd.New("north", "")); err != nil {
		t.Fatalf("InsertIfAbsent failed: %v", err)
	}
	if got := kindOf(t, store.InsertIfAbsent(ctx, herd.New("north", ""))); got != herd.KindDuplicateName {
		t.Errorf("duplicate insert kind = %v, want DuplicateName", got)
	}
}

func TestMemoryHerdStore_FindByName(t *testing.T) {
	store := NewMemoryHerdStore()
	ctx := context.Background()

	h, err := store.FindByName(ctx, "missing")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if h != nil {
		t.Errorf("FindByName(missing) = %v, want nil", h)
	}

	if err := store.InsertIfAbsent(ctx, herd.New("north", "pasture")); err != nil {
		t.Fatalf("InsertIfAbsent failed: %v", err)
	}

	h, err = store.FindByName(ctx, "north")
	if err != nil || h == nil {
		t.Fatalf("FindByName(north) = %v, %v", h, err)
	}

	// The returned herd is a copy; mutating it must not leak into the store
	h.Add("a1")
	again, _ := store.FindByName(ctx, "north")
	if again.Contains("a1") {
		t.Error("mutation of a returned herd leaked into the store")
	}
}

func TestMemoryHerdStore_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		seed     func(*herd.Herd)
		preds    []herd.Predicate
		muts     []herd.Mutation
		wantKind herd.ErrorKind // "" means success
		check    func(*testing.T, *herd.Herd)
	}{
		{
			name:  "push member",
			preds: []herd.Predicate{herd.NotArchived{}, herd.NotContains{Animal: "a1"}},
			muts:  []herd.Mutation{herd.PushMember{Animal: "a1"}},
			check: func(t *testing.T, h *herd.Herd) {
				if !h.Contains("a1") {
					t.Error("a1 not added")
				}
			},
		},
		{
			name:  "push is idempotent",
			seed:  func(h *herd.Herd) { h.Add("a1") },
			preds: []herd.Predicate{herd.NotArchived{}},
			muts:  []herd.Mutation{herd.PushMember{Animal: "a1"}},
			check: func(t *testing.T, h *herd.Herd) {
				if h.MemberCount() != 1 {
					t.Errorf("member count = %d, want 1", h.MemberCount())
				}
			},
		},
		{
			name:     "contains guard fails",
			preds:    []herd.Predicate{herd.Contains{Animal: "a1"}},
			muts:     []herd.Mutation{herd.PullMember{Animal: "a1"}},
			wantKind: herd.KindConflict,
		},
		{
			name:     "not-contains guard fails",
			seed:     func(h *herd.Herd) { h.Add("a1") },
			preds:    []herd.Predicate{herd.NotContains{Animal: "a1"}},
			muts:     []herd.Mutation{herd.PushMember{Animal: "a1"}},
			wantKind: herd.KindConflict,
		},
		{
			name:     "not-archived guard fails",
			seed:     func(h *herd.Herd) { h.Archived = true },
			preds:    []herd.Predicate{herd.NotArchived{}},
			muts:     []herd.Mutation{herd.PushMember{Animal: "a1"}},
			wantKind: herd.KindConflict,
		},
		{
			name:  "archive clears members",
			seed:  func(h *herd.Herd) { h.Add("a1"); h.Add("a2") },
			preds: []herd.Predicate{herd.NotArchived{}},
			muts:  []herd.Mutation{herd.MarkArchived{}},
			check: func(t *testing.T, h *herd.Herd) {
				if !h.Archived || len(h.Members) != 0 {
					t.Errorf("herd = %+v, want archived and empty", h)
				}
			},
		},
		{
			name:  "bulk push and pull",
			seed:  func(h *herd.Herd) { h.Add("a1"); h.Add("a2") },
			preds: []herd.Predicate{herd.NotArchived{}},
			muts: []herd.Mutation{
				herd.PullMembers{Animals: []string{"a1", "a2"}},
				herd.PushMembers{Animals: []string{"b1", "b2"}},
			},
			check: func(t *testing.T, h *herd.Herd) {
				if got := h.SortedMembers(); !reflect.DeepEqual(got, []string{"b1", "b2"}) {
					t.Errorf("members = %v, want [b1 b2]", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryHerdStore()
			h := herd.New("north", "")
			if tt.seed != nil {
				tt.seed(h)
			}
			if err := store.InsertIfAbsent(ctx, h); err != nil {
				t.Fatalf("seeding failed: %v", err)
			}

			err := store.ConditionalUpdate(ctx, "north", tt.preds, tt.muts)
			if tt.wantKind != "" {
				if got := kindOf(t, err); got != tt.wantKind {
					t.Fatalf("kind = %v, want %v", got, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ConditionalUpdate failed: %v", err)
			}
			got, _ := store.FindByName(ctx, "north")
			tt.check(t, got)
		})
	}
}

func TestMemoryHerdStore_ConditionalUpdate_MissingHerd(t *testing.T) {
	store := NewMemoryHerdStore()

	err := store.ConditionalUpdate(context.Background(), "missing",
		[]herd.Predicate{herd.NotArchived{}},
		[]herd.Mutation{herd.PushMember{Animal: "a1"}})
	if got := kindOf(t, err); got != herd.KindConflict {
		t.Errorf("kind = %v, want Conflict", got)
	}
}

func TestMemoryHerdStore_InTransaction_Commit(t *testing.T) {
	store := NewMemoryHerdStore()
	ctx := context.Background()

	err := store.InTransaction(ctx, func(ctx context.Context, s herd.Store) error {
		if err := s.InsertIfAbsent(ctx, herd.New("north", "")); err != nil {
			return err
		}
		return s.ConditionalUpdate(ctx, "north",
			[]herd.Predicate{herd.NotArchived{}},
			[]herd.Mutation{herd.PushMember{Animal: "a1"}})
	})
	if err != nil {
		t.Fatalf("InTransaction failed: %v", err)
	}

	h, _ := store.FindByName(ctx, "north")
	if h == nil || !h.Contains("a1") {
		t.Errorf("committed herd = %v, want north containing a1", h)
	}
}

func TestMemoryHerdStore_InTransaction_Rollback(t *testing.T) {
	store := NewMemoryHerdStore()
	ctx := context.Background()
	if err := store.InsertIfAbsent(ctx, herd.New("north", "")); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	boom := errors.New("boom")
	err := store.InTransaction(ctx, func(ctx context.Context, s herd.Store) error {
		if err := s.ConditionalUpdate(ctx, "north", nil,
			[]herd.Mutation{herd.PushMember{Animal: "a1"}}); err != nil {
			return err
		}
		if err := s.InsertIfAbsent(ctx, herd.New("south", "")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTransaction error = %v, want boom", err)
	}

	// Every write inside the failed transaction must be rolled back
	h, _ := store.FindByName(ctx, "north")
	if h.Contains("a1") {
		t.Error("update inside failed transaction was not rolled back")
	}
	if s, _ := store.FindByName(ctx, "south"); s != nil {
		t.Error("insert inside failed transaction was not rolled back")
	}
}
