package herd

import "context"

// Store defines the interface for herd persistence operations.
// Implementations must make InsertIfAbsent and ConditionalUpdate
// race-safe: the guard is re-evaluated at commit time, not at read time.
type Store interface {
	// FindByName retrieves a herd by its name.
	// Returns nil, nil if not found.
	FindByName(ctx context.Context, name string) (*Herd, error)

	// FindAll retrieves all herds, active and archived.
	FindAll(ctx context.Context) ([]*Herd, error)

	// InsertIfAbsent creates a new herd. It fails with KindDuplicateName
	// if a herd with that name already exists, concurrent inserts
	// included.
	InsertIfAbsent(ctx context.Context, h *Herd) error

	// ConditionalUpdate applies mutations to the named herd only if
	// every predicate still holds when the write commits. A guard that
	// no longer holds (or a vanished herd) fails with KindConflict.
	ConditionalUpdate(ctx context.Context, name string, preds []Predicate, muts []Mutation) error
}

// Coordinator runs a sequence of Store operations as one all-or-nothing
// unit. If fn returns an error, every write made through its Store is
// discarded. Other callers never observe a partial result.
type Coordinator interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

// Predicate is a guard checked against a herd at commit time.
// The set of predicates is closed; stores dispatch on the concrete
// type with an exhaustive switch.
type Predicate interface {
	predicateName() string
}

// NotArchived requires the herd to still be active.
type NotArchived struct{}

func (NotArchived) predicateName() string { return "NotArchived" }

// Contains requires the animal to be a member of the herd.
type Contains struct {
	Animal string
}

func (Contains) predicateName() string { return "Contains" }

// NotContains requires the animal to not be a member of the herd.
type NotContains struct {
	Animal string
}

func (NotContains) predicateName() string { return "NotContains" }

// Mutation is a single change applied to a herd record.
// The set of mutations is closed, like Predicate.
type Mutation interface {
	mutationName() string
}

// PushMember adds one animal to the member set. Idempotent: pushing an
// existing member changes nothing and is not an error.
type PushMember struct {
	Animal string
}

func (PushMember) mutationName() string { return "PushMember" }

// PullMember removes one animal from the member set.
type PullMember struct {
	Animal string
}

func (PullMember) mutationName() string { return "PullMember" }

// PushMembers adds several animals at once, set-union style.
type PushMembers struct {
	Animals []string
}

func (PushMembers) mutationName() string { return "PushMembers" }

// PullMembers removes several animals at once.
type PullMembers struct {
	Animals []string
}

func (PullMembers) mutationName() string { return "PullMembers" }

// MarkArchived clears the member set and freezes the herd. Terminal.
type MarkArchived struct{}

func (MarkArchived) mutationName() string { return "MarkArchived" }
