// Package herd defines the Herd entity and related types.
package herd

import "sort"

// Herd represents a named collection of animals for batch operations.
type Herd struct {
	// Name is the unique identifier; immutable once created
	Name string

	// Description is an optional description
	Description string

	// Members is the set of animal IDs in this herd.
	// Stored as a slice but carries set semantics: no duplicates,
	// no ordering significance.
	Members []string

	// Archived marks a herd as a terminal, read-only historical record.
	// An archived herd always has no members.
	Archived bool
}

// New creates an empty, unarchived herd.
func New(name, description string) *Herd {
	return &Herd{
		Name:        name,
		Description: description,
		Members:     []string{},
	}
}

// IsEmpty returns true if the herd has no members.
func (h *Herd) IsEmpty() bool {
	return len(h.Members) == 0
}

// MemberCount returns the number of animals in the herd.
func (h *Herd) MemberCount() int {
	return len(h.Members)
}

// Contains checks if the herd contains a specific animal.
func (h *Herd) Contains(animalID string) bool {
	for _, id := range h.Members {
		if id == animalID {
			return true
		}
	}
	return false
}

// Add inserts an animal into the herd if not already present.
// Returns true if the animal was added.
func (h *Herd) Add(animalID string) bool {
	if h.Contains(animalID) {
		return false
	}
	h.Members = append(h.Members, animalID)
	return true
}

// Remove removes an animal from the herd.
// Returns true if the animal was removed.
func (h *Herd) Remove(animalID string) bool {
	for i, id := range h.Members {
		if id == animalID {
			h.Members = append(h.Members[:i], h.Members[i+1:]...)
			return true
		}
	}
	return false
}

// SortedMembers returns the members as a new, sorted slice.
func (h *Herd) SortedMembers() []string {
	out := make([]string, len(h.Members))
	copy(out, h.Members)
	sort.Strings(out)
	return out
}

// Clone creates a deep copy of the herd.
func (h *Herd) Clone() *Herd {
	clone := &Herd{
		Name:        h.Name,
		Description: h.Description,
		Archived:    h.Archived,
	}

	clone.Members = make([]string, len(h.Members))
	copy(clone.Members, h.Members)

	return clone
}

// Summary is the listing view of a herd: identity and lifecycle state
// without the full member set.
type Summary struct {
	Name        string
	Description string
	Archived    bool
	MemberCount int
}

// Summarize returns the listing view of the herd.
func (h *Herd) Summarize() Summary {
	return Summary{
		Name:        h.Name,
		Description: h.Description,
		Archived:    h.Archived,
		MemberCount: len(h.Members),
	}
}
