package event

// HerdCreated is published when a new herd is created.
type HerdCreated struct {
	baseHerdEvent
	Description string
}

func NewHerdCreated(herdName, description string) *HerdCreated {
	return &HerdCreated{
		baseHerdEvent: baseHerdEvent{herdName: herdName},
		Description:   description,
	}
}

func (e *HerdCreated) EventName() string {
	return "HerdCreated"
}

// MemberAdded is published when an animal joins a herd.
type MemberAdded struct {
	baseHerdEvent
	Animal string
}

func NewMemberAdded(herdName, animal string) *MemberAdded {
	return &MemberAdded{
		baseHerdEvent: baseHerdEvent{herdName: herdName},
		Animal:        animal,
	}
}

func (e *MemberAdded) EventName() string {
	return "MemberAdded"
}

// MemberRemoved is published when an animal leaves a herd.
type MemberRemoved struct {
	baseHerdEvent
	Animal string
}

func NewMemberRemoved(herdName, animal string) *MemberRemoved {
	return &MemberRemoved{
		baseHerdEvent: baseHerdEvent{herdName: herdName},
		Animal:        animal,
	}
}

func (e *MemberRemoved) EventName() string {
	return "MemberRemoved"
}

// MemberMoved is published when an animal moves between herds.
// The subject herd is the target.
type MemberMoved struct {
	baseHerdEvent
	Source string
	Animal string
}

func NewMemberMoved(source, target, animal string) *MemberMoved {
	return &MemberMoved{
		baseHerdEvent: baseHerdEvent{herdName: target},
		Source:        source,
		Animal:        animal,
	}
}

func (e *MemberMoved) EventName() string {
	return "MemberMoved"
}

// HerdsMerged is published when one herd absorbs another.
// The subject herd is the kept one; Archived names the losing side.
type HerdsMerged struct {
	baseHerdEvent
	Archived string
}

func NewHerdsMerged(keep, archived string) *HerdsMerged {
	return &HerdsMerged{
		baseHerdEvent: baseHerdEvent{herdName: keep},
		Archived:      archived,
	}
}

func (e *HerdsMerged) EventName() string {
	return "HerdsMerged"
}

// HerdSplit is published when members are split out of a herd.
// The subject herd is the target that received the animals.
type HerdSplit struct {
	baseHerdEvent
	Source  string
	Animals []string
}

func NewHerdSplit(source, target string, animals []string) *HerdSplit {
	return &HerdSplit{
		baseHerdEvent: baseHerdEvent{herdName: target},
		Source:        source,
		Animals:       animals,
	}
}

func (e *HerdSplit) EventName() string {
	return "HerdSplit"
}
