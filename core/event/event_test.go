package event

import "testing"

func TestEvent_Names(t *testing.T) {
	tests := []struct {
		e        Event
		expected string
	}{
		{NewHerdCreated("north", ""), "HerdCreated"},
		{NewMemberAdded("north", "a1"), "MemberAdded"},
		{NewMemberRemoved("north", "a1"), "MemberRemoved"},
		{NewMemberMoved("north", "south", "a1"), "MemberMoved"},
		{NewHerdsMerged("north", "south"), "HerdsMerged"},
		{NewHerdSplit("north", "south", []string{"a1"}), "HerdSplit"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.e.EventName(); got != tt.expected {
				t.Errorf("EventName() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHerdEvent_Subject(t *testing.T) {
	tests := []struct {
		name     string
		e        HerdEvent
		expected string
	}{
		{"created", NewHerdCreated("north", ""), "north"},
		{"added", NewMemberAdded("north", "a1"), "north"},
		{"removed", NewMemberRemoved("north", "a1"), "north"},
		// Two-herd events report the growing side as the subject
		{"moved", NewMemberMoved("north", "south", "a1"), "south"},
		{"merged", NewHerdsMerged("north", "south"), "north"},
		{"split", NewHerdSplit("north", "south", []string{"a1"}), "south"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.HerdName(); got != tt.expected {
				t.Errorf("HerdName() = %v, want %v", got, tt.expected)
			}
		})
	}
}
