package presentation

import (
	"bytes"
	"strings"
	"testing"

	"herdly-go/application"
	"herdly-go/domain/herd"
	"herdly-go/infrastructure/repository"
)

func newTestCLI(t *testing.T) *application.Coordinator {
	t.Helper()
	store := repository.NewMemoryHerdStore()
	return application.NewCoordinator(&application.CoordinatorConfig{
		Service: herd.NewService(store, store),
	})
}

func run(t *testing.T, coord *application.Coordinator, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(coord)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_CreateAddMembers(t *testing.T) {
	coord := newTestCLI(t)

	if _, err := run(t, coord, "create", "north"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := run(t, coord, "add", "north", "a1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	out, err := run(t, coord, "members", "north")
	if err != nil {
		t.Fatalf("members failed: %v", err)
	}
	if strings.TrimSpace(out) != "a1" {
		t.Errorf("members output = %q, want a1", out)
	}
}

func TestCLI_MoveBetweenHerds(t *testing.T) {
	coord := newTestCLI(t)

	for _, args := range [][]string{
		{"create", "north"},
		{"create", "south"},
		{"add", "north", "a1"},
		{"move", "north", "south", "a1"},
	} {
		if _, err := run(t, coord, args...); err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
	}

	out, err := run(t, coord, "members", "south")
	if err != nil {
		t.Fatalf("members failed: %v", err)
	}
	if strings.TrimSpace(out) != "a1" {
		t.Errorf("south members = %q, want a1", out)
	}
}

func TestCLI_ListShowsArchived(t *testing.T) {
	coord := newTestCLI(t)

	for _, args := range [][]string{
		{"create", "keep"},
		{"create", "gone"},
		{"merge", "keep", "gone"},
	} {
		if _, err := run(t, coord, args...); err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
	}

	out, err := run(t, coord, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "gone\tarchived") {
		t.Errorf("list output missing archived herd:\n%s", out)
	}
	if !strings.Contains(out, "keep\tactive") {
		t.Errorf("list output missing active herd:\n%s", out)
	}
}

func TestCLI_ErrorKindPrefix(t *testing.T) {
	coord := newTestCLI(t)

	_, err := run(t, coord, "add", "missing", "a1")
	if err == nil {
		t.Fatal("add to missing herd should fail")
	}
	if !strings.HasPrefix(err.Error(), "NotFound: ") {
		t.Errorf("error = %q, want NotFound: prefix", err.Error())
	}
}

func TestCLI_SplitCreatesTarget(t *testing.T) {
	coord := newTestCLI(t)

	for _, args := range [][]string{
		{"create", "north"},
		{"add", "north", "a1"},
		{"add", "north", "a2"},
		{"split", "north", "pen", "a1", "a2"},
	} {
		if _, err := run(t, coord, args...); err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
	}

	out, err := run(t, coord, "members", "pen")
	if err != nil {
		t.Fatalf("members failed: %v", err)
	}
	if strings.TrimSpace(out) != "a1\na2" {
		t.Errorf("pen members = %q, want a1 and a2", out)
	}
}
