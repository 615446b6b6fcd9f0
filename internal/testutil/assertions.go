package testutil

import (
	"testing"

	"github.com/maddock/winq/nodes"
)

// AssertEqual checks that got == want and reports a descriptive error if not.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("expected:\n  %v\ngot:\n  %v", want, got)
	}
}

// AssertSQL accepts a visitor and node, renders the SQL, and compares it with
// the expected string. The visitor's error state (if any) must be clean.
func AssertSQL(t *testing.T, v nodes.Visitor, node nodes.Node, expected string) {
	t.Helper()
	got := node.Accept(v)
	if r, ok := v.(nodes.ErrorReporter); ok {
		if err := r.Err(); err != nil {
			t.Fatalf("unexpected render error: %v", err)
		}
	}
	if got != expected {
		t.Errorf("expected:\n  %s\ngot:\n  %s", expected, got)
	}
}

// AssertRenderError renders the node and fails unless the visitor recorded
// an error.
func AssertRenderError(t *testing.T, v nodes.Visitor, node nodes.Node) error {
	t.Helper()
	node.Accept(v)
	r, ok := v.(nodes.ErrorReporter)
	if !ok {
		t.Fatalf("visitor %T does not report errors", v)
	}
	err := r.Err()
	if err == nil {
		t.Fatal("expected a render error but got nil")
	}
	return err
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error but got nil")
	}
}
