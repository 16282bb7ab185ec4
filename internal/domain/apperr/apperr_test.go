package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOfWrapped(t *testing.T) {
	base := Transient("store unavailable", context.DeadlineExceeded)
	wrapped := fmt.Errorf("list users: %w", base)

	if KindOf(wrapped) != KindTransient {
		t.Fatalf("KindOf = %v, want transient", KindOf(wrapped))
	}
	if !errors.Is(wrapped, context.DeadlineExceeded) {
		t.Fatalf("Unwrap chain lost the cause")
	}
	if Message(wrapped) != "store unavailable" {
		t.Fatalf("Message = %q", Message(wrapped))
	}
}

func TestKindOfPlainError(t *testing.T) {
	err := errors.New("boom")
	if KindOf(err) != KindInternal {
		t.Fatalf("plain errors are internal")
	}
	if Message(err) != "Server error" {
		t.Fatalf("plain errors must not leak detail, got %q", Message(err))
	}
	if Is(nil, KindInternal) {
		t.Fatalf("nil is never of any kind")
	}
}

func TestErrorString(t *testing.T) {
	if got := NotFound("User not found").Error(); got != "User not found" {
		t.Fatalf("Error() = %q", got)
	}
	if got := New(KindConflict, "", nil).Error(); got != "conflict" {
		t.Fatalf("Error() = %q", got)
	}
}
