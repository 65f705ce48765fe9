package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindPredicates(t *testing.T) {
	if !IsValidation(Validation("bad input")) {
		t.Fatalf("expected validation kind")
	}
	if !IsConflict(Conflict("busy")) {
		t.Fatalf("expected conflict kind")
	}
	if !IsNotFound(NotFound("missing")) {
		t.Fatalf("expected not-found kind")
	}
	if IsConflict(Validation("bad input")) {
		t.Fatalf("validation must not classify as conflict")
	}
	if IsValidation(errors.New("plain")) {
		t.Fatalf("unclassified error must not match any kind")
	}
}

func TestWrappedErrorKeepsKindAndIdentity(t *testing.T) {
	sentinel := Conflict("member already active")
	wrapped := fmt.Errorf("add member: %w", sentinel)

	if !errors.Is(wrapped, sentinel) {
		t.Fatalf("expected errors.Is to match sentinel through wrap")
	}
	if !IsConflict(wrapped) {
		t.Fatalf("expected conflict kind through wrap")
	}
}
