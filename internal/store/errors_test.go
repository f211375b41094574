package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pq.Error{Code: "23505"}
	if !isUniqueViolation(uniqueErr) {
		t.Fatalf("expected 23505 to be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert users: %w", uniqueErr)) {
		t.Fatalf("expected wrapped 23505 to be a unique violation")
	}

	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatalf("foreign key violation must not map to conflict")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain error must not map to conflict")
	}
}
