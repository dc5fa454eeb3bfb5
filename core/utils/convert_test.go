package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestToUUID(t *testing.T) {
	id := uuid.New()
	if got := ToUUID(id.String()); got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
	if got := ToUUID("not-a-uuid"); got != uuid.Nil {
		t.Fatalf("expected nil uuid for garbage, got %s", got)
	}
	if got := ToUUID(""); got != uuid.Nil {
		t.Fatalf("expected nil uuid for empty string, got %s", got)
	}
}

func TestGenerateRandomStringLength(t *testing.T) {
	for _, n := range []int{8, 32} {
		if got := GenerateRandomString(n); len(got) != n {
			t.Fatalf("expected length %d, got %d", n, len(got))
		}
	}
	if GenerateRandomString(32) == GenerateRandomString(32) {
		t.Fatal("expected distinct random strings")
	}
}
