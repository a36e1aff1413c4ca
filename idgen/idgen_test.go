package idgen

import (
	"strings"
	"testing"
)

func TestUUIDv7Unique(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen()
		if len(id) != 36 {
			t.Fatalf("UUIDv7 length: got %d, want 36", len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate ID: %s", id)
		}
		seen[id] = true
	}
}

func TestNanoIDLengthAndAlphabet(t *testing.T) {
	gen := NanoID(12)
	for i := 0; i < 100; i++ {
		id := gen()
		if len(id) != 12 {
			t.Fatalf("NanoID length: got %d, want 12", len(id))
		}
		for _, r := range id {
			if !strings.ContainsRune("0123456789abcdefghijklmnopqrstuvwxyz", r) {
				t.Fatalf("NanoID character outside alphabet: %q in %s", r, id)
			}
		}
	}
}

func TestPrefixed(t *testing.T) {
	gen := Prefixed("pay_", NanoID(8))
	id := gen()
	if !strings.HasPrefix(id, "pay_") {
		t.Errorf("Prefixed: got %q, want pay_ prefix", id)
	}
	if len(id) != len("pay_")+8 {
		t.Errorf("Prefixed length: got %d, want %d", len(id), len("pay_")+8)
	}
}
