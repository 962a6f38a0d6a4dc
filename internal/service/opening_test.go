package service

import (
	"testing"
)

func TestLookupOpening(t *testing.T) {
	t.Parallel()

	empty, err := lookupOpening(nil)
	if err != nil {
		t.Fatalf("lookupOpening(nil): %v", err)
	}
	if empty.Code != "" {
		t.Fatalf("empty game matched %+v", empty)
	}

	sicilian, err := lookupOpening([]string{"e2e4", "c7c5"})
	if err != nil {
		t.Fatalf("lookupOpening: %v", err)
	}
	if sicilian.Code != "B20" {
		t.Fatalf("1.e4 c5 = %+v, want B20", sicilian)
	}
}
