package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSelectInput(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "bets.csv")
	fallback := filepath.Join(dir, "bets.sample.csv")

	if got := selectInput("explicit.csv", primary, fallback); got != "explicit.csv" {
		t.Errorf("explicit request ignored: %q", got)
	}

	// Primary missing: fall back to the sample file.
	if got := selectInput("", primary, fallback); got != fallback {
		t.Errorf("expected fallback, got %q", got)
	}

	if err := os.WriteFile(primary, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := selectInput("", primary, fallback); got != primary {
		t.Errorf("expected primary, got %q", got)
	}
}

func TestDateRangeFlags_Validate(t *testing.T) {
	ok := dateRangeFlags{from: "2026-01-01", to: "2026-02-01"}
	if err := ok.validate(); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}

	empty := dateRangeFlags{}
	if err := empty.validate(); err != nil {
		t.Errorf("empty range rejected: %v", err)
	}

	bad := dateRangeFlags{from: "01/02/2026"}
	if err := bad.validate(); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
