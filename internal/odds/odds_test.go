package odds

import (
	"errors"
	"math"
	"testing"
)

func TestAmericanToDecimal_Positive(t *testing.T) {
	cases := []struct {
		american float64
		want     float64
	}{
		{100, 2.0},
		{150, 2.5},
		{250, 3.5},
	}
	for _, c := range cases {
		got, err := AmericanToDecimal(c.american)
		if err != nil {
			t.Fatalf("AmericanToDecimal(%v): %v", c.american, err)
		}
		if got != c.want {
			t.Errorf("AmericanToDecimal(%v) = %v, want %v", c.american, got, c.want)
		}
	}
}

func TestAmericanToDecimal_Negative(t *testing.T) {
	got, err := AmericanToDecimal(-110)
	if err != nil {
		t.Fatal(err)
	}
	want := 1 + 100.0/110.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("AmericanToDecimal(-110) = %v, want %v", got, want)
	}
}

func TestAmericanToDecimal_ZeroFails(t *testing.T) {
	_, err := AmericanToDecimal(0)
	if !errors.Is(err, ErrInvalidOdds) {
		t.Fatalf("expected ErrInvalidOdds, got %v", err)
	}
}

func TestProfit_Outcomes(t *testing.T) {
	cases := []struct {
		name     string
		stake    float64
		american float64
		result   string
		want     float64
	}{
		{"even money win", 50, 100, "W", 50.0},
		{"favorite win", 50, -110, "W", 50 * (100.0 / 110.0)},
		{"loss", 50, 100, "L", -50.0},
		{"loss ignores odds", 50, -9999, "L", -50.0},
		{"push", 50, 100, "P", 0.0},
		{"open lowercase", 50, 100, "open", 0.0},
		{"win lowercase with spaces", 50, 100, " w ", 50.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Profit(c.stake, c.american, c.result)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-c.want) > 1e-9 {
				t.Errorf("Profit(%v, %v, %q) = %v, want %v", c.stake, c.american, c.result, got, c.want)
			}
		})
	}
}

func TestProfit_WinWithZeroOddsFails(t *testing.T) {
	if _, err := Profit(50, 0, "W"); !errors.Is(err, ErrInvalidOdds) {
		t.Fatalf("expected ErrInvalidOdds, got %v", err)
	}
}

func TestNormalizeResult(t *testing.T) {
	cases := []struct {
		raw  string
		want Result
	}{
		{"W", Win},
		{"w", Win},
		{" l ", Loss},
		{"p", Push},
		{"open", Open},
		{"OPEN", Open},
		{"Open", Open},
	}
	for _, c := range cases {
		got, err := NormalizeResult(c.raw)
		if err != nil {
			t.Fatalf("NormalizeResult(%q): %v", c.raw, err)
		}
		if got != c.want {
			t.Errorf("NormalizeResult(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalizeResult_Idempotent(t *testing.T) {
	for _, raw := range []string{"w", "L", " p ", "open"} {
		once, err := NormalizeResult(raw)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := NormalizeResult(string(once))
		if err != nil {
			t.Fatal(err)
		}
		if once != twice {
			t.Errorf("NormalizeResult not idempotent for %q: %q vs %q", raw, once, twice)
		}
	}
}

func TestNormalizeResult_Rejects(t *testing.T) {
	for _, raw := range []string{"", "won", "X", "void", "W L"} {
		_, err := NormalizeResult(raw)
		if err == nil {
			t.Errorf("NormalizeResult(%q) unexpectedly succeeded", raw)
			continue
		}
		var invalid *InvalidResultError
		if !errors.As(err, &invalid) {
			t.Errorf("NormalizeResult(%q): expected InvalidResultError, got %v", raw, err)
		}
	}
}
