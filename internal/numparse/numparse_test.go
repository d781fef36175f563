package numparse

import (
	"math"
	"testing"
)

func TestDecimal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"comma-decimal", "58,15", 58.15},
		{"dot-decimal", "58.15", 58.15},
		{"german-thousands", "1.234,56", 1234.56},
		{"english-thousands", "1,234.56", 1234.56},
		{"negative-comma", "-4,82", -4.82},
		{"negative-dot", "-12.5", -12.5},
		{"positive-sign", "+7,5", 7.5},
		{"nbsp-group", "7 654,3", 7654.3},
		{"integer", "500", 500},
		{"single-comma-three-digits-is-grouping", "1,234", 1234},
		{"two-commas-are-grouping", "1,234,567", 1234567},
		{"one-fractional-digit", "3,9", 3.9},
		{"surrounding-space", "  64,72 ", 64.72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decimal(tt.raw)
			if !ok {
				t.Fatalf("Decimal(%q): not parseable", tt.raw)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Decimal(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecimalRejectsNonNumeric(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-a-number", "12a", "g", "--5", "1.2e3"} {
		if v, ok := Decimal(raw); ok {
			t.Errorf("Decimal(%q) = %v, want not-parseable", raw, v)
		}
	}
}

func TestNormalizeCandidate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"-4,82", "-4.82"},
		{"58.15", "58.15"},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.raw)
		if !ok || got != tt.want {
			t.Errorf("Normalize(%q) = %q ok=%t, want %q", tt.raw, got, ok, tt.want)
		}
	}
}

func TestDegrees(t *testing.T) {
	got, ok := Degrees("14,5°")
	if !ok || got != 14.5 {
		t.Fatalf("Degrees(14,5°) = %v ok=%t, want 14.5", got, ok)
	}
	if _, ok := Degrees("°"); ok {
		t.Fatal("Degrees(°) should not parse")
	}
}
