package ui

import (
	"errors"
	"testing"

	"github.com/piwi3910/ToolCrib/internal/calc"
)

func TestConvertForDisplay(t *testing.T) {
	got, err := convertForDisplay(calc.Length, 1, "in", "mm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1 in = 25.4 mm" {
		t.Errorf("got %q", got)
	}

	got, err = convertForDisplay(calc.Temperature, 100, "C", "F")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "100 C = 212 F" {
		t.Errorf("got %q", got)
	}
}

func TestConvertForDisplay_Errors(t *testing.T) {
	if _, err := convertForDisplay(calc.Length, 1, "", "mm"); err == nil {
		t.Error("missing unit should fail")
	}
	if _, err := convertForDisplay(calc.Length, 1, "kg", "mm"); !errors.Is(err, calc.ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got %v", err)
	}
}
