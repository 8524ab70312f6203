package engine

import (
	"testing"

	"slot_engine/internal/model"
)

func TestRegistryPayout(t *testing.T) {
	reg := testPaytable(t)

	if got := reg.Payout(model.SymbolHigh1, 4); got != 10 {
		t.Errorf("payout(high_1, 4) = %d, want 10", got)
	}
	if got := reg.Payout(model.SymbolHigh1, 2); got != 0 {
		t.Errorf("payout(high_1, 2) = %d, want 0 (below minimum)", got)
	}
	if got := reg.Payout(model.SymbolHigh1, 6); got != 0 {
		t.Errorf("payout(high_1, 6) = %d, want 0 (beyond table)", got)
	}
	if got := reg.Payout(model.SymbolKing, 5); got != 0 {
		t.Errorf("payout(king, 5) = %d, want 0 (symbol not in table)", got)
	}
	if got := reg.PayoutClamped(model.SymbolScatter, 9); got != 50 {
		t.Errorf("clamped payout(scatter, 9) = %d, want 50", got)
	}
	if reg.MaxMatch() != 5 {
		t.Errorf("max match = %d, want 5", reg.MaxMatch())
	}
}

func TestRegistryRejectsSubMinimumPayout(t *testing.T) {
	_, err := NewRegistry(map[model.SymbolID][]int64{
		model.SymbolHigh1: {0, 0, 7, 5, 10, 50}, // выплата за пару
	}, 5)
	if err == nil {
		t.Fatal("payout below the 3-match minimum must be rejected")
	}
}

func TestRegistryRejectsNegativePayout(t *testing.T) {
	_, err := NewRegistry(map[model.SymbolID][]int64{
		model.SymbolHigh1: {0, 0, 0, -5},
	}, 5)
	if err == nil {
		t.Fatal("negative payout must be rejected")
	}
}

func TestCatalogRejectsOutOfBoundsLine(t *testing.T) {
	lines := []Payline{{
		ID: 1,
		Cells: []model.Cell{
			{Reel: 0, Row: 1}, {Reel: 1, Row: 1}, {Reel: 2, Row: 5},
			{Reel: 3, Row: 1}, {Reel: 4, Row: 1},
		},
		Active: true,
	}}
	if _, err := NewCatalog(lines, 5, 3); err == nil {
		t.Fatal("out-of-bounds payline must be rejected at load time")
	}
}

func TestCatalogRejectsDuplicateID(t *testing.T) {
	line := Payline{
		ID: 1,
		Cells: []model.Cell{
			{Reel: 0, Row: 1}, {Reel: 1, Row: 1}, {Reel: 2, Row: 1},
			{Reel: 3, Row: 1}, {Reel: 4, Row: 1},
		},
		Active: true,
	}
	if _, err := NewCatalog([]Payline{line, line}, 5, 3); err == nil {
		t.Fatal("duplicate payline id must be rejected")
	}
}
