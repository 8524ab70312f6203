package engine

import (
	"testing"

	"slot_engine/internal/model"
)

func TestEvaluateScatterAnywhere(t *testing.T) {
	paytable := testPaytable(t)

	// Три скаттера на несвязанных позициях
	grid := gridFromRows([][]model.SymbolID{
		{model.SymbolScatter, model.SymbolKing, model.SymbolKing, model.SymbolKing, model.SymbolKing},
		{model.SymbolQueen, model.SymbolQueen, model.SymbolScatter, model.SymbolQueen, model.SymbolQueen},
		{model.SymbolJack, model.SymbolJack, model.SymbolJack, model.SymbolJack, model.SymbolScatter},
	})

	win, ok := EvaluateScatter(grid, paytable, 10)
	if !ok {
		t.Fatal("expected a scatter win")
	}
	if win.PaylineID != model.ScatterPaylineID {
		t.Errorf("payline id = %d, want %d", win.PaylineID, model.ScatterPaylineID)
	}
	if win.MatchCount != 3 {
		t.Errorf("match count = %d, want 3", win.MatchCount)
	}
	// bet * paytable[scatter][3] = 10 * 2
	if win.WinAmount != 20 {
		t.Errorf("win amount = %d, want 20", win.WinAmount)
	}
	if win.Multiplier != 1 {
		t.Errorf("multiplier = %d, want 1 (wilds do not boost scatters)", win.Multiplier)
	}
	if len(win.Positions) != 3 {
		t.Errorf("positions = %d, want 3", len(win.Positions))
	}
}

func TestEvaluateScatterBelowMinimum(t *testing.T) {
	paytable := testPaytable(t)

	grid := gridFromRows([][]model.SymbolID{
		{model.SymbolScatter, model.SymbolKing, model.SymbolKing, model.SymbolKing, model.SymbolKing},
		{model.SymbolQueen, model.SymbolQueen, model.SymbolScatter, model.SymbolQueen, model.SymbolQueen},
		{model.SymbolJack, model.SymbolJack, model.SymbolJack, model.SymbolJack, model.SymbolJack},
	})

	if _, ok := EvaluateScatter(grid, paytable, 10); ok {
		t.Fatal("two scatters must not pay")
	}
}

func TestEvaluateScatterClampedToTable(t *testing.T) {
	paytable := testPaytable(t)

	// Шесть скаттеров: счёт по полю превышает границу таблицы,
	// выплата прижимается к строке за 5
	grid := gridFromRows([][]model.SymbolID{
		{model.SymbolScatter, model.SymbolScatter, model.SymbolScatter, model.SymbolKing, model.SymbolKing},
		{model.SymbolScatter, model.SymbolQueen, model.SymbolScatter, model.SymbolQueen, model.SymbolQueen},
		{model.SymbolJack, model.SymbolJack, model.SymbolJack, model.SymbolJack, model.SymbolScatter},
	})

	win, ok := EvaluateScatter(grid, paytable, 1)
	if !ok {
		t.Fatal("expected a scatter win")
	}
	if win.MatchCount != 6 {
		t.Errorf("match count = %d, want 6", win.MatchCount)
	}
	if win.WinAmount != 50 {
		t.Errorf("win amount = %d, want 50 (clamped to 5-of-kind row)", win.WinAmount)
	}

	if got := CountScatters(grid); got != 6 {
		t.Errorf("CountScatters = %d, want 6", got)
	}
}
