package engine

import (
	"slot_engine/internal/model"
)

// EvaluateScatter — скаттеры платят за количество в любом месте поля,
// вне геометрии линий. Минимум 3; длина прижимается к границе таблицы.
// PaylineID результата — зарезервированный 0
func EvaluateScatter(grid model.Grid, paytable *Registry, bet int64) (model.WinResult, bool) {
	var positions []model.Cell
	for r := 0; r < grid.Reels(); r++ {
		for row := 0; row < grid.Rows(); row++ {
			if grid[r][row].IsScatter() {
				positions = append(positions, model.Cell{Reel: r, Row: row})
			}
		}
	}

	count := len(positions)
	if count < minMatchCount {
		return model.WinResult{}, false
	}

	payout := paytable.PayoutClamped(model.SymbolScatter, count)
	if payout == 0 {
		return model.WinResult{}, false
	}

	winAmount := bet * payout

	return model.WinResult{
		PaylineID:  model.ScatterPaylineID,
		Symbol:     model.SymbolScatter,
		MatchCount: count,
		WinAmount:  winAmount,
		Positions:  positions,
		WinType:    ClassifyWin(winAmount, bet),
		Multiplier: 1,
	}, true
}

// CountScatters — количество скаттеров на поле
func CountScatters(grid model.Grid) int {
	count := 0
	for r := 0; r < grid.Reels(); r++ {
		for row := 0; row < grid.Rows(); row++ {
			if grid[r][row].IsScatter() {
				count++
			}
		}
	}
	return count
}
