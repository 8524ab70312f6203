package engine

import (
	"slot_engine/internal/model"
)

// EvaluateLines — оценка поля по активным линиям.
// Линии независимы: пересечения не объединяются, одни и те же
// символы поля могут платить на нескольких линиях одновременно
func EvaluateLines(grid model.Grid, lines []Payline, paytable *Registry, bet int64) []model.WinResult {
	var wins []model.WinResult
	for _, line := range lines {
		if win, ok := evaluateLine(grid, line, paytable, bet); ok {
			wins = append(wins, win)
		}
	}
	return wins
}

// evaluateLine — один проход по линии слева направо
func evaluateLine(grid model.Grid, line Payline, paytable *Registry, bet int64) (model.WinResult, bool) {
	symbols := make([]model.SymbolID, len(line.Cells))
	for i, cell := range line.Cells {
		symbols[i] = grid.At(cell)
	}

	// Скаттер не участвует в линейных комбинациях
	if symbols[0].IsScatter() {
		return model.WinResult{}, false
	}

	// Базовый символ. Если линия начинается с вайлда — ищем первый
	// не-вайлд; если вся комбинация из вайлдов, базой остаётся сам
	// вайлд и выплата идёт по его собственной строке таблицы
	base := symbols[0]
	if base.IsWild() {
		for _, sym := range symbols {
			if !sym.IsWild() {
				base = sym
				break
			}
		}
	}
	if base.IsScatter() {
		return model.WinResult{}, false
	}

	// Длина непрерывной комбинации с первого барабана
	count := 0
	for _, sym := range symbols {
		if sym == base || sym.IsWild() || base.IsWild() {
			count++
		} else {
			break
		}
	}
	if count < minMatchCount {
		return model.WinResult{}, false
	}

	payout := paytable.Payout(base, count)
	if payout == 0 {
		return model.WinResult{}, false
	}

	// Вайлды в комбинации удваивают выплату: множитель 2^n
	wildCount := 0
	for _, sym := range symbols[:count] {
		if sym.IsWild() {
			wildCount++
		}
	}
	multiplier := int64(1) << wildCount

	winAmount := bet * payout * multiplier

	positions := make([]model.Cell, count)
	copy(positions, line.Cells[:count])

	return model.WinResult{
		PaylineID:  line.ID,
		Symbol:     base,
		MatchCount: count,
		WinAmount:  winAmount,
		Positions:  positions,
		WinType:    ClassifyWin(winAmount, bet),
		Multiplier: multiplier,
	}, true
}

// ClassifyWin — классификация выигрыша по кратности ставки:
// <25 small, [25,100) big, [100,1000) mega, >=1000 jackpot
func ClassifyWin(winAmount, bet int64) model.WinType {
	switch {
	case winAmount >= bet*1000:
		return model.WinJackpot
	case winAmount >= bet*100:
		return model.WinMega
	case winAmount >= bet*25:
		return model.WinBig
	default:
		return model.WinSmall
	}
}
