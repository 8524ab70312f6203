package engine

import (
	"slot_engine/internal/model"
)

// Triggers — производные бонусные флаги одного спина
type Triggers struct {
	FreeSpins bool
	Jackpot   bool
	Bonus     bool
}

// BonusRule — настраиваемый предикат общего бонуса.
// Вынесен отдельно, чтобы игры меняли условия срабатывания,
// не трогая оценку выигрышей
type BonusRule func(t Triggers) bool

// DefaultBonusRule — бонус при любом из базовых триггеров
func DefaultBonusRule(t Triggers) bool {
	return t.FreeSpins || t.Jackpot
}

// DetectTriggers — чистая функция над результатами спина.
// Фриспины: скаттеров не меньше 3.
// Джекпот: линейный выигрыш целиком из вайлдов на всю длину линии
func DetectTriggers(wins []model.WinResult, scatterCount, fullLineCount int, rule BonusRule) Triggers {
	t := Triggers{
		FreeSpins: scatterCount >= minMatchCount,
	}

	for _, win := range wins {
		if win.PaylineID == model.ScatterPaylineID {
			continue
		}
		if win.Symbol.IsWild() && win.MatchCount == fullLineCount {
			t.Jackpot = true
			break
		}
	}

	if rule == nil {
		rule = DefaultBonusRule
	}
	t.Bonus = rule(t)

	return t
}
