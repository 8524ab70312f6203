package engine

import (
	"slot_engine/internal/model"
)

// Минимальная длина комбинации, за которую бывает выплата
const minMatchCount = 3

// Registry — таблица выплат: символ -> выплата по длине комбинации.
// Выплаты в кратности ставки. Индекс среза — длина комбинации,
// значения ниже индекса 3 всегда нулевые
type Registry struct {
	pays     map[model.SymbolID][]int64
	maxMatch int
}

// NewRegistry валидирует и замораживает таблицу выплат
func NewRegistry(entries map[model.SymbolID][]int64, maxMatch int) (*Registry, error) {
	if maxMatch < minMatchCount {
		return nil, model.NewConfigError("paytable", "max match count %d is below %d", maxMatch, minMatchCount)
	}

	r := &Registry{
		pays:     make(map[model.SymbolID][]int64, len(entries)),
		maxMatch: maxMatch,
	}

	for sym, payouts := range entries {
		if sym == model.SymbolUnknown {
			return nil, model.NewConfigError("paytable", "unknown symbol in paytable")
		}
		row := make([]int64, maxMatch+1)
		for count, payout := range payouts {
			if count >= len(row) {
				continue
			}
			if payout < 0 {
				return nil, model.NewConfigError("paytable", "negative payout for %s x%d", sym, count)
			}
			// Выплат за комбинации короче 3 не бывает
			if count < minMatchCount && payout != 0 {
				return nil, model.NewConfigError("paytable", "payout for %s at match count %d below %d", sym, count, minMatchCount)
			}
			row[count] = payout
		}
		r.pays[sym] = row
	}

	return r, nil
}

// Payout — множитель выплаты за комбинацию точной длины.
// Ноль — символ не платит на такой длине
func (r *Registry) Payout(sym model.SymbolID, count int) int64 {
	row, ok := r.pays[sym]
	if !ok || count < minMatchCount || count > r.maxMatch {
		return 0
	}
	return row[count]
}

// PayoutClamped — выплата с прижатием длины к максимуму таблицы.
// Используется для скаттеров: таблица ограничена, счёт по полю — нет
func (r *Registry) PayoutClamped(sym model.SymbolID, count int) int64 {
	if count > r.maxMatch {
		count = r.maxMatch
	}
	return r.Payout(sym, count)
}

// MaxMatch — максимальная длина комбинации в таблице
func (r *Registry) MaxMatch() int {
	return r.maxMatch
}
