package model

// Cell — координата ячейки игрового поля: (барабан, ряд)
type Cell struct {
	Reel int
	Row  int
}

// Grid — игровое поле: [барабан][ряд] -> символ.
// Создаётся заново на каждый спин и после возврата не мутируется
type Grid [][]SymbolID

// NewGrid создаёт пустое поле заданных размеров
func NewGrid(reels, rows int) Grid {
	g := make(Grid, reels)
	for r := range g {
		g[r] = make([]SymbolID, rows)
	}
	return g
}

func (g Grid) Reels() int {
	return len(g)
}

func (g Grid) Rows() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At — символ в ячейке
func (g Grid) At(c Cell) SymbolID {
	return g[c.Reel][c.Row]
}

// Clone — глубокая копия поля
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r := range g {
		out[r] = make([]SymbolID, len(g[r]))
		copy(out[r], g[r])
	}
	return out
}

// WinType — классификация выигрыша по кратности ставки
type WinType int

const (
	WinSmall WinType = iota
	WinBig
	WinMega
	WinJackpot
)

func (w WinType) String() string {
	switch w {
	case WinSmall:
		return "small"
	case WinBig:
		return "big"
	case WinMega:
		return "mega"
	case WinJackpot:
		return "jackpot"
	}
	return "unknown"
}

// ScatterPaylineID — зарезервированный ID "линии" для скаттер-выигрыша
const ScatterPaylineID = 0

// BetContext — запрос на спин после валидации DTO
type BetContext struct {
	Bet int64 // Ставка в минимальных единицах

	// ActivePaylineIDs — линии, на которые сделана ставка.
	// Пустой срез означает "все активные линии каталога"
	ActivePaylineIDs []int

	// ForceWin — демо-режим: подбор выигрышного поля.
	// В продакшен-конфигурации выключается целиком
	ForceWin bool
}

// WinResult — один выигрыш: по линии либо по скаттерам (PaylineID = 0)
type WinResult struct {
	PaylineID  int
	Symbol     SymbolID // Символ после разрешения вайлдов
	MatchCount int
	WinAmount  int64
	Positions  []Cell
	WinType    WinType
	Multiplier int64 // Множитель за вайлды в комбинации (2^n)
}

// SpinOutcome — атомарный результат спина.
// Неизменяем после сборки; ничего ниже по потоку не меняет итоги
type SpinOutcome struct {
	Grid     Grid
	Wins     []WinResult
	TotalWin int64

	ScatterCount       int
	AwardedFreeSpins   int
	BonusTriggered     bool
	FreeSpinsTriggered bool
	JackpotTriggered   bool
}
