package model

import "fmt"

// SymbolID — закрытое множество символов игры.
// Строковые идентификаторы из конфигурации парсятся один раз при загрузке,
// в рантайме символ — это число, а не строка.
type SymbolID int

const (
	SymbolUnknown SymbolID = iota
	SymbolWild
	SymbolWild2
	SymbolScatter
	SymbolHigh1
	SymbolHigh2
	SymbolHigh3
	SymbolHigh4
	SymbolMedium1
	SymbolMedium2
	SymbolMedium3
	SymbolMedium4
	SymbolLow1
	SymbolLow2
	SymbolLow3
	SymbolLow4
	SymbolAce
	SymbolKing
	SymbolQueen
	SymbolJack
)

var symbolNames = map[SymbolID]string{
	SymbolWild:    "wild",
	SymbolWild2:   "wild2",
	SymbolScatter: "scatter",
	SymbolHigh1:   "high_1",
	SymbolHigh2:   "high_2",
	SymbolHigh3:   "high_3",
	SymbolHigh4:   "high_4",
	SymbolMedium1: "medium_1",
	SymbolMedium2: "medium_2",
	SymbolMedium3: "medium_3",
	SymbolMedium4: "medium_4",
	SymbolLow1:    "low_1",
	SymbolLow2:    "low_2",
	SymbolLow3:    "low_3",
	SymbolLow4:    "low_4",
	SymbolAce:     "ace",
	SymbolKing:    "king",
	SymbolQueen:   "queen",
	SymbolJack:    "jack",
}

var symbolIDs = func() map[string]SymbolID {
	m := make(map[string]SymbolID, len(symbolNames))
	for id, name := range symbolNames {
		m[name] = id
	}
	return m
}()

// ParseSymbolID — разбор строкового идентификатора символа.
// Вызывается только при загрузке конфигурации, никогда в процессе спина
func ParseSymbolID(s string) (SymbolID, error) {
	id, ok := symbolIDs[s]
	if !ok {
		return SymbolUnknown, fmt.Errorf("unknown symbol %q", s)
	}
	return id, nil
}

func (s SymbolID) String() string {
	name, ok := symbolNames[s]
	if !ok {
		return "unknown"
	}
	return name
}

// IsWild — вайлд замещает любой обычный символ на линии
func (s SymbolID) IsWild() bool {
	return s == SymbolWild || s == SymbolWild2
}

func (s SymbolID) IsScatter() bool {
	return s == SymbolScatter
}
