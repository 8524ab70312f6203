package model

// SpinEventType — тип события презентационной последовательности
type SpinEventType string

const (
	EventReelStart    SpinEventType = "reel:start"
	EventReelStop     SpinEventType = "reel:stop"
	EventWinReveal    SpinEventType = "win:reveal"
	EventSpinComplete SpinEventType = "spin:complete"
)

// SpinEvent — событие для слоя отрисовки.
// Несёт уже посчитанные данные: ни одно событие не порождает новых вычислений
type SpinEvent struct {
	Type SpinEventType

	// Reel и Symbols заполнены для reel:start / reel:stop
	Reel    int
	Symbols []SymbolID

	// Wins и TotalWin заполнены для win:reveal
	Wins     []WinResult
	TotalWin int64

	// Outcome заполнен для spin:complete
	Outcome *SpinOutcome
}
