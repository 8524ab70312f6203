package model

// SpinResult — итог спина с точки зрения игрока:
// исход на поле плюс баланс и остаток фриспинов после расчёта
type SpinResult struct {
	Outcome       *SpinOutcome
	Balance       int64
	FreeSpinCount int
	InFreeSpin    bool
}

// Data — текущие данные игрока для клиента
type Data struct {
	Balance       int64
	FreeSpinCount int
}
