package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RTPState — состояние возврата игроку по одной игре
type RTPState struct {
	TotalSpins  int64           // Сколько всего спинов сделано
	TotalBet    decimal.Decimal // Сумма всех ставок
	TotalPayout decimal.Decimal // Сумма всех выплат

	CurrentRTP float64 // Текущий RTP = (TotalPayout/TotalBet)*100
	TargetRTP  float64 // Целевой RTP

	PresetIndex int // Индекс текущего пресета лент

	Adjustments []AdjustmentLog // Лог корректировок

	EmergencyMode      bool   // Аварийный режим регулировки
	EmergencyDirection string // Направление: "high" либо "low"

	SpinWindow []SpinSample // Окно последних спинов
	WindowRTP  float64      // RTP в окне
	WindowSize int          // Размер окна
}

// AdjustmentLog — одна корректировка пресета
type AdjustmentLog struct {
	Timestamp time.Time
	NewPreset int
	Reason    string
	WindowRTP float64
	Profit    decimal.Decimal
}

// SpinSample — один спин в окне анализа
type SpinSample struct {
	Bet    decimal.Decimal
	Payout decimal.Decimal
}
