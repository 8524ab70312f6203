package rtp_stats_repo

import (
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	repoModel "slot_engine/internal/repository/rtp_stats_repo/model"
)

const (
	// periodSpinsToCheck Периодичность проверки необходимости корректировки
	periodSpinsToCheck = 25
	// maxAllowedRTPDeviation Допустимое отклонение оконного RTP от целевого, процентные пункты
	maxAllowedRTPDeviation = 5.0
	// criticalRTPDeviation Отклонение, включающее аварийный режим
	criticalRTPDeviation = 10.0
	// normalRTPDeviation Отклонение, при котором аварийный режим выключается
	normalRTPDeviation = 5.0
	// windowSize Размер окна последних спинов
	windowSize = 500
)

// StateRepo — статистика RTP в памяти процесса.
// Пресеты лент упорядочены по возрастанию отдачи: сдвиг индекса
// вниз понижает RTP, вверх — повышает
type StateRepo struct {
	mtx         sync.RWMutex
	state       repoModel.RTPState
	presetCount int
	log         *zap.Logger
}

// NewRTPStatsRepository — начальное состояние под целевой RTP
func NewRTPStatsRepository(targetRTP float64, presetCount, initialPreset int, log *zap.Logger) *StateRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &StateRepo{
		state: repoModel.RTPState{
			TotalBet:    decimal.Zero,
			TotalPayout: decimal.Zero,
			CurrentRTP:  targetRTP,
			TargetRTP:   targetRTP,
			PresetIndex: initialPreset,
			Adjustments: make([]repoModel.AdjustmentLog, 0),
			SpinWindow:  make([]repoModel.SpinSample, 0, windowSize),
			WindowSize:  windowSize,
		},
		presetCount: presetCount,
		log:         log,
	}
}

// State — копия текущего состояния
func (r *StateRepo) State() repoModel.RTPState {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.state
}

// Record — учёт одного спина
func (r *StateRepo) Record(bet, payout decimal.Decimal) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalSpins++
	r.state.TotalBet = r.state.TotalBet.Add(bet)
	r.state.TotalPayout = r.state.TotalPayout.Add(payout)
	if r.state.TotalBet.IsPositive() {
		r.state.CurrentRTP = rtpPercent(r.state.TotalPayout, r.state.TotalBet)
	}

	// Добавляем спин в окно и поддерживаем его размер
	r.state.SpinWindow = append(r.state.SpinWindow, repoModel.SpinSample{Bet: bet, Payout: payout})
	if len(r.state.SpinWindow) > r.state.WindowSize {
		r.state.SpinWindow = r.state.SpinWindow[1:]
	}

	windowBet, windowPayout := decimal.Zero, decimal.Zero
	for _, spin := range r.state.SpinWindow {
		windowBet = windowBet.Add(spin.Bet)
		windowPayout = windowPayout.Add(spin.Payout)
	}
	if windowBet.IsPositive() {
		r.state.WindowRTP = rtpPercent(windowPayout, windowBet)
	} else {
		r.state.WindowRTP = 0
	}
}

// AutoAdjust — автоматическая регулировка пресета.
// Аварийная корректировка при сильном уходе оконного RTP,
// стандартная — при умеренном
func (r *StateRepo) AutoAdjust() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.state.TotalSpins == 0 || r.state.TotalSpins%periodSpinsToCheck != 0 {
		return false
	}

	if r.emergencyCheck() {
		return r.applyEmergencyAdjustment()
	}
	if r.standardCheck() {
		return r.applyStandardAdjustment()
	}
	return false
}

// Аварийная проверка: отклонение больше criticalRTPDeviation
func (r *StateRepo) emergencyCheck() bool {
	absoluteDiff := math.Abs(r.state.WindowRTP - r.state.TargetRTP)

	if absoluteDiff > criticalRTPDeviation {
		r.state.EmergencyMode = true
		if r.state.WindowRTP > r.state.TargetRTP {
			r.state.EmergencyDirection = "high"
		} else {
			r.state.EmergencyDirection = "low"
		}
		return true
	}

	// Выход из аварийного режима, когда RTP вернулся к целевому
	if r.state.EmergencyMode && absoluteDiff < normalRTPDeviation {
		r.state.EmergencyMode = false
		r.state.EmergencyDirection = ""
	}
	return false
}

func (r *StateRepo) applyEmergencyAdjustment() bool {
	var newIndex int
	if r.state.EmergencyDirection == "high" {
		if r.state.PresetIndex == 0 {
			return false
		}
		newIndex = r.state.PresetIndex - 1
	} else {
		if r.state.PresetIndex >= r.presetCount-1 {
			return false
		}
		newIndex = r.state.PresetIndex + 1
	}
	return r.applyAdjustment(newIndex, "emergency")
}

// Стандартная проверка: вне аварийного режима, отклонение умеренное
func (r *StateRepo) standardCheck() bool {
	if r.state.EmergencyMode {
		return false
	}
	return math.Abs(r.state.WindowRTP-r.state.TargetRTP) > maxAllowedRTPDeviation
}

func (r *StateRepo) applyStandardAdjustment() bool {
	windowDiff := r.state.WindowRTP - r.state.TargetRTP
	var newIndex int

	switch {
	case windowDiff > maxAllowedRTPDeviation:
		if r.state.PresetIndex == 0 {
			return false
		}
		newIndex = r.state.PresetIndex - 1
	case windowDiff < -maxAllowedRTPDeviation:
		if r.state.PresetIndex >= r.presetCount-1 {
			return false
		}
		newIndex = r.state.PresetIndex + 1
	default:
		return false
	}

	return r.applyAdjustment(newIndex, "standard")
}

// Применение корректировки и логирование
func (r *StateRepo) applyAdjustment(newIndex int, reason string) bool {
	if newIndex == r.state.PresetIndex || newIndex < 0 || newIndex >= r.presetCount {
		return false
	}

	r.log.Info("rtp preset adjusted",
		zap.String("reason", reason),
		zap.Int("old_preset", r.state.PresetIndex),
		zap.Int("new_preset", newIndex),
		zap.Float64("window_rtp", r.state.WindowRTP),
		zap.Float64("target_rtp", r.state.TargetRTP),
	)

	r.state.Adjustments = append(r.state.Adjustments, repoModel.AdjustmentLog{
		Timestamp: time.Now(),
		NewPreset: newIndex,
		Reason:    reason,
		WindowRTP: r.state.WindowRTP,
		Profit:    r.state.TotalBet.Sub(r.state.TotalPayout),
	})
	r.state.PresetIndex = newIndex
	return true
}

func rtpPercent(payout, bet decimal.Decimal) float64 {
	f, _ := payout.Div(bet).Mul(decimal.NewFromInt(100)).Float64()
	return f
}
