package fsm

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"slot_engine/internal/model"
)

// State — состояние жизненного цикла спина
type State int32

const (
	StateIdle State = iota
	StateSpinning
	StateReelStopping
	StateEvaluated
	StatePresenting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpinning:
		return "spinning"
	case StateReelStopping:
		return "reel_stopping"
	case StateEvaluated:
		return "evaluated"
	case StatePresenting:
		return "presenting"
	}
	return "unknown"
}

// ComputeFunc — вычисление и сохранение результата спина.
// Вызывается ровно один раз на спин, до каких-либо событий анимации:
// результат решён прежде, чем барабаны "закрутятся"
type ComputeFunc func(ctx context.Context, bet model.BetContext) (*model.SpinOutcome, error)

// Config — презентационные задержки; на итоги спина не влияют
type Config struct {
	// ReelStagger — пауза между остановками соседних барабанов
	ReelStagger time.Duration
	// PresentTimeout — принудительное завершение показа выигрыша
	PresentTimeout time.Duration
	// EventBuffer — ёмкость очереди событий
	EventBuffer int
}

// Machine — автомат одного спина на игровую сессию.
// В один момент не более одного спина: запрос не из Idle
// отклоняется, а не ставится в очередь.
// События уходят в ограниченную типизированную очередь
// строго в порядке: reel:start*, reel:stop*, win:reveal, spin:complete.
// Чтение очереди необязательно: при переполнении вытесняется самое
// старое событие, новый спин вытесняет непрочитанные события прошлого.
// Доставка результата спина никогда не зависит от потребителя анимации
type Machine struct {
	mu    sync.Mutex
	state State
	cfg   Config
	log   *zap.Logger

	events chan model.SpinEvent

	// slamAll закрывается по slamStopAll и действует до конца спина
	slamAll chan struct{}
	// slamReel — наибольший индекс барабана, остановленного вручную
	slamReel int
	// kick будит ожидания после slamStopReel
	kick chan struct{}
}

func New(cfg Config, log *zap.Logger) *Machine {
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = 64
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine{
		state:    StateIdle,
		cfg:      cfg,
		log:      log,
		events:   make(chan model.SpinEvent, cfg.EventBuffer),
		slamAll:  make(chan struct{}),
		slamReel: -1,
		kick:     make(chan struct{}),
	}
}

// Events — очередь событий для слоя отрисовки
func (m *Machine) Events() <-chan model.SpinEvent {
	return m.events
}

// State — текущее состояние автомата
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Spin — запрос спина. Вычислитель передаётся на каждый вызов:
// результат уходит вызывающему напрямую, а не через общее состояние.
// Результат вычисляется и сохраняется немедленно и целиком;
// презентационные события доигрываются асинхронно.
// Возвращает ErrSpinInProgress, если автомат не в Idle
func (m *Machine) Spin(ctx context.Context, bet model.BetContext, compute ComputeFunc) (*model.SpinOutcome, error) {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return nil, model.ErrSpinInProgress
	}
	m.state = StateSpinning
	m.slamAll = make(chan struct{})
	m.slamReel = -1
	m.mu.Unlock()

	// Непрочитанные события прошлого спина никому не нужны
	m.drainStale()

	outcome, err := compute(ctx, bet)
	if err != nil {
		m.setState(StateIdle)
		return nil, err
	}

	// Результат решён; всё дальнейшее — только показ
	for reel := 0; reel < outcome.Grid.Reels(); reel++ {
		m.emit(model.SpinEvent{Type: model.EventReelStart, Reel: reel})
	}

	go m.present(outcome)

	return outcome, nil
}

// SlamStopAll — мгновенно доиграть оставшиеся события.
// Пропускается только анимация: уже решённый результат
// не пересчитывается и не отбрасывается
func (m *Machine) SlamStopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReelStopping && m.state != StatePresenting && m.state != StateEvaluated {
		return
	}
	select {
	case <-m.slamAll:
		// Уже остановлено
	default:
		close(m.slamAll)
	}
}

// SlamStopReel — мгновенно остановить барабаны по индекс включительно.
// Порядок событий reel:stop при этом не меняется
func (m *Machine) SlamStopReel(reel int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReelStopping {
		return
	}
	if reel > m.slamReel {
		m.slamReel = reel
		close(m.kick)
		m.kick = make(chan struct{})
	}
}

// present — доигрывание презентационной последовательности
func (m *Machine) present(outcome *model.SpinOutcome) {
	m.setState(StateReelStopping)

	for reel := 0; reel < outcome.Grid.Reels(); reel++ {
		m.waitReel(reel)

		symbols := make([]model.SymbolID, len(outcome.Grid[reel]))
		copy(symbols, outcome.Grid[reel])
		m.emit(model.SpinEvent{Type: model.EventReelStop, Reel: reel, Symbols: symbols})
	}

	// Последний барабан остановлен — выигрыши уходят наружу
	m.setState(StateEvaluated)
	m.emit(model.SpinEvent{
		Type:     model.EventWinReveal,
		Wins:     outcome.Wins,
		TotalWin: outcome.TotalWin,
	})

	m.setState(StatePresenting)
	m.waitPresent()

	m.emit(model.SpinEvent{Type: model.EventSpinComplete, Outcome: outcome})
	m.setState(StateIdle)

	m.log.Debug("spin presented",
		zap.Int64("total_win", outcome.TotalWin),
		zap.Int("wins", len(outcome.Wins)),
	)
}

// waitReel — пауза перед остановкой барабана,
// прерываемая slam-стопом всего поля либо этого барабана
func (m *Machine) waitReel(reel int) {
	if m.cfg.ReelStagger <= 0 {
		return
	}
	deadline := time.NewTimer(m.cfg.ReelStagger)
	defer deadline.Stop()

	for {
		m.mu.Lock()
		released := m.slamReel >= reel
		kick := m.kick
		slamAll := m.slamAll
		m.mu.Unlock()
		if released {
			return
		}

		select {
		case <-deadline.C:
			return
		case <-slamAll:
			return
		case <-kick:
			// Пересматриваем slamReel
		}
	}
}

// waitPresent — показ выигрыша: до таймаута либо slam-стопа
func (m *Machine) waitPresent() {
	if m.cfg.PresentTimeout <= 0 {
		return
	}
	m.mu.Lock()
	slamAll := m.slamAll
	m.mu.Unlock()
	select {
	case <-time.After(m.cfg.PresentTimeout):
	case <-slamAll:
	}
}

func (m *Machine) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// drainStale — очистка очереди от событий завершённого спина
func (m *Machine) drainStale() {
	for {
		select {
		case <-m.events:
		default:
			return
		}
	}
}

// emit — доставка события с сохранением порядка.
// Отправитель не блокируется: при переполнении очереди вытесняется
// самое старое событие, медленный или отсутствующий потребитель
// не останавливает спин
func (m *Machine) emit(ev model.SpinEvent) {
	for {
		select {
		case m.events <- ev:
			return
		default:
		}
		select {
		case <-m.events:
		default:
		}
	}
}
