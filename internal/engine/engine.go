package engine

import (
	"fmt"

	"slot_engine/internal/model"
)

// Количество перерисовок поля в режиме force-win.
// Черпаются из потока того же спина, детерминизм сохраняется
const forceWinRedraws = 64

// Config — параметры игры, не относящиеся к геометрии и таблицам
type Config struct {
	Reels int
	Rows  int

	MinBet int64
	MaxBet int64

	// MaxPayoutMult — потолок выплаты за спин в кратности ставки.
	// Ноль — без ограничения
	MaxPayoutMult int64

	// AllowForceWin — разрешён ли демо-режим подбора выигрыша.
	// В продакшене выключен, запрос с force_win отклоняется
	AllowForceWin bool

	// FreeSpinsByScatter — начисление фриспинов по количеству скаттеров
	FreeSpinsByScatter map[int]int

	// BonusRule — предикат общего бонуса; nil означает правило по умолчанию
	BonusRule BonusRule
}

// Engine — вычислитель результата спина.
// Чистая функция от (курсор, ставка, конфигурация): без ввода-вывода,
// без разделяемого изменяемого состояния, безопасен для параллельных сессий
type Engine struct {
	cfg           Config
	catalog       *Catalog
	paytable      *Registry
	presets       []*Sampler
	maxScatterKey int
}

// New собирает движок из уже провалидированных частей
func New(cfg Config, catalog *Catalog, paytable *Registry, presets []*Sampler) (*Engine, error) {
	if cfg.Reels <= 0 || cfg.Rows <= 0 {
		return nil, model.NewConfigError("game", "grid %dx%d is not positive", cfg.Reels, cfg.Rows)
	}
	if cfg.MinBet <= 0 || cfg.MaxBet < cfg.MinBet {
		return nil, model.NewConfigError("game", "bet bounds [%d,%d] are invalid", cfg.MinBet, cfg.MaxBet)
	}
	if len(presets) == 0 {
		return nil, model.NewConfigError("presets", "at least one strip preset is required")
	}
	for i, p := range presets {
		if p.Reels() != cfg.Reels {
			return nil, model.NewConfigError("presets", "preset %d has %d reels, expected %d", i, p.Reels(), cfg.Reels)
		}
	}

	maxKey := 0
	for count := range cfg.FreeSpinsByScatter {
		if count > maxKey {
			maxKey = count
		}
	}

	return &Engine{
		cfg:           cfg,
		catalog:       catalog,
		paytable:      paytable,
		presets:       presets,
		maxScatterKey: maxKey,
	}, nil
}

// PresetCount — количество пресетов лент (для регулировки RTP)
func (e *Engine) PresetCount() int {
	return len(e.presets)
}

// Catalog — каталог линий движка
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// ValidateBet — проверка запроса до любого обращения к ГСЧ
func (e *Engine) ValidateBet(bet model.BetContext) error {
	if bet.Bet < e.cfg.MinBet || bet.Bet > e.cfg.MaxBet {
		return fmt.Errorf("%w: bet %d out of bounds [%d,%d]", model.ErrInvalidBet, bet.Bet, e.cfg.MinBet, e.cfg.MaxBet)
	}
	if bet.ForceWin && !e.cfg.AllowForceWin {
		return fmt.Errorf("%w: force win is disabled", model.ErrInvalidBet)
	}
	for _, id := range bet.ActivePaylineIDs {
		line, ok := e.catalog.Line(id)
		if !ok {
			return fmt.Errorf("%w: unknown payline %d", model.ErrInvalidBet, id)
		}
		if !line.Active {
			return fmt.Errorf("%w: payline %d is not active", model.ErrInvalidBet, id)
		}
	}
	return nil
}

// Spin — единственная атомарная "точка истины" спина.
// Валидация -> генерация поля -> линии -> скаттеры -> триггеры ->
// неизменяемый SpinOutcome и продвинутый курсор.
// Курсор обязан быть сохранён вызывающим до раскрытия результата
func (e *Engine) Spin(bet model.BetContext, presetIndex int, cur Cursor) (*model.SpinOutcome, Cursor, error) {
	if err := e.ValidateBet(bet); err != nil {
		return nil, cur, err
	}
	if presetIndex < 0 || presetIndex >= len(e.presets) {
		return nil, cur, model.NewConfigError("presets", "preset index %d out of range", presetIndex)
	}

	lines, err := e.resolveLines(bet.ActivePaylineIDs)
	if err != nil {
		return nil, cur, err
	}

	sampler := e.presets[presetIndex]
	rng := newSpinRand(cur)

	grid := sampler.sampleWith(rng)
	wins, total := e.evaluate(grid, lines, bet.Bet)

	// Демо-режим: перерисовываем поле из того же потока,
	// пока не появится выигрыш. Поток спина один, результат
	// по-прежнему воспроизводим из курсора
	if bet.ForceWin && total == 0 {
		for i := 0; i < forceWinRedraws && total == 0; i++ {
			grid = sampler.sampleWith(rng)
			wins, total = e.evaluate(grid, lines, bet.Bet)
		}
	}

	total = e.applyPayoutCap(wins, total, bet.Bet)

	scatterCount := CountScatters(grid)
	triggers := DetectTriggers(wins, scatterCount, e.cfg.Reels, e.cfg.BonusRule)

	outcome := &model.SpinOutcome{
		Grid:               grid,
		Wins:               wins,
		TotalWin:           total,
		ScatterCount:       scatterCount,
		AwardedFreeSpins:   e.awardedFreeSpins(scatterCount),
		BonusTriggered:     triggers.Bonus,
		FreeSpinsTriggered: triggers.FreeSpins,
		JackpotTriggered:   triggers.Jackpot,
	}

	return outcome, cur.Next(), nil
}

// resolveLines — выбор линий спина: явный список из ставки
// либо все активные линии каталога
func (e *Engine) resolveLines(ids []int) ([]Payline, error) {
	if len(ids) == 0 {
		return e.catalog.Active(), nil
	}
	lines := make([]Payline, 0, len(ids))
	for _, id := range ids {
		line, ok := e.catalog.Line(id)
		if !ok {
			return nil, fmt.Errorf("%w: unknown payline %d", model.ErrInvalidBet, id)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// evaluate — линии плюс скаттеры, сумма всегда равна сумме частей
func (e *Engine) evaluate(grid model.Grid, lines []Payline, bet int64) ([]model.WinResult, int64) {
	wins := EvaluateLines(grid, lines, e.paytable, bet)
	if scatterWin, ok := EvaluateScatter(grid, e.paytable, bet); ok {
		wins = append(wins, scatterWin)
	}

	var total int64
	for _, w := range wins {
		total += w.WinAmount
	}
	return wins, total
}

// applyPayoutCap — потолок выплаты за спин.
// Излишек снимается с конца списка выигрышей, чтобы инвариант
// totalWin == sum(wins) сохранялся и под лимитом.
// Срезанный выигрыш переклассифицируется по выплаченной сумме
func (e *Engine) applyPayoutCap(wins []model.WinResult, total, bet int64) int64 {
	if e.cfg.MaxPayoutMult <= 0 {
		return total
	}
	maxPay := e.cfg.MaxPayoutMult * bet
	if total <= maxPay {
		return total
	}

	excess := total - maxPay
	for i := len(wins) - 1; i >= 0 && excess > 0; i-- {
		cut := min(excess, wins[i].WinAmount)
		wins[i].WinAmount -= cut
		excess -= cut
		if cut > 0 {
			wins[i].WinType = ClassifyWin(wins[i].WinAmount, bet)
		}
	}
	return maxPay
}

// awardedFreeSpins — фриспины за скаттеры, длина прижата к таблице
func (e *Engine) awardedFreeSpins(scatterCount int) int {
	if scatterCount < minMatchCount || len(e.cfg.FreeSpinsByScatter) == 0 {
		return 0
	}
	if scatterCount > e.maxScatterKey {
		scatterCount = e.maxScatterKey
	}
	return e.cfg.FreeSpinsByScatter[scatterCount]
}
