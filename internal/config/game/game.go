package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"slot_engine/internal/engine"
	"slot_engine/internal/fsm"
	"slot_engine/internal/model"
)

// Config — полная конфигурация игры из config.yaml.
// Загружается один раз на игру, после валидации неизменяема
// и безопасно разделяется всеми сессиями
type Config struct {
	Reels int `yaml:"reels"`
	Rows  int `yaml:"rows"`

	MinBet        int64 `yaml:"min_bet"`
	MaxBet        int64 `yaml:"max_bet"`
	MaxPayoutMult int64 `yaml:"max_payout_mult"`

	AllowForceWin bool `yaml:"allow_force_win"`

	// TargetRTP — целевой возврат игроку в процентах
	TargetRTP float64 `yaml:"target_rtp"`

	// DefaultPreset — индекс пресета лент при старте
	DefaultPreset int `yaml:"default_preset"`

	// BonusBuyMult — цена покупки бонуса в кратности ставки
	BonusBuyMult int64 `yaml:"bonus_buy_mult"`

	// Презентационные задержки автомата спина
	ReelStaggerMS    int `yaml:"reel_stagger_ms"`
	PresentTimeoutMS int `yaml:"present_timeout_ms"`

	Paytable           map[string]map[int]int64 `yaml:"paytable"`
	ScatterPaytable    map[int]int64            `yaml:"scatter_paytable"`
	FreeSpinsByScatter map[int]int              `yaml:"free_spins_by_scatter"`

	Paylines []PaylineDef `yaml:"paylines"`
	Presets  []PresetDef  `yaml:"presets"`
}

// PaylineDef — линия в конфигурации: ряд на каждый барабан
type PaylineDef struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	Rows   []int  `yaml:"rows"`
	Active bool   `yaml:"active"`
}

// PresetDef — именованный набор лент (один вариант RTP)
type PresetDef struct {
	Name   string       `yaml:"name"`
	Strips [][]StripRun `yaml:"strips"`
}

// StripRun — отрезок ленты: символ и число повторов
type StripRun struct {
	Symbol string `yaml:"symbol"`
	Count  int    `yaml:"count"`
}

type file struct {
	Game Config `yaml:"game"`
}

// Load читает и валидирует конфигурацию игры.
// Любая ошибка здесь фатальна: до спинов она не доживает
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse game config: %w", err)
	}

	cfg := &f.Game
	if cfg.DefaultPreset < 0 || cfg.DefaultPreset >= len(cfg.Presets) {
		return nil, model.NewConfigError("presets", "default preset %d out of range", cfg.DefaultPreset)
	}
	if cfg.TargetRTP <= 0 || cfg.TargetRTP >= 200 {
		return nil, model.NewConfigError("game", "target rtp %.1f%% is not sane", cfg.TargetRTP)
	}

	// Собираем движок уже при загрузке: вся валидация геометрии,
	// таблиц и лент происходит здесь
	if _, err := cfg.BuildEngine(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// BuildEngine — сборка чистого движка из конфигурации
func (c *Config) BuildEngine() (*engine.Engine, error) {
	catalog, err := c.buildCatalog()
	if err != nil {
		return nil, err
	}

	paytable, err := c.buildPaytable()
	if err != nil {
		return nil, err
	}

	presets, err := c.buildPresets()
	if err != nil {
		return nil, err
	}

	return engine.New(engine.Config{
		Reels:              c.Reels,
		Rows:               c.Rows,
		MinBet:             c.MinBet,
		MaxBet:             c.MaxBet,
		MaxPayoutMult:      c.MaxPayoutMult,
		AllowForceWin:      c.AllowForceWin,
		FreeSpinsByScatter: c.FreeSpinsByScatter,
	}, catalog, paytable, presets)
}

// FSMConfig — презентационные настройки автомата спина
func (c *Config) FSMConfig() fsm.Config {
	return fsm.Config{
		ReelStagger:    time.Duration(c.ReelStaggerMS) * time.Millisecond,
		PresentTimeout: time.Duration(c.PresentTimeoutMS) * time.Millisecond,
	}
}

func (c *Config) buildCatalog() (*engine.Catalog, error) {
	lines := make([]engine.Payline, 0, len(c.Paylines))
	for _, def := range c.Paylines {
		cells := make([]model.Cell, len(def.Rows))
		for reel, row := range def.Rows {
			cells[reel] = model.Cell{Reel: reel, Row: row}
		}
		lines = append(lines, engine.Payline{
			ID:     def.ID,
			Name:   def.Name,
			Cells:  cells,
			Active: def.Active,
		})
	}
	return engine.NewCatalog(lines, c.Reels, c.Rows)
}

func (c *Config) buildPaytable() (*engine.Registry, error) {
	entries := make(map[model.SymbolID][]int64, len(c.Paytable)+1)

	maxMatch := c.Reels
	for count := range c.ScatterPaytable {
		if count > maxMatch {
			maxMatch = count
		}
	}

	for name, payouts := range c.Paytable {
		sym, err := model.ParseSymbolID(name)
		if err != nil {
			return nil, model.NewConfigError("paytable", "%v", err)
		}
		row := make([]int64, maxMatch+1)
		for count, payout := range payouts {
			if count < 0 || count > maxMatch {
				return nil, model.NewConfigError("paytable", "%s: match count %d out of range", name, count)
			}
			row[count] = payout
		}
		entries[sym] = row
	}

	if len(c.ScatterPaytable) > 0 {
		row := make([]int64, maxMatch+1)
		for count, payout := range c.ScatterPaytable {
			row[count] = payout
		}
		entries[model.SymbolScatter] = row
	}

	return engine.NewRegistry(entries, maxMatch)
}

func (c *Config) buildPresets() ([]*engine.Sampler, error) {
	if len(c.Presets) == 0 {
		return nil, model.NewConfigError("presets", "no strip presets configured")
	}

	samplers := make([]*engine.Sampler, 0, len(c.Presets))
	for _, preset := range c.Presets {
		strips := make([]engine.Strip, len(preset.Strips))
		for reel, runs := range preset.Strips {
			var strip engine.Strip
			for _, run := range runs {
				sym, err := model.ParseSymbolID(run.Symbol)
				if err != nil {
					return nil, model.NewConfigError("strips", "preset %q reel %d: %v", preset.Name, reel, err)
				}
				if run.Count <= 0 {
					return nil, model.NewConfigError("strips", "preset %q reel %d: count %d for %s", preset.Name, reel, run.Count, run.Symbol)
				}
				for i := 0; i < run.Count; i++ {
					strip = append(strip, sym)
				}
			}
			strips[reel] = strip
		}

		sampler, err := engine.NewSampler(strips, c.Reels, c.Rows)
		if err != nil {
			return nil, err
		}
		samplers = append(samplers, sampler)
	}

	return samplers, nil
}

// PresetName — имя пресета по индексу (для логов регулировки RTP)
func (c *Config) PresetName(index int) string {
	if index < 0 || index >= len(c.Presets) {
		return "unknown"
	}
	return c.Presets[index].Name
}
