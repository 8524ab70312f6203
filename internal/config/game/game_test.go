package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slot_engine/internal/model"
)

const validConfig = `
game:
  reels: 3
  rows: 3
  min_bet: 1
  max_bet: 100
  target_rtp: 95
  default_preset: 0
  paytable:
    high_1: {3: 5}
  scatter_paytable: {3: 2}
  paylines:
    - {id: 1, name: "mid", rows: [1, 1, 1], active: true}
  presets:
    - name: "base"
      strips:
        - [{symbol: high_1, count: 3}, {symbol: king, count: 2}]
        - [{symbol: high_1, count: 3}, {symbol: king, count: 2}]
        - [{symbol: high_1, count: 3}, {symbol: king, count: 2}]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	eng, err := cfg.BuildEngine()
	if err != nil {
		t.Fatalf("BuildEngine: %v", err)
	}
	if eng.PresetCount() != 1 {
		t.Errorf("preset count = %d, want 1", eng.PresetCount())
	}
	if eng.Catalog().Len() != 1 {
		t.Errorf("payline count = %d, want 1", eng.Catalog().Len())
	}
	if cfg.PresetName(0) != "base" {
		t.Errorf("preset name = %q, want base", cfg.PresetName(0))
	}
	if cfg.PresetName(5) != "unknown" {
		t.Errorf("out-of-range preset name = %q, want unknown", cfg.PresetName(5))
	}
}

func TestLoadRepoConfig(t *testing.T) {
	cfg, err := Load("../../../config.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Reels != 5 || cfg.Rows != 3 {
		t.Errorf("grid %dx%d, want 5x3", cfg.Reels, cfg.Rows)
	}
	if len(cfg.Presets) < 2 {
		t.Errorf("preset count = %d, want at least 2 for RTP adjustment", len(cfg.Presets))
	}
	if _, err := cfg.BuildEngine(); err != nil {
		t.Fatalf("BuildEngine: %v", err)
	}
}

func TestLoadRejectsBrokenConfig(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(string) string
		section string
	}{
		{
			name:    "payline row out of bounds",
			mutate:  func(s string) string { return strings.Replace(s, "rows: [1, 1, 1]", "rows: [1, 3, 1]", 1) },
			section: "paylines",
		},
		{
			name:    "reserved payline id",
			mutate:  func(s string) string { return strings.Replace(s, "id: 1", "id: 0", 1) },
			section: "paylines",
		},
		{
			name: "strip shorter than rows",
			mutate: func(s string) string {
				return strings.Replace(s,
					"- [{symbol: high_1, count: 3}, {symbol: king, count: 2}]",
					"- [{symbol: high_1, count: 2}]", 1)
			},
			section: "strips",
		},
		{
			name:    "unknown symbol",
			mutate:  func(s string) string { return strings.Replace(s, "symbol: king", "symbol: dragon", 1) },
			section: "strips",
		},
		{
			name:    "default preset out of range",
			mutate:  func(s string) string { return strings.Replace(s, "default_preset: 0", "default_preset: 7", 1) },
			section: "presets",
		},
		{
			name:    "insane target rtp",
			mutate:  func(s string) string { return strings.Replace(s, "target_rtp: 95", "target_rtp: 0", 1) },
			section: "game",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.mutate(validConfig)))
			if err == nil {
				t.Fatal("broken config must be rejected at load time")
			}
			var cfgErr *model.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("got %T (%v), want *model.ConfigError", err, err)
			}
			if cfgErr.Section != tc.section {
				t.Errorf("section = %q, want %q", cfgErr.Section, tc.section)
			}
		})
	}
}
