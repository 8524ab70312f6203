package engine

import (
	"errors"
	"reflect"
	"testing"

	"slot_engine/internal/model"
)

func testStrips() []Strip {
	base := Strip{
		model.SymbolHigh1, model.SymbolHigh2, model.SymbolMedium1,
		model.SymbolLow1, model.SymbolAce, model.SymbolKing,
		model.SymbolQueen, model.SymbolJack, model.SymbolWild,
		model.SymbolScatter,
	}
	strips := make([]Strip, 5)
	for i := range strips {
		strip := make(Strip, len(base))
		copy(strip, base)
		strips[i] = strip
	}
	return strips
}

func TestSamplerDeterministicReplay(t *testing.T) {
	sampler, err := NewSampler(testStrips(), 5, 3)
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}

	cur := Cursor{Seed: 42, Counter: 7}

	first, next := sampler.Sample(cur)
	again, nextAgain := sampler.Sample(cur)

	// Один и тот же курсор — одно и то же поле
	if !reflect.DeepEqual(first, again) {
		t.Fatalf("same cursor produced different grids:\n%v\n%v", first, again)
	}
	if next != nextAgain {
		t.Fatalf("advanced cursors differ: %v != %v", next, nextAgain)
	}
	if next != (Cursor{Seed: 42, Counter: 8}) {
		t.Fatalf("cursor advanced to %v, want counter+1", next)
	}

	// Следующий счётчик — другой поток
	other, _ := sampler.Sample(next)
	if reflect.DeepEqual(first, other) {
		t.Fatal("consecutive counters produced identical grids")
	}
}

func TestSamplerWindowsFollowStrip(t *testing.T) {
	strips := testStrips()
	sampler, err := NewSampler(strips, 5, 3)
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}

	grid, _ := sampler.Sample(Cursor{Seed: 1, Counter: 1})

	// Каждый барабан — непрерывное окно своей ленты с заворотом
	for r := 0; r < 5; r++ {
		strip := strips[r]
		found := false
		for stop := range strip {
			match := true
			for row := 0; row < 3; row++ {
				if grid[r][row] != strip[(stop+row)%len(strip)] {
					match = false
					break
				}
			}
			if match {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("reel %d window %v is not a contiguous strip window", r, grid[r])
		}
	}
}

func TestSamplerRejectsShortStrip(t *testing.T) {
	strips := testStrips()
	strips[2] = Strip{model.SymbolHigh1, model.SymbolLow1} // короче rows

	_, err := NewSampler(strips, 5, 3)
	if err == nil {
		t.Fatal("short strip must be rejected at load time")
	}
	var cfgErr *model.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %T, want *model.ConfigError", err)
	}
}

func TestSamplerRejectsStripCountMismatch(t *testing.T) {
	strips := testStrips()[:4]
	if _, err := NewSampler(strips, 5, 3); err == nil {
		t.Fatal("strip count mismatch must be rejected")
	}
}

func TestSamplerRejectsUnknownSymbol(t *testing.T) {
	strips := testStrips()
	strips[0][3] = model.SymbolUnknown
	if _, err := NewSampler(strips, 5, 3); err == nil {
		t.Fatal("unknown symbol in strip must be rejected")
	}
}
