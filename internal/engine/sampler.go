package engine

import (
	mathRand "math/rand"

	"slot_engine/internal/model"
)

// Strip — упорядоченная лента символов одного барабана.
// Веса символов выражены повторами в ленте
type Strip []model.SymbolID

// Sampler — генератор поля по лентам барабанов.
// Остановка барабана — равномерно выбранная позиция ленты,
// в поле попадает непрерывное окно из rows символов (с заворотом)
type Sampler struct {
	strips []Strip
	rows   int
}

// NewSampler валидирует ленты против размеров поля.
// Лента короче rows — фатальная ошибка конфигурации
func NewSampler(strips []Strip, reels, rows int) (*Sampler, error) {
	if len(strips) != reels {
		return nil, model.NewConfigError("strips", "got %d strips, expected %d reels", len(strips), reels)
	}
	for i, strip := range strips {
		if len(strip) < rows {
			return nil, model.NewConfigError("strips", "reel %d strip has %d symbols, need at least %d", i, len(strip), rows)
		}
		for j, sym := range strip {
			if sym == model.SymbolUnknown {
				return nil, model.NewConfigError("strips", "reel %d position %d: unknown symbol", i, j)
			}
		}
	}
	return &Sampler{strips: strips, rows: rows}, nil
}

// Sample — контракт §ReelStripSampler: поле + продвинутый курсор.
// Вызывающий обязан сохранить новый курсор до раскрытия результата
func (s *Sampler) Sample(cur Cursor) (model.Grid, Cursor) {
	return s.sampleWith(newSpinRand(cur)), cur.Next()
}

// sampleWith рисует поле из уже открытого потока случайности.
// Повторные вызовы в одном потоке нужны режиму force-win
func (s *Sampler) sampleWith(rng *mathRand.Rand) model.Grid {
	grid := model.NewGrid(len(s.strips), s.rows)
	for r, strip := range s.strips {
		stop := rng.Intn(len(strip))
		for row := 0; row < s.rows; row++ {
			grid[r][row] = strip[(stop+row)%len(strip)]
		}
	}
	return grid
}

// Reels — количество барабанов
func (s *Sampler) Reels() int {
	return len(s.strips)
}
