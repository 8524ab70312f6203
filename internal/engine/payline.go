package engine

import (
	"slot_engine/internal/model"
)

// Payline — геометрия одной линии выплат
type Payline struct {
	ID     int
	Name   string
	Cells  []model.Cell
	Active bool
}

// Catalog — неизменяемый каталог линий.
// Валидируется один раз при загрузке конфигурации и
// безопасно разделяется всеми сессиями
type Catalog struct {
	lines  []Payline
	byID   map[int]Payline
	active []Payline
}

// NewCatalog проверяет геометрию линий против размеров поля.
// Линия за пределами поля — фатальная ошибка конфигурации,
// до вычисления выигрышей такие линии не доживают
func NewCatalog(lines []Payline, reels, rows int) (*Catalog, error) {
	c := &Catalog{
		lines: make([]Payline, 0, len(lines)),
		byID:  make(map[int]Payline, len(lines)),
	}

	for _, line := range lines {
		if line.ID == model.ScatterPaylineID {
			return nil, model.NewConfigError("paylines", "line id %d is reserved for scatter wins", model.ScatterPaylineID)
		}
		if _, ok := c.byID[line.ID]; ok {
			return nil, model.NewConfigError("paylines", "duplicate line id %d", line.ID)
		}
		if len(line.Cells) != reels {
			return nil, model.NewConfigError("paylines", "line %d has %d cells, expected one per reel (%d)", line.ID, len(line.Cells), reels)
		}
		for i, cell := range line.Cells {
			// Одна ячейка на барабан, строго слева направо
			if cell.Reel != i {
				return nil, model.NewConfigError("paylines", "line %d cell %d references reel %d, expected %d", line.ID, i, cell.Reel, i)
			}
			if cell.Row < 0 || cell.Row >= rows {
				return nil, model.NewConfigError("paylines", "line %d cell %d row %d out of bounds [0,%d)", line.ID, i, cell.Row, rows)
			}
		}

		c.lines = append(c.lines, line)
		c.byID[line.ID] = line
		if line.Active {
			c.active = append(c.active, line)
		}
	}

	return c, nil
}

// Line — линия по ID
func (c *Catalog) Line(id int) (Payline, bool) {
	line, ok := c.byID[id]
	return line, ok
}

// Active — все активные линии каталога в порядке объявления
func (c *Catalog) Active() []Payline {
	return c.active
}

func (c *Catalog) Len() int {
	return len(c.lines)
}
