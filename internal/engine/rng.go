package engine

import (
	mathRand "math/rand"
)

// Cursor — курсор ГСЧ игровой сессии: (зерно, счётчик спинов).
// Зерно генерируется криптографически при создании сессии,
// счётчик продвигается ровно на единицу за спин.
// Пара полностью определяет поток случайности спина,
// поэтому любой спин воспроизводим для аудита
type Cursor struct {
	Seed    uint64
	Counter uint64
}

// Next — курсор следующего спина
func (c Cursor) Next() Cursor {
	return Cursor{Seed: c.Seed, Counter: c.Counter + 1}
}

// mix64 — финализатор splitmix64.
// Сводит (зерно, счётчик) к зерну потока одного спина
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// newSpinRand — детерминированный поток случайности одного спина
func newSpinRand(c Cursor) *mathRand.Rand {
	seed := mix64(c.Seed + mix64(c.Counter+0x9e3779b97f4a7c15))
	return mathRand.New(mathRand.NewSource(int64(seed)))
}
