package model

import "time"

// Session — сессия аутентификации (refresh-токен)
type Session struct {
	ID           string
	UserID       int
	RefreshToken string
	ExpiresAt    time.Time
}

// SpinSession — игровая сессия: курсор ГСЧ и счётчик фриспинов.
// Курсор продвигается ровно один раз на спин и сохраняется в БД
// до раскрытия результата, чтобы сбой не дал "переиграть" спин
type SpinSession struct {
	ID            string
	UserID        int
	RNGSeed       uint64
	RNGCounter    uint64
	FreeSpinCount int
}
