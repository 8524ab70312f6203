package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBet — ставка вне границ либо ссылка на неизвестную линию.
	// Отклоняется до обращения к ГСЧ, состояние сессии не меняется
	ErrInvalidBet = errors.New("invalid bet")

	// ErrSpinInProgress — спин запрошен, пока автомат не в Idle.
	// Не ставится в очередь, клиент повторяет сам
	ErrSpinInProgress = errors.New("spin already in progress")

	// ErrNotEnoughBalance — на балансе меньше ставки
	ErrNotEnoughBalance = errors.New("not enough balance")

	// ErrPersistenceFailure — курсор ГСЧ не сохранён.
	// Результат такого спина раскрывать запрещено
	ErrPersistenceFailure = errors.New("failed to persist spin state")

	// ErrSessionNotFound — игровая сессия не найдена
	ErrSessionNotFound = errors.New("spin session not found")
)

// ConfigError — фатальная ошибка конфигурации игры.
// Возникает только при загрузке, никогда посреди спина
type ConfigError struct {
	Section string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("game config: %s: %s", e.Section, e.Reason)
}

func NewConfigError(section, format string, args ...any) *ConfigError {
	return &ConfigError{Section: section, Reason: fmt.Sprintf(format, args...)}
}
