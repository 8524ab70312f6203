package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"slot_engine/internal/model"
	statsModel "slot_engine/internal/repository/rtp_stats_repo/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (int64, error)
	UpdateBalance(ctx context.Context, id int, amount int64) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

// SpinSessionRepository — долговременное состояние игровой сессии:
// курсор ГСЧ и счётчик фриспинов
type SpinSessionRepository interface {
	CreateSpinSession(ctx context.Context, session *model.SpinSession) error
	GetSpinSession(ctx context.Context, sessionID string) (*model.SpinSession, error)

	// AdvanceCursor сохраняет продвинутый счётчик ГСЧ.
	// Сверяет прежнее значение: повторный или пропущенный спин
	// не пройдёт мимо ErrPersistenceFailure
	AdvanceCursor(ctx context.Context, sessionID string, fromCounter, toCounter uint64) error

	UpdateFreeSpinCount(ctx context.Context, sessionID string, count int) error
}

// RTPStatsRepository — статистика возврата игроку и выбор пресета лент
type RTPStatsRepository interface {
	State() statsModel.RTPState
	Record(bet, payout decimal.Decimal)
	AutoAdjust() bool
}
