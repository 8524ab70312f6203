package spin_session_repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slot_engine/internal/model"
	"slot_engine/internal/repository"
)

const (
	table            = "spin_sessions"
	colSessionID     = "session_id"
	colUserID        = "user_id"
	colRNGSeed       = "rng_seed"
	colRNGCounter    = "rng_counter"
	colFreeSpinCount = "free_spins_count"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSpinSessionRepository(dbc *pgxpool.Pool) repository.SpinSessionRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateSpinSession - создает игровую сессию с начальным курсором ГСЧ
func (r *repo) CreateSpinSession(ctx context.Context, session *model.SpinSession) error {
	// Формируем запрос. Зерно хранится как int64: uint64 не влезает в BIGINT
	query := sq.Insert(table).
		Columns(colSessionID, colUserID, colRNGSeed, colRNGCounter, colFreeSpinCount).
		Values(session.ID, session.UserID, int64(session.RNGSeed), int64(session.RNGCounter), session.FreeSpinCount).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// GetSpinSession - игровая сессия по её ID
func (r *repo) GetSpinSession(ctx context.Context, sessionID string) (*model.SpinSession, error) {
	// Формируем запрос
	query := sq.Select(colSessionID, colUserID, colRNGSeed, colRNGCounter, colFreeSpinCount).
		From(table).
		Where(sq.Eq{colSessionID: sessionID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		session model.SpinSession
		seed    int64
		counter int64
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&session.ID, &session.UserID, &seed, &counter, &session.FreeSpinCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	session.RNGSeed = uint64(seed)
	session.RNGCounter = uint64(counter)
	return &session, nil
}

// AdvanceCursor - сохраняет продвинутый счётчик ГСЧ.
// Обновление сверяется с прежним значением: если кто-то уже
// продвинул курсор, запись не пройдёт и спин не будет раскрыт
func (r *repo) AdvanceCursor(ctx context.Context, sessionID string, fromCounter, toCounter uint64) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colRNGCounter, int64(toCounter)).
		Where(sq.Eq{colSessionID: sessionID, colRNGCounter: int64(fromCounter)}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistenceFailure, err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: cursor moved concurrently", model.ErrPersistenceFailure)
	}

	return nil
}

// UpdateFreeSpinCount - обновление количества бесплатных спинов сессии
func (r *repo) UpdateFreeSpinCount(ctx context.Context, sessionID string, count int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colFreeSpinCount, count).
		Where(sq.Eq{colSessionID: sessionID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}
