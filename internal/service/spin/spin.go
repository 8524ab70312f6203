package spin

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"slot_engine/internal/engine"
	"slot_engine/internal/fsm"
	"slot_engine/internal/middleware"
	"slot_engine/internal/model"
)

// Spin выполняет спин с учётом баланса и фриспинов.
// Результат раскрывается только после фиксации курсора ГСЧ в БД
func (s *serv) Spin(ctx context.Context, bet model.BetContext) (*model.SpinResult, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}
	sessionID, ok := middleware.SessionIDFromContext(ctx)
	if !ok {
		return nil, errors.New("session id not found in context")
	}

	m := s.session(sessionID)

	// Автомат отвергает спин, если предыдущий ещё идёт.
	// Результат пишется в res вычислителем этого вызова: параллельный
	// запрос той же сессии не может подменить или забрать его
	var res *model.SpinResult
	if _, err := m.Spin(ctx, bet, s.spinCompute(sessionID, userID, &res)); err != nil {
		return nil, err
	}

	// Обновляем статистику и при необходимости корректируем пресет
	s.statsRepo.Record(decimal.NewFromInt(bet.Bet), decimal.NewFromInt(res.Outcome.TotalWin))
	s.statsRepo.AutoAdjust()

	return res, nil
}

// spinCompute — транзакционное тело спина; результат уходит в dst
func (s *serv) spinCompute(sessionID string, userID int, dst **model.SpinResult) fsm.ComputeFunc {
	return func(ctx context.Context, bet model.BetContext) (*model.SpinOutcome, error) {
		var (
			outcome *model.SpinOutcome
			res     model.SpinResult
		)

		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			sess, err := s.spinRepo.GetSpinSession(txCtx, sessionID)
			if err != nil {
				return err
			}

			balance, err := s.userRepo.GetBalance(txCtx, userID)
			if err != nil {
				return err
			}

			freeSpins := sess.FreeSpinCount

			// Платный спин: списываем ставку. Фриспин: уменьшаем счётчик
			if freeSpins == 0 {
				if balance < bet.Bet {
					return model.ErrNotEnoughBalance
				}
				balance -= bet.Bet
				if err := s.userRepo.UpdateBalance(txCtx, userID, balance); err != nil {
					return err
				}
			} else {
				freeSpins--
				if err := s.spinRepo.UpdateFreeSpinCount(txCtx, sessionID, freeSpins); err != nil {
					return err
				}
				res.InFreeSpin = true
			}

			// Пресет лент исходя из текущей статистики RTP
			preset := s.statsRepo.State().PresetIndex

			cur := engine.Cursor{Seed: sess.RNGSeed, Counter: sess.RNGCounter}
			out, newCur, err := s.eng.Spin(bet, preset, cur)
			if err != nil {
				return err
			}

			// Фиксация курсора до раскрытия результата.
			// Если запись не прошла, спин не состоялся
			if err := s.spinRepo.AdvanceCursor(txCtx, sessionID, cur.Counter, newCur.Counter); err != nil {
				return err
			}

			// Начисление выигрыша
			balance += out.TotalWin
			if err := s.userRepo.UpdateBalance(txCtx, userID, balance); err != nil {
				return err
			}

			// Начисление выигранных фриспинов
			if out.AwardedFreeSpins > 0 {
				freeSpins += out.AwardedFreeSpins
				if err := s.spinRepo.UpdateFreeSpinCount(txCtx, sessionID, freeSpins); err != nil {
					return err
				}
			}

			outcome = out
			res.Outcome = out
			res.Balance = balance
			res.FreeSpinCount = freeSpins
			return nil
		})
		if err != nil {
			s.log.Warn("spin failed",
				zap.String("session_id", sessionID),
				zap.Int("user_id", userID),
				zap.Error(err),
			)
			return nil, err
		}

		*dst = &res
		return outcome, nil
	}
}

// SlamStopAll Мгновенная остановка всех барабанов и показа выигрыша
func (s *serv) SlamStopAll(ctx context.Context) error {
	m, err := s.currentSession(ctx)
	if err != nil {
		return err
	}
	m.SlamStopAll()
	return nil
}

// SlamStopReel Мгновенная остановка одного барабана
func (s *serv) SlamStopReel(ctx context.Context, reel int) error {
	m, err := s.currentSession(ctx)
	if err != nil {
		return err
	}
	m.SlamStopReel(reel)
	return nil
}

// Events Канал событий презентации спина для текущей сессии
func (s *serv) Events(ctx context.Context) (<-chan model.SpinEvent, error) {
	m, err := s.currentSession(ctx)
	if err != nil {
		return nil, err
	}
	return m.Events(), nil
}

// CheckData Баланс и остаток фриспинов игрока
func (s *serv) CheckData(ctx context.Context) (*model.Data, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}
	sessionID, ok := middleware.SessionIDFromContext(ctx)
	if !ok {
		return nil, errors.New("session id not found in context")
	}

	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess, err := s.spinRepo.GetSpinSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &model.Data{
		Balance:       balance,
		FreeSpinCount: sess.FreeSpinCount,
	}, nil
}

func (s *serv) currentSession(ctx context.Context) (*fsm.Machine, error) {
	_, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}
	sessionID, ok := middleware.SessionIDFromContext(ctx)
	if !ok {
		return nil, errors.New("session id not found in context")
	}
	return s.session(sessionID), nil
}
