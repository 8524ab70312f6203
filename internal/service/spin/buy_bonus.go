package spin

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"slot_engine/internal/engine"
	"slot_engine/internal/fsm"
	"slot_engine/internal/middleware"
	"slot_engine/internal/model"
)

// BuyBonus Покупка бонусного раунда: списывается цена в кратности
// ставки, тригерный спин гарантирует минимум фриспинов за 3 скаттера.
// Идёт через автомат сессии наравне с обычным спином: один спин
// за раз, с полной презентационной последовательностью
func (s *serv) BuyBonus(ctx context.Context, bet int64) (*model.SpinResult, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}
	sessionID, ok := middleware.SessionIDFromContext(ctx)
	if !ok {
		return nil, errors.New("session id not found in context")
	}

	if s.gameCfg.FreeSpinsByScatter[3] == 0 {
		return nil, errors.New("bonus buy is not configured")
	}

	m := s.session(sessionID)

	var res *model.SpinResult
	if _, err := m.Spin(ctx, model.BetContext{Bet: bet}, s.bonusCompute(sessionID, userID, &res)); err != nil {
		return nil, fmt.Errorf("buy bonus: %w", err)
	}

	s.statsRepo.Record(decimal.NewFromInt(bet*s.gameCfg.BonusBuyMult), decimal.NewFromInt(res.Outcome.TotalWin))
	s.statsRepo.AutoAdjust()

	return res, nil
}

// bonusCompute — транзакционное тело покупки бонуса; результат уходит в dst
func (s *serv) bonusCompute(sessionID string, userID int, dst **model.SpinResult) fsm.ComputeFunc {
	return func(ctx context.Context, bet model.BetContext) (*model.SpinOutcome, error) {
		guaranteed := s.gameCfg.FreeSpinsByScatter[3]

		var (
			outcome *model.SpinOutcome
			res     model.SpinResult
		)

		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			sess, err := s.spinRepo.GetSpinSession(txCtx, sessionID)
			if err != nil {
				return err
			}

			// Покупка недоступна, пока остались фриспины
			if sess.FreeSpinCount > 0 {
				return errors.New("free spins are not empty")
			}

			balance, err := s.userRepo.GetBalance(txCtx, userID)
			if err != nil {
				return err
			}

			bonusPrice := bet.Bet * s.gameCfg.BonusBuyMult
			if balance < bonusPrice {
				return model.ErrNotEnoughBalance
			}
			balance -= bonusPrice

			preset := s.statsRepo.State().PresetIndex
			cur := engine.Cursor{Seed: sess.RNGSeed, Counter: sess.RNGCounter}

			out, newCur, err := s.eng.Spin(bet, preset, cur)
			if err != nil {
				return err
			}

			if err := s.spinRepo.AdvanceCursor(txCtx, sessionID, cur.Counter, newCur.Counter); err != nil {
				return err
			}

			// Гарантия бонуски: не меньше фриспинов, чем за 3 скаттера
			if out.AwardedFreeSpins < guaranteed {
				out.AwardedFreeSpins = guaranteed
				out.FreeSpinsTriggered = true
				out.BonusTriggered = true
			}

			balance += out.TotalWin
			if err := s.userRepo.UpdateBalance(txCtx, userID, balance); err != nil {
				return err
			}

			if err := s.spinRepo.UpdateFreeSpinCount(txCtx, sessionID, out.AwardedFreeSpins); err != nil {
				return err
			}

			outcome = out
			res = model.SpinResult{
				Outcome:       out,
				Balance:       balance,
				FreeSpinCount: out.AwardedFreeSpins,
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		*dst = &res
		return outcome, nil
	}
}
