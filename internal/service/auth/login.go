package auth

import (
	"context"
	"errors"
	"time"

	"slot_engine/internal/model"
	"slot_engine/pkg/pass"
	"slot_engine/pkg/token"
)

func (s *serv) Login(ctx context.Context, login, password string) (*model.AuthData, error) {
	// Получение пользователя из бд по логину
	user, err := s.userRepo.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	// Верификация пароля
	if !pass.VerifyPassword(user.Password, password) {
		return nil, errors.New("invalid password")
	}

	// Генерация sessionID
	sessionID := generateSessionID()

	// Генерация refresh токена
	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	// Сессия аутентификации и игровая сессия создаются вместе
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		err := s.authRepo.CreateSession(txCtx,
			&model.Session{
				ID:           sessionID,
				UserID:       user.ID,
				RefreshToken: token.HashRefreshToken(refreshToken),
				ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenDuration()),
			})
		if err != nil {
			return err
		}

		seed, err := generateRNGSeed()
		if err != nil {
			return err
		}
		return s.spinRepo.CreateSpinSession(txCtx,
			&model.SpinSession{
				ID:      sessionID,
				UserID:  user.ID,
				RNGSeed: seed,
			})
	})
	if err != nil {
		return nil, err
	}

	// Создать access токен
	accessToken, err := token.GenerateAccessToken(
		user,
		sessionID,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}, nil
}
