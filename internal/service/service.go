package service

import (
	"context"

	"slot_engine/internal/model"
)

type SpinService interface {
	Spin(ctx context.Context, bet model.BetContext) (*model.SpinResult, error)
	BuyBonus(ctx context.Context, bet int64) (*model.SpinResult, error)
	SlamStopAll(ctx context.Context) error
	SlamStopReel(ctx context.Context, reel int) error
	Events(ctx context.Context) (<-chan model.SpinEvent, error)
	CheckData(ctx context.Context) (*model.Data, error)
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
