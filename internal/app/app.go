package app

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"slot_engine/internal/config"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	s.initServiceProvider()

	log := s.ServiceProvider.Logger()
	defer log.Sync() //nolint:errcheck

	err := config.Load(".env")
	if err != nil {
		log.Warn("loading .env file", zap.Error(err))
	}

	ctx := context.Background()
	r := s.ServiceProvider.Router(ctx)

	log.Info("starting server", zap.String("address", s.ServiceProvider.HTTPCfg().Address()))
	return http.ListenAndServe(s.ServiceProvider.HTTPCfg().Address(), r)
}
