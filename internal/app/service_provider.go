package app

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	authAPI "slot_engine/internal/api/auth"
	spinAPI "slot_engine/internal/api/spin"
	"slot_engine/internal/config"
	"slot_engine/internal/config/env"
	"slot_engine/internal/config/game"
	"slot_engine/internal/engine"
	"slot_engine/internal/middleware"
	"slot_engine/internal/repository"
	"slot_engine/internal/repository/auth_repo"
	"slot_engine/internal/repository/rtp_stats_repo"
	"slot_engine/internal/repository/spin_session_repo"
	"slot_engine/internal/repository/user_repo"
	"slot_engine/internal/service"
	authServ "slot_engine/internal/service/auth"
	spinServ "slot_engine/internal/service/spin"
)

type ServiceProvider struct {
	// Логгер
	logger *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Игровая конфигурация и движок
	gameCfg *game.Config
	eng     *engine.Engine

	// Auth bits
	jwtCfg   config.JWTConfig
	authRepo repository.AuthRepository
	authSrv  service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo repository.UserRepository

	// Spin bits
	spinRepo  repository.SpinSessionRepository
	statsRepo repository.RTPStatsRepository
	spinSrv   service.SpinService
	spinHand  *spinAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		log, err := zap.NewProduction()
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = log
	}
	return sp.logger
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) GameCfg() *game.Config {
	if sp.gameCfg == nil {
		cfg, err := game.Load("config.yaml")
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) Engine() *engine.Engine {
	if sp.eng == nil {
		eng, err := sp.GameCfg().BuildEngine()
		if err != nil {
			panic("failed to build engine: " + err.Error())
		}
		sp.eng = eng
	}
	return sp.eng
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) SpinSessionRepo(ctx context.Context) repository.SpinSessionRepository {
	if sp.spinRepo == nil {
		sp.spinRepo = spin_session_repo.NewSpinSessionRepository(sp.DBClient(ctx))
	}
	return sp.spinRepo
}

func (sp *ServiceProvider) RTPStatsRepo() repository.RTPStatsRepository {
	if sp.statsRepo == nil {
		cfg := sp.GameCfg()
		sp.statsRepo = rtp_stats_repo.NewRTPStatsRepository(
			cfg.TargetRTP,
			len(cfg.Presets),
			cfg.DefaultPreset,
			sp.Logger(),
		)
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authSrv == nil {
		sp.authSrv = authServ.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.SpinSessionRepo(ctx),
			sp.JWTCfg(),
			sp.Logger(),
		)
	}
	return sp.authSrv
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv: sp.AuthService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) SpinService(ctx context.Context) service.SpinService {
	if sp.spinSrv == nil {
		sp.spinSrv = spinServ.NewSpinService(
			sp.Engine(),
			sp.GameCfg(),
			sp.UserRepo(ctx),
			sp.SpinSessionRepo(ctx),
			sp.RTPStatsRepo(),
			sp.TXManager(ctx),
			sp.Logger(),
		)
	}
	return sp.spinSrv
}

func (sp *ServiceProvider) SpinHandler(ctx context.Context) *spinAPI.Handler {
	if sp.spinHand == nil {
		sp.spinHand = spinAPI.NewHandler(spinAPI.HandlerDeps{
			Serv: sp.SpinService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.spinHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		// Spin endpoints, за JWT аутентификацией
		spinHandler := sp.SpinHandler(ctx)
		r.Route("/spin", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg()))
			rr.Post("/", spinHandler.Spin)
			rr.Post("/buy-bonus", spinHandler.BuyBonus)
			rr.Post("/slam-stop", spinHandler.SlamStop)
			rr.Get("/events", spinHandler.Events)
			rr.Get("/check-data", spinHandler.CheckData)
		})

		sp.router = r
	}

	return sp.router
}
