package spin

import (
	"sync"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"

	"slot_engine/internal/config/game"
	"slot_engine/internal/engine"
	"slot_engine/internal/fsm"
	"slot_engine/internal/repository"
	"slot_engine/internal/service"
)

type serv struct {
	eng       *engine.Engine
	gameCfg   *game.Config
	userRepo  repository.UserRepository
	spinRepo  repository.SpinSessionRepository
	statsRepo repository.RTPStatsRepository
	txManager trm.Manager
	log       *zap.Logger

	mtx      sync.Mutex
	sessions map[string]*fsm.Machine
}

// NewSpinService Создать сервис спинов поверх движка и хранилищ
func NewSpinService(
	eng *engine.Engine,
	gameCfg *game.Config,
	userRepo repository.UserRepository,
	spinRepo repository.SpinSessionRepository,
	statsRepo repository.RTPStatsRepository,
	txManager trm.Manager,
	log *zap.Logger,
) service.SpinService {
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		eng:       eng,
		gameCfg:   gameCfg,
		userRepo:  userRepo,
		spinRepo:  spinRepo,
		statsRepo: statsRepo,
		txManager: txManager,
		log:       log,
		sessions:  make(map[string]*fsm.Machine),
	}
}

// session Автомат сессии, создается лениво при первом обращении
func (s *serv) session(sessionID string) *fsm.Machine {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	m, ok := s.sessions[sessionID]
	if !ok {
		m = fsm.New(s.gameCfg.FSMConfig(), s.log)
		s.sessions[sessionID] = m
	}
	return m
}
