package auth

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"slot_engine/internal/config"
	"slot_engine/internal/repository"
	"slot_engine/internal/service"
)

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	spinRepo  repository.SpinSessionRepository
	jwtConfig config.JWTConfig
	log       *zap.Logger
}

func NewService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	spinRepo repository.SpinSessionRepository,
	jwtConfig config.JWTConfig,
	log *zap.Logger,
) service.AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		authRepo:  authRepo,
		spinRepo:  spinRepo,
		jwtConfig: jwtConfig,
		log:       log,
	}
}

func generateSessionID() string {
	return uuid.NewString()
}

// generateRNGSeed Криптографическое зерно для детерминированного потока спинов
func generateRNGSeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
