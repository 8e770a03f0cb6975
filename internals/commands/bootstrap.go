package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"mindsprint_backend/internals/configs"
	database "mindsprint_backend/internals/databases"
	"mindsprint_backend/internals/identity"
)

// runtime is the process wiring shared by the subcommands.
type runtime struct {
	cfg     *configs.Config
	log     *logrus.Logger
	backend database.Backend
}

func loadConfig() (*configs.Config, *logrus.Logger, error) {
	configs.LoadEnv()
	cfg, err := configs.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, configs.NewLogger(cfg.Logger), nil
}

func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	backend, err := database.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, log: log, backend: backend}, nil
}

func (r *runtime) close(ctx context.Context) {
	if err := r.backend.Close(ctx); err != nil {
		r.log.WithError(err).Warn("closing store")
	}
}

func newProvider(cfg configs.Auth) (identity.Provider, error) {
	switch cfg.Provider {
	case configs.ProviderGoogle:
		return identity.NewGoogleProvider(cfg.GoogleClientID, cfg.TherapistEmails)
	case configs.ProviderJWT:
		return identity.NewJWTProvider(cfg.JWTSecret, identity.WithClockSkew(cfg.JWTClockSkew))
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}
