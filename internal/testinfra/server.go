package testinfra

import (
	"testing"
	"time"

	"github.com/deppfellow/recipebook/internal/config"
	"github.com/deppfellow/recipebook/internal/lib/auth"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const TestSecret = "an-hs256-secret-that-is-at-least-32-bytes"

// NewServer returns a container with config, a silent logger and a token
// manager, and no database, Redis or job workers.
func NewServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Auth.SecretKey = TestSecret
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.BcryptCost = 4
	cfg.RateLimit.Enabled = false

	tokens, err := auth.NewTokenManager(cfg.Auth)
	require.NoError(t, err)

	logger := zerolog.Nop()
	return &server.Server{
		Config: cfg,
		Logger: &logger,
		Tokens: tokens,
	}
}
