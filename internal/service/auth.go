package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/recipebook/internal/errs"
	"github.com/deppfellow/recipebook/internal/lib/auth"
	"github.com/deppfellow/recipebook/internal/lib/job"
	"github.com/deppfellow/recipebook/internal/lib/metrics"
	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const invalidCredentialsMessage = "Unable to log in with provided credentials."

// AuthService registers users and exchanges credentials for bearer tokens.
type AuthService struct {
	users      UserStore
	tokens     *auth.TokenManager
	enqueuer   TaskEnqueuer
	bcryptCost int
}

func NewAuthService(s *server.Server, users UserStore, enqueuer TaskEnqueuer) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     s.Tokens,
		enqueuer:   enqueuer,
		bcryptCost: s.Config.Auth.BcryptCost,
	}
}

// Register creates the account and queues a welcome email when the user
// gave an address. Queueing failures are logged, never returned.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &model.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	metrics.UserRegistrationsTotal.Inc()
	zerolog.Ctx(ctx).Info().
		Str("event", "user_registered").
		Int64("user_id", user.ID).
		Msg("user registered")

	if user.Email != "" {
		s.enqueueWelcomeEmail(ctx, user)
	}

	return user, nil
}

func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, user *model.User) {
	if s.enqueuer == nil {
		return
	}

	logger := zerolog.Ctx(ctx)

	task, err := job.NewWelcomeEmailTask(user.Email, user.FirstName, user.Username)
	if err == nil {
		_, err = s.enqueuer.EnqueueContext(ctx, task)
	}
	metrics.RecordJobEnqueued(job.TaskWelcome, err)

	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to enqueue welcome email")
		return
	}
	logger.Debug().Int64("user_id", user.ID).Msg("welcome email enqueued")
}

// Login checks the credentials and issues a token. Unknown users and wrong
// passwords get the same 400.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash := ""
	if user != nil {
		hash = user.PasswordHash
	}
	if !auth.CheckPassword(hash, req.Password) {
		return nil, errs.NewBadRequestError(invalidCredentialsMessage, true, nil, nil, nil)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token for user id=%d: %w", user.ID, err)
	}

	return &model.TokenResponse{Token: token}, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
