package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/recipebook/internal/config"
	"github.com/deppfellow/recipebook/internal/lib/email"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("anna@example.com", "Anna", "chef.anna")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "anna@example.com", FirstName: "Anna", Username: "chef.anna"}, p)
}

func newTestService() *JobService {
	logger := zerolog.Nop()
	cfg := config.DefaultConfig()
	return &JobService{
		logger:      &logger,
		emailClient: email.NewClient(cfg, &logger),
	}
}

func TestHandleWelcomeEmailTaskWithDeliveryDisabled(t *testing.T) {
	task, err := NewWelcomeEmailTask("anna@example.com", "Anna", "chef.anna")
	require.NoError(t, err)

	assert.NoError(t, newTestService().handleWelcomeEmailTask(context.Background(), task))
}

func TestHandleWelcomeEmailTaskSkipsRetryOnBadPayload(t *testing.T) {
	task := asynq.NewTask(TaskWelcome, []byte("{not json"))

	err := newTestService().handleWelcomeEmailTask(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestMuxRoutesWelcomeTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("anna@example.com", "Anna", "chef.anna")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, newTestService().Mux().ProcessTask(ctx, task))
}
