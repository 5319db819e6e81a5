package job

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

const (
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON payload of a TaskWelcome task.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// NewWelcomeEmailTask builds a welcome email task: 3 retries, default queue,
// 30s timeout.
func NewWelcomeEmailTask(to, firstName, username string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
		Username:  username,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal welcome email payload: %w", err)
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
	), nil
}
