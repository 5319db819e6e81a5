// Package email sends transactional email through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary. Calls to
// the Resend API go through a circuit breaker so an outage fails fast
// instead of tying up job workers.
package email

import (
	"bytes"
	"context"
	"time"

	"github.com/deppfellow/recipebook/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

const breakerFailureThreshold = 5

// sender is the part of the Resend emails service the client uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client with templating and a circuit breaker.
type Client struct {
	sender  sender
	from    string
	breaker *gobreaker.CircuitBreaker[*resend.SendEmailResponse]
	logger  *zerolog.Logger
}

// NewClient creates an email Client. Without a Resend API key the client
// renders but does not deliver.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	var s sender
	if cfg.Integration.ResendAPIKey != "" {
		s = resend.NewClient(cfg.Integration.ResendAPIKey).Emails
	}
	return newClient(s, cfg.Integration.EmailFrom, logger)
}

func newClient(s sender, from string, logger *zerolog.Logger) *Client {
	c := &Client{
		sender: s,
		from:   from,
		logger: logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*resend.SendEmailResponse](gobreaker.Settings{
		Name:        "resend",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("email circuit breaker state changed")
		},
	})

	return c
}

// Enabled reports whether emails are actually delivered.
func (c *Client) Enabled() bool {
	return c.sender != nil
}

// Render executes the named template with data.
func (c *Client) Render(templateName Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName.file(), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and delivers it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string) error {
	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	if !c.Enabled() {
		c.logger.Info().
			Str("template", string(templateName)).
			Str("to", to).
			Msg("email delivery disabled, skipping send")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	_, err = c.breaker.Execute(func() (*resend.SendEmailResponse, error) {
		return c.sender.SendWithContext(ctx, params)
	})
	if err != nil {
		return errors.Wrapf(err, "failed to send %s email", templateName)
	}

	return nil
}
