package email

import "context"

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, firstName, username string) error {
	if firstName == "" {
		firstName = username
	}

	data := map[string]string{
		"UserFirstName": firstName,
		"Username":      username,
	}

	return c.SendEmail(ctx, to, "Welcome to Recipebook!", TemplateWelcome, data)
}
