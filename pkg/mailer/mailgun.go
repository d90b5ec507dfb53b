package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to string, msg Message) error
}

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain  string
	APIKey  string
	Sender  string
	Timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender, Timeout: 10 * time.Second}
}

// Configured reports whether every Mailgun credential is present.
func (m *Mailgun) Configured() bool {
	return m.Domain != "" && m.APIKey != "" && m.Sender != ""
}

// Send delivers msg via Mailgun. The HTML body is optional.
func (m *Mailgun) Send(ctx context.Context, to string, msg Message) error {
	if to == "" {
		return errors.New("mailer: empty recipient")
	}
	client := mg.NewMailgun(m.Domain, m.APIKey)
	out := client.NewMessage(m.Sender, msg.Subject, msg.Text, to)
	if msg.HTML != "" {
		out.SetHtml(msg.HTML)
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, _, err := client.Send(c, out)
	return err
}

var _ Sender = (*Mailgun)(nil)
