// Package email implements the mail gateway over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/ndzhokv/userd/internal/model"
)

// Internal adapter interface to enable mocking without a real SMTP server.
type mailClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

var _ model.EmailGateway = (*Gateway)(nil)

// Gateway sends activation and password reset mail. Delivery is synchronous:
// provisioning workflows block on the dispatch and treat any failure as fatal
// to the current attempt.
type Gateway struct {
	client  mailClient
	from    string
	baseURL string
}

// NewGateway builds a gateway over an SMTP client.
func NewGateway(host string, port int, username, password, from, baseURL string) (*Gateway, error) {
	opts := []mail.Option{mail.WithPort(port)}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return NewGatewayWithClient(client, from, baseURL), nil
}

// NewGatewayWithClient allows injecting a mockable client (used in tests).
func NewGatewayWithClient(client mailClient, from, baseURL string) *Gateway {
	return &Gateway{
		client:  client,
		from:    from,
		baseURL: baseURL,
	}
}

func (g *Gateway) SendActivation(ctx context.Context, email, token string) error {
	body := fmt.Sprintf(
		"Please click the link below to activate your account:\n\n%s/#/login?token=%s\n",
		g.baseURL, token,
	)
	return g.send(ctx, email, "Account Activation", body)
}

func (g *Gateway) SendPasswordReset(ctx context.Context, email, token string) error {
	body := fmt.Sprintf(
		"Please click the link below to reset your password:\n\n%s/#/password-reset?reset=%s\n",
		g.baseURL, token,
	)
	return g.send(ctx, email, "Password Reset", body)
}

func (g *Gateway) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(g.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := g.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
