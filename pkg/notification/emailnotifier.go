// Package notification delivers account notices over SMTP.
package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"text/template"
	"time"

	"github.com/wneessen/go-mail"
	"golang.org/x/exp/slog"
)

type SMTPConfig struct {
	Host     string
	Port     int
	TLS      bool
	Username string
	Password string
	From     string
}

// notice templates keyed by subject
var (
	accountCreatedTemplate = notice{
		subject: "Welcome to the academy platform",
		text: "Hello {{.Username}},\n\n" +
			"Your account has been created. You can now sign in with your username.\n",
	}
	passwordChangedTemplate = notice{
		subject: "Your password was changed",
		text: "Hello {{.Username}},\n\n" +
			"The password for your account was just changed. If this was not you, contact your administrator immediately.\n",
	}
)

type notice struct {
	subject string
	text    string
}

// EmailNotifier sends account notices over SMTP
type EmailNotifier struct {
	SMTPConfig SMTPConfig
	client     *mail.Client
}

// NewEmailNotifier creates a mail client for the given SMTP endpoint
func NewEmailNotifier(config SMTPConfig) (*EmailNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(config.Port),
		mail.WithTimeout(30 * time.Second),
	}

	// Only add authentication if username and password are provided
	if config.Username != "" && config.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(config.Username),
			mail.WithPassword(config.Password),
		)
	}

	if !config.TLS {
		opts = append(opts,
			mail.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}),
			mail.WithTLSPolicy(mail.NoTLS),
		)
	} else {
		opts = append(opts,
			mail.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}),
			mail.WithTLSPolicy(mail.TLSMandatory),
		)
	}

	slog.Info("Creating mail client", "Host", config.Host, "Port", config.Port)
	client, err := mail.NewClient(config.Host, opts...)
	if err != nil {
		slog.Error("Failed to create mail client", "err", err)
		return nil, err
	}

	return &EmailNotifier{SMTPConfig: config, client: client}, nil
}

// AccountCreated sends the welcome notice
func (e *EmailNotifier) AccountCreated(ctx context.Context, email, username string) error {
	return e.send(ctx, email, username, accountCreatedTemplate)
}

// PasswordChanged sends the password-changed notice
func (e *EmailNotifier) PasswordChanged(ctx context.Context, email, username string) error {
	return e.send(ctx, email, username, passwordChangedTemplate)
}

func (e *EmailNotifier) send(ctx context.Context, to, username string, n notice) error {
	if to == "" {
		return fmt.Errorf("email notice requires a recipient address")
	}

	body, err := renderNotice(n, username)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(e.SMTPConfig.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(n.subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := e.client.DialAndSendWithContext(ctx, msg); err != nil {
		slog.Error("Failed to send notice", "to", to, "subject", n.subject, "err", err)
		return err
	}
	return nil
}

func renderNotice(n notice, username string) (string, error) {
	tmpl, err := template.New("text").Parse(n.text)
	if err != nil {
		return "", err
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, struct{ Username string }{Username: username}); err != nil {
		return "", err
	}
	return body.String(), nil
}
