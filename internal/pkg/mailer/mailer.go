package mailer

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

// Message is a single outgoing e-mail
type Message struct {
	ToName      string
	ToEmail     string
	Subject     string
	TextContent string
	HTMLContent string
}

// HasRecipient reports whether the message has somewhere to go
func (m Message) HasRecipient() bool {
	return strings.TrimSpace(m.ToEmail) != ""
}

// Mailer delivers e-mail messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds mail delivery settings
type Config struct {
	SendGridAPIKey string
	FromName       string
	FromEmail      string
}

// New returns a SendGrid mailer when an API key is configured, otherwise a
// mailer that only logs what it would have sent.
func New(config Config, logger zerolog.Logger) Mailer {
	if config.SendGridAPIKey == "" {
		logger.Warn().Msg("SendGrid API key not configured - e-mails will be logged, not sent")
		return NewLogMailer(logger)
	}
	return NewSendGridMailer(config, logger)
}

// SendGridMailer sends messages through the SendGrid v3 API
type SendGridMailer struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
	logger     zerolog.Logger
}

var _ Mailer = (*SendGridMailer)(nil)

// NewSendGridMailer creates a new SendGridMailer
func NewSendGridMailer(config Config, logger zerolog.Logger) *SendGridMailer {
	return &SendGridMailer{
		key:        config.SendGridAPIKey,
		from:       sgmail.NewEmail(config.FromName, config.FromEmail),
		subjPrefix: "[" + config.FromName + "] ",
		logger:     logger,
	}
}

func (m *SendGridMailer) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = m.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	mail := sgmail.NewV3Mail()
	mail.SetFrom(m.from)
	mail.AddPersonalizations(p)
	mail.AddContent(sgmail.NewContent("text/plain", msg.TextContent))
	if msg.HTMLContent != "" {
		mail.AddContent(sgmail.NewContent("text/html", msg.HTMLContent))
	}
	return mail
}

// Send delivers msg. Messages without a recipient are skipped.
func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	if !msg.HasRecipient() {
		return nil
	}
	req := sendgrid.GetRequest(m.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email: status %d: %s", res.StatusCode, res.Body)
	}

	m.logger.Debug().Str("to", msg.ToEmail).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}

// LogMailer writes messages to the log instead of delivering them
type LogMailer struct {
	logger zerolog.Logger
}

var _ Mailer = (*LogMailer)(nil)

// NewLogMailer creates a new LogMailer
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs msg
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if !msg.HasRecipient() {
		return nil
	}
	m.logger.Info().
		Str("to", msg.ToEmail).
		Str("subject", msg.Subject).
		Str("body", msg.TextContent).
		Msg("Email not sent (no mail provider configured)")
	return nil
}
