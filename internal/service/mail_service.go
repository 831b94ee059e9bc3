package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-portal-service/internal/config"
	"github.com/spec-kit/admin-portal-service/internal/events"
)

// Message is an outgoing email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// MailService delivers auth-related emails. Delivery is best-effort:
// failures are logged and never surfaced to the request that triggered
// them. Without an SMTP host configured it only logs outgoing messages.
type MailService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewMailService creates the service.
func NewMailService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.MailConfig) *MailService {
	return &MailService{dispatcher: dispatcher, logger: logger, cfg: cfg}
}

// RegisterHandlers subscribes to auth events.
func (m *MailService) RegisterHandlers() {
	if m.dispatcher == nil {
		return
	}
	m.dispatcher.Subscribe(events.EventPasswordResetRequested, m.handlePasswordResetRequested)
	m.dispatcher.Subscribe(events.EventPasswordChanged, m.handlePasswordChanged)
}

func (m *MailService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	secret, _ := event.Payload["reset_secret"].(string)
	msg := Message{
		To:      event.Email,
		Subject: "Password reset",
		Text:    fmt.Sprintf("Account: %s\nReset token: %s", event.AccountID, secret),
		HTML:    fmt.Sprintf("<p>Id: %s</p><p>ResetPasswordToken: %s</p>", event.AccountID, secret),
	}
	m.SendEmail(ctx, msg)
	return nil
}

func (m *MailService) handlePasswordChanged(ctx context.Context, event events.Event) error {
	m.logger.Info("PasswordChanged", zap.String("account_id", event.AccountID))
	return nil
}

// SendEmail delivers one message, logging any failure instead of returning
// it.
func (m *MailService) SendEmail(_ context.Context, msg Message) {
	if strings.TrimSpace(m.cfg.Host) == "" {
		m.logger.Info("email delivery skipped (no smtp host)",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject))
		return
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.cfg.From, msg.To, msg.Subject, msg.HTML)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, []byte(body)); err != nil {
		m.logger.Error("email delivery failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return
	}
	m.logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
}
