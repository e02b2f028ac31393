package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email письмо, собранное воркером уведомлений
type Email struct {
	To      []string
	Subject string
	Body    string
}

// Mailer доставка писем. Сама доставка — внешняя зона ответственности,
// ядру важен только контракт.
type Mailer interface {
	Send(email Email) error
}

// SMTPMailer отправляет письма через SMTP без аутентификации
// (релей поднимается рядом с сервисом)
type SMTPMailer struct {
	addr string
	from string
}

func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

func (m *SMTPMailer) Send(email Email) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from,
		strings.Join(email.To, ", "),
		email.Subject,
		email.Body,
	)

	if err := smtp.SendMail(m.addr, nil, m.from, email.To, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}

// LogMailer пишет письма в лог вместо отправки (окружения без SMTP)
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(email Email) error {
	m.logger.Info("Email (not sent, log only)",
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject),
	)
	return nil
}
