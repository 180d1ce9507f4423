package notifier

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fekuna/smart-inventory/internal/logger"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier submits plain-text mail with PLAIN auth. smtp.SendMail
// upgrades to STARTTLS whenever the server offers it.
type SMTPNotifier struct {
	cfg    SMTPConfig
	send   sendFunc
	now    func() time.Time
	logger logger.ZapLogger
}

func NewSMTPNotifier(cfg SMTPConfig, log logger.ZapLogger) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:    cfg,
		send:   smtp.SendMail,
		now:    time.Now,
		logger: log,
	}
}

func (n *SMTPNotifier) Notify(ctx context.Context, subject, body, to string) {
	if to == "" {
		n.logger.Warn("alert dropped: no recipient", zap.String("subject", subject))
		return
	}
	if err := ctx.Err(); err != nil {
		n.logger.Warn("alert dropped: context done", zap.String("subject", subject), zap.Error(err))
		return
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := n.send(addr, auth, n.cfg.From, []string{to}, n.message(subject, body, to)); err != nil {
		n.logger.Error("failed to send alert email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return
	}
	n.logger.Info("alert email sent", zap.String("to", to), zap.String("subject", subject))
}

func (n *SMTPNotifier) message(subject, body, to string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(subject))
	fmt.Fprintf(&b, "Date: %s\r\n", n.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
