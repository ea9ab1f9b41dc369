package mail

import (
	"context"
	"time"

	userDomain "github.com/davicafu/storefront/internal/user/domain"
	"go.uber.org/zap"
)

// LogMailer deja constancia de cada correo en el log; el mailer externo lee de ahí.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

var _ userDomain.Mailer = (*LogMailer)(nil)

func (m *LogMailer) SendWelcome(_ context.Context, name, email string) error {
	m.log.Info("Welcome mail queued", zap.String("email", email), zap.String("name", name))
	return nil
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, resetURL string, expires time.Time) error {
	m.log.Info("Password reset mail queued",
		zap.String("email", email),
		zap.String("reset_url", resetURL),
		zap.Time("expires", expires),
	)
	return nil
}
