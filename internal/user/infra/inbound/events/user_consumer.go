package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/storefront/internal/shared/domain/events"
	sharedUtils "github.com/davicafu/storefront/internal/shared/infra/utils"
	userDomain "github.com/davicafu/storefront/internal/user/domain"
)

const mailTimeout = 2 * time.Second

// UserConsumer reparte los eventos de cuentas al mailer.
type UserConsumer struct {
	mailer userDomain.Mailer
	log    *zap.Logger
}

func NewUserConsumer(mailer userDomain.Mailer, logger *zap.Logger) *UserConsumer {
	return &UserConsumer{mailer: mailer, log: logger}
}

func (c *UserConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case userDomain.UserRegistered:
		sharedUtils.UnmarshalAndHandle[sharedEvents.UserRegistered](c.log, base.Data, func(evt sharedEvents.UserRegistered) {
			c.send(ctx, base.Type, evt.Email, func(ctxMail context.Context) error {
				return c.mailer.SendWelcome(ctxMail, evt.Name, evt.Email)
			})
		})

	case userDomain.PasswordResetRequested:
		sharedUtils.UnmarshalAndHandle[sharedEvents.PasswordResetRequested](c.log, base.Data, func(evt sharedEvents.PasswordResetRequested) {
			if !evt.Expires.After(time.Now()) {
				c.log.Info("Expired password reset skipped", zap.String("email", evt.Email))
				return
			}
			c.send(ctx, base.Type, evt.Email, func(ctxMail context.Context) error {
				return c.mailer.SendPasswordReset(ctxMail, evt.Email, evt.ResetURL, evt.Expires)
			})
		})

	default:
		c.log.Warn("Unknown user event type", zap.String("type", base.Type), zap.String("key", key))
	}
}

func (c *UserConsumer) send(ctx context.Context, eventType, email string, fn func(context.Context) error) {
	ctxMail, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()

	if err := fn(ctxMail); err != nil {
		c.log.Warn("Failed to send account mail",
			zap.String("type", eventType),
			zap.String("email", email),
			zap.Error(err),
		)
	}
}
