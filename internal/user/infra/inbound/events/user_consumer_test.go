package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/storefront/internal/shared/domain/events"
	userDomain "github.com/davicafu/storefront/internal/user/domain"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWelcome(ctx context.Context, name, email string) error {
	return m.Called(ctx, name, email).Error(0)
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, email, resetURL string, expires time.Time) error {
	return m.Called(ctx, email, resetURL, expires).Error(0)
}

func message(t *testing.T, eventType string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	payload, err := json.Marshal(sharedEvents.IntegrationEvent{Type: eventType, Timestamp: time.Now().UTC(), Data: raw})
	require.NoError(t, err)
	return payload
}

func TestUserConsumer_RegisteredSendsWelcome(t *testing.T) {
	// Arrange
	mailer := new(mockMailer)
	mailer.On("SendWelcome", mock.Anything, "Ana", "ana@example.com").Return(nil).Once()
	consumer := NewUserConsumer(mailer, zap.NewNop())
	payload := message(t, userDomain.UserRegistered, sharedEvents.UserRegistered{
		ID: uuid.New(), Name: "Ana", Email: "ana@example.com", CreatedAt: time.Now().UTC(),
	})

	// Act
	consumer.HandleMessage(context.Background(), "k", payload)

	// Assert
	mailer.AssertExpectations(t)
}

func TestUserConsumer_ResetSendsLink(t *testing.T) {
	// Arrange
	mailer := new(mockMailer)
	expires := time.Now().UTC().Add(30 * time.Minute).Truncate(time.Second)
	mailer.On("SendPasswordReset", mock.Anything, "ana@example.com", "http://localhost:4000/reset/abc", mock.MatchedBy(func(got time.Time) bool {
		return got.Equal(expires)
	})).Return(nil).Once()
	consumer := NewUserConsumer(mailer, zap.NewNop())
	payload := message(t, userDomain.PasswordResetRequested, sharedEvents.PasswordResetRequested{
		ID: uuid.New(), Email: "ana@example.com", ResetURL: "http://localhost:4000/reset/abc", Expires: expires,
	})

	// Act
	consumer.HandleMessage(context.Background(), "k", payload)

	// Assert
	mailer.AssertExpectations(t)
}

func TestUserConsumer_ExpiredResetIsSkipped(t *testing.T) {
	mailer := new(mockMailer)
	consumer := NewUserConsumer(mailer, zap.NewNop())
	payload := message(t, userDomain.PasswordResetRequested, sharedEvents.PasswordResetRequested{
		ID: uuid.New(), Email: "ana@example.com", ResetURL: "x", Expires: time.Now().Add(-time.Minute),
	})

	consumer.HandleMessage(context.Background(), "k", payload)

	mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserConsumer_MailerErrorAndBadPayloadDoNotPanic(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("SendWelcome", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	consumer := NewUserConsumer(mailer, zap.NewNop())

	assert.NotPanics(t, func() {
		consumer.HandleMessage(context.Background(), "k", []byte("not json"))
		consumer.HandleMessage(context.Background(), "k", message(t, "user.unknown", map[string]string{}))
		consumer.HandleMessage(context.Background(), "k", message(t, userDomain.UserRegistered, sharedEvents.UserRegistered{Email: "a@b.c"}))
	})
	mailer.AssertNumberOfCalls(t, "SendWelcome", 1)
}
