package mocks

import (
	"context"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOutboxRepository simula la colección outbox.
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]sharedDomain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher simula un publisher de un topic.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
