package queries_test

import (
	"context"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/session"

	"github.com/stretchr/testify/mock"
)

type MockSessionRepository struct {
	mock.Mock
	released int
}

func (m *MockSessionRepository) Add(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Acquire(ctx context.Context, id kernel.UUID) (*session.Session, func(), error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), func() { m.released++ }, args.Error(1)
}

func (m *MockSessionRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) IDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}
