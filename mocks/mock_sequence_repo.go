package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSequenceRepo is a mock implementation of port.SequenceRepository.
type MockSequenceRepo struct {
	mock.Mock
}

func (m *MockSequenceRepo) Next(ctx context.Context, ownerID uuid.UUID, year int) (int, error) {
	args := m.Called(ctx, ownerID, year)
	return args.Int(0), args.Error(1)
}

func (m *MockSequenceRepo) Current(ctx context.Context, ownerID uuid.UUID, year int) (int, error) {
	args := m.Called(ctx, ownerID, year)
	return args.Int(0), args.Error(1)
}
