package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockContributorResolver is a testify mock for the ContributorResolver port
type MockContributorResolver struct {
	mock.Mock
}

// ResolveMember mocks the member existence check
func (m *MockContributorResolver) ResolveMember(ctx context.Context, churchID, memberID uuid.UUID) (bool, error) {
	args := m.Called(ctx, churchID, memberID)
	return args.Bool(0), args.Error(1)
}
