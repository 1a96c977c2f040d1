package services

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, idToken, audience string) (*GoogleClaims, error) {
	args := m.Called(ctx, idToken, audience)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GoogleClaims), args.Error(1)
}
