//go:build !production

package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/super-rummy/internal/server/storage"
)

// MockStore 大厅存储 mock
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ReserveCode(ctx context.Context, code string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, code, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) RefreshCode(ctx context.Context, code string, ttl time.Duration) error {
	args := m.Called(ctx, code, ttl)
	return args.Error(0)
}

func (m *MockStore) ReleaseCode(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockStore) SaveLobby(ctx context.Context, data *storage.LobbyData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockStore) DeleteLobby(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockStore) SaveResult(ctx context.Context, data *storage.ResultData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
