package service

import (
	"testing"

	"vidtube/internal/api/dto"
	"vidtube/internal/config"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	config.Set(&config.Config{
		App: config.AppConfig{Name: "vidtube-test"},
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	})
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	setTestConfig(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	info, err := svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@test.dev",
		FullName: "Alice",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)

	// 用户名或邮箱重复注册被拒绝
	_, err = svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "other@test.dev",
		FullName: "Alice Again",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	data, err := svc.Login(&dto.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, info.ID, data.User.ID)

	_, err = svc.Login(&dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
