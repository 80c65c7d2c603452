package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/morada-homes/service-reservation/internal/auth"
	"github.com/morada-homes/service-reservation/internal/domain"
)

func newUserService(t *testing.T) (*UserService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewUserService(repo, jwtManager, zap.NewNop()), repo
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, _ := newUserService(t)

	dto, err := svc.Register(context.Background(), RegisterUserRequest{
		Name:     "Ana Souza",
		Email:    "Ana@Example.com",
		Role:     "guest",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", dto.Email, "emails are normalized to lowercase")

	token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, dto.ID, token.User.ID)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)

	req := RegisterUserRequest{Name: "Ana", Email: "ana@example.com", Role: "guest", Password: "s3cret-pass"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Register(context.Background(), RegisterUserRequest{
		Name: "Ana", Email: "ana@example.com", Role: "guest", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestUserService_GetUserNotFound(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.GetUser(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
