package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrent/constants"
	"roomrent/dto"
	"roomrent/errors"
	"roomrent/repositories"
	"roomrent/testutil"
)

func newAuthService(t *testing.T) (*AuthService, *TokenService) {
	tokens := NewTokenService("test-secret", time.Hour)
	svc := NewAuthService(AuthServiceOptions{
		Store:  repositories.NewStore(testutil.OpenDB(t)),
		Tokens: tokens,
	})
	return svc, tokens
}

func TestRegisterOwnerStartsPending(t *testing.T) {
	svc, tokens := newAuthService(t)

	res, err := svc.Register(context.Background(), &dto.RegisterInput{
		Email: " Owner@Example.test ", Password: "password1", Name: "Olga", Role: "owner",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.test", res.User.Email)
	assert.Equal(t, constants.RoleOwner, res.User.Role)
	require.NotNil(t, res.User.OwnerStatus)
	assert.Equal(t, constants.ApprovalPending, *res.User.OwnerStatus)

	info, err := tokens.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, info.UserId)
}

func TestRegisterRoles(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, &dto.RegisterInput{Email: "t@example.test", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleTenant, res.User.Role)
	assert.Nil(t, res.User.OwnerStatus)

	res, err = svc.Register(ctx, &dto.RegisterInput{Email: "x@example.test", Password: "password1", Role: "landlord"})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleTenant, res.User.Role)

	_, err = svc.Register(ctx, &dto.RegisterInput{Email: "a@example.test", Password: "password1", Role: "ADMIN"})
	assert.True(t, errors.Is(err, errors.ErrForbidden))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterInput{Email: "dup@example.test", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterInput{Email: "DUP@example.test", Password: "password2"})
	require.True(t, errors.HasCode(err, errors.ErrCodeUserExists))
	assert.Equal(t, "email", errors.GetAppError(err).Field)
}

func TestSignIn(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterInput{Email: "t@example.test", Password: "password1"})
	require.NoError(t, err)

	res, err := svc.SignIn(ctx, &dto.LoginInput{Email: "T@example.test", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.SignIn(ctx, &dto.LoginInput{Email: "t@example.test", Password: "wrong-pass"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPassword))

	_, err = svc.SignIn(ctx, &dto.LoginInput{Email: "nobody@example.test", Password: "password1"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
}
