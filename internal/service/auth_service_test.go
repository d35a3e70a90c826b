package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibeshot/gallery-admin/config"
)

func TestAuthServicePlainPassword(t *testing.T) {
	svc := NewAuthService(config.AdminConfig{Password: "s3cret", JWTSecret: "jwt-key"})

	token, err := svc.Login("s3cret")
	require.NoError(t, err)
	assert.NoError(t, svc.Verify(token))

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthServiceBcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService(config.AdminConfig{Password: string(hash), JWTSecret: "jwt-key"})

	token, err := svc.Login("s3cret")
	require.NoError(t, err)
	assert.NoError(t, svc.Verify(token))

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthServiceRejectsForeignToken(t *testing.T) {
	svc := NewAuthService(config.AdminConfig{Password: "p", JWTSecret: "key-a"})
	other := NewAuthService(config.AdminConfig{Password: "p", JWTSecret: "key-b"})

	token, err := other.Login("p")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Verify(token), ErrInvalidToken)
	assert.ErrorIs(t, svc.Verify("not-a-jwt"), ErrInvalidToken)
}

func TestAuthServiceEmptyPasswordNeverLogsIn(t *testing.T) {
	svc := NewAuthService(config.AdminConfig{JWTSecret: "jwt-key"})
	_, err := svc.Login("")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}
