package token

import (
	"testing"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestPasetoMaker(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	token, payload, err := maker.CreateToken(7, model.RoleAdmin, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := maker.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, payload.ID, got.ID)
	require.Equal(t, int64(7), got.UserID)
	require.Equal(t, model.RoleAdmin, got.Role)
	require.WithinDuration(t, payload.ExpiredAt, got.ExpiredAt, time.Second)
}

func TestExpiredToken(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	token, _, err := maker.CreateToken(7, model.RoleCustomer, -time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestInvalidToken(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	_, err = maker.VerifyToken("v2.local.garbage")
	require.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewPasetoMaker("abcdef0123456789abcdef0123456789")
	require.NoError(t, err)
	token, _, err := other.CreateToken(7, model.RoleCustomer, time.Minute)
	require.NoError(t, err)
	_, err = maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestInvalidRole(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	token, _, err := maker.CreateToken(7, model.Role("root"), time.Minute)
	require.NoError(t, err)
	_, err = maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestInvalidKeySize(t *testing.T) {
	_, err := NewPasetoMaker("short")
	require.Error(t, err)
}
