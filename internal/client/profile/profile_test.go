package profile

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("super-secret")

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider("")
	got, err := p.Profile(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Ready)

	p.Set("u1")
	got, err = p.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Profile{OwnerID: "u1", Ready: true}, got)

	p.Set("")
	got, _ = p.Profile(context.Background())
	assert.False(t, got.Ready)
}

func TestTokenProvider_ValidToken(t *testing.T) {
	tok, err := GenerateToken("owner-1", secret, time.Hour)
	require.NoError(t, err)

	got, err := NewTokenProvider(tok, secret).Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Profile{OwnerID: "owner-1", Ready: true}, got)
}

func TestTokenProvider_NoTokenIsPlaceholder(t *testing.T) {
	got, err := NewTokenProvider("", secret).Profile(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Ready)
}

func TestTokenProvider_Set(t *testing.T) {
	p := NewTokenProvider("", secret)
	tok, err := GenerateToken("owner-2", secret, time.Hour)
	require.NoError(t, err)

	p.Set(tok)
	got, err := p.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "owner-2", got.OwnerID)
}

func TestTokenProvider_Expired(t *testing.T) {
	tok, err := GenerateToken("owner-1", secret, time.Hour)
	require.NoError(t, err)

	p := NewTokenProvider(tok, secret)
	p.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	got, err := p.Profile(context.Background())
	require.ErrorIs(t, err, ErrTokenExpired)
	assert.False(t, got.Ready)
}

func TestOwnerFromToken_Errors(t *testing.T) {
	tok, err := GenerateToken("owner-1", []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = OwnerFromToken(tok, []byte("wrong"), nil)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = OwnerFromToken("not-a-jwt", secret, nil)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestOwnerFromToken_FallsBackToSubject(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "sub-owner",
	}).SignedString(secret)
	require.NoError(t, err)

	got, err := OwnerFromToken(tok, secret, nil)
	require.NoError(t, err)
	assert.Equal(t, "sub-owner", got)
}

func TestOwnerFromToken_NoOwner(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: "platform",
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = OwnerFromToken(tok, secret, nil)
	require.ErrorIs(t, err, ErrNoOwnerClaim)
}

func TestOwnerFromToken_RejectsOtherAlgorithms(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{OwnerID: "x"}).SignedString(secret)
	require.NoError(t, err)

	_, err = OwnerFromToken(tok, secret, nil)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestProvidersAreSettable(t *testing.T) {
	var _ Settable = NewStaticProvider("")
	var _ Settable = NewTokenProvider("", nil)
}
