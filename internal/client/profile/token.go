package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
	ErrNoOwnerClaim = errors.New("session token has no owner")
)

// Claims carried by a platform session token. OwnerID falls back to the
// standard subject claim when absent.
type Claims struct {
	jwt.RegisteredClaims
	OwnerID string `json:"owner_id,omitempty"`
}

// TokenProvider derives the owner from an HS256-signed session token. It
// identifies the owner only; it makes no access decisions.
type TokenProvider struct {
	secret []byte
	now    func() time.Time

	mu    sync.RWMutex
	token string
}

func NewTokenProvider(token string, secret []byte) *TokenProvider {
	return &TokenProvider{token: token, secret: secret, now: time.Now}
}

// Set replaces the session token; an empty value signs the owner out.
func (p *TokenProvider) Set(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
}

// Profile returns a not-ready profile with a nil error when no token is set,
// and a not-ready profile with an error when the token is unusable.
func (p *TokenProvider) Profile(context.Context) (Profile, error) {
	p.mu.RLock()
	token := p.token
	p.mu.RUnlock()

	if token == "" {
		return Profile{}, nil
	}

	ownerID, err := OwnerFromToken(token, p.secret, p.now)
	if err != nil {
		return Profile{}, err
	}
	return Profile{OwnerID: ownerID, Ready: true}, nil
}

// GenerateToken issues a session token for ownerID valid for validity.
func GenerateToken(ownerID string, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		OwnerID: ownerID,
	})

	s, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// OwnerFromToken validates tokenString and returns its owner id.
func OwnerFromToken(tokenString string, secret []byte, now func() time.Time) (string, error) {
	if now == nil {
		now = time.Now
	}
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.OwnerID != "" {
		return claims.OwnerID, nil
	}
	if claims.Subject != "" {
		return claims.Subject, nil
	}
	return "", ErrNoOwnerClaim
}
