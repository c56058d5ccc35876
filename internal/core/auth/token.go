package auth

import (
	"errors"
	"fmt"
	"time"

	"social/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTokenTTL       = 30 * time.Minute
	DefaultConfirmationTokenTTL = 24 * time.Hour
)

type Claims struct {
	jwt.RegisteredClaims
	Type domain.TokenType `json:"type,omitempty"`
}

type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// NewTokenCodec builds a codec for an HMAC algorithm (HS256, HS384, HS512).
func NewTokenCodec(secret, algorithm string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token codec: empty signing secret")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token codec: unknown algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token codec: algorithm %q is not HMAC", algorithm)
	}

	return &TokenCodec{
		secret: []byte(secret),
		method: method,
		now:    time.Now,
	}, nil
}

// Issue signs {sub, type, iat, exp}. A ttl <= 0 yields a token that is
// already expired.
func (c *TokenCodec) Issue(subject string, typ domain.TokenType, ttl time.Duration) (string, error) {
	now := c.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type: typ,
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ResolveSubjectForType checks signature, expiry, type and subject in that
// order and returns the subject.
func (c *TokenCodec) ResolveSubjectForType(token string, expected domain.TokenType) (string, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrInvalidToken
	}

	if claims.Type == "" || claims.Type != expected {
		return "", &domain.TokenTypeError{Expected: expected}
	}

	if claims.Subject == "" {
		return "", domain.ErrMissingSubject
	}

	return claims.Subject, nil
}
