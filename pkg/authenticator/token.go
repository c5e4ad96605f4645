package authenticator

import (
	"errors"
	"time"

	"github.com/athlonhq/backend/config"
	"github.com/golang-jwt/jwt/v4"
)

type TokenEngine[T any] interface {
	Generate(sub string, obj T) (string, error)
	Verify(token string) (T, error)
}

type customClaims[T any] struct {
	jwt.RegisteredClaims
	Data T `json:"data"`
}

type tokenEngine[T any] struct {
	secret     string
	expiration time.Duration
}

func NewTokenEngine[T any](cfg config.AuthConfigs) TokenEngine[T] {
	return &tokenEngine[T]{
		secret:     cfg.TokenSecret,
		expiration: cfg.AccessToken.Expiration,
	}
}

func (e *tokenEngine[T]) Generate(sub string, obj T) (string, error) {
	now := time.Now()
	claims := customClaims[T]{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.expiration)),
		},
		Data: obj,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e.secret))
}

func (e *tokenEngine[T]) Verify(token string) (T, error) {
	claims := customClaims[T]{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return []byte(e.secret), nil
	})
	if err != nil {
		return claims.Data, err
	}

	if !parsed.Valid {
		return claims.Data, errors.New("invalid token")
	}

	return claims.Data, nil
}
