package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNoSecret     = errors.New("no secret configured")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims lleva el id de la cuenta como en los tokens que ya emitía el frontend ({"id": ...}).
type Claims struct {
	jwt.RegisteredClaims
	ID string `json:"id"`
}

// TokenManager firma y verifica tokens HS256.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiry: expiry}
}

// Expiry es la vida de los tokens emitidos.
func (m *TokenManager) Expiry() time.Duration {
	return m.expiry
}

// Issue crea un token para la cuenta id.
func (m *TokenManager) Issue(id uuid.UUID) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrNoSecret
	}
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
		ID: id.String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify valida firma y expiración y devuelve el id de la cuenta.
func (m *TokenManager) Verify(tokenString string) (uuid.UUID, error) {
	if len(m.secret) == 0 {
		return uuid.Nil, ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
