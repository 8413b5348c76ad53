// Package auth valida os tokens emitidos pelo provedor de identidade.
// A emissão fica do lado do provedor; aqui só verificamos assinatura e prazo.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID é o identificador de conta usado em todas as queries.
func (c *Claims) UserID() string {
	return c.Subject
}

type TokenVerifier struct {
	secretKey []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secretKey: []byte(secret)}
}

// Verify valida assinatura HS256 e expiração e devolve os claims.
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token without subject")
	}
	return claims, nil
}
