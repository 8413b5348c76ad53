package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/triggerlab/trigger-crm/internal/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserID recupera o id da conta injetado pelo Auth. Vazio fora de rota protegida.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID injeta o id da conta no contexto (usado nos testes de handler).
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Auth exige Bearer token válido e coloca o sub no contexto da requisição.
func Auth(verifier *auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "Token de autenticação ausente")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w, "Token inválido ou expirado")
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
