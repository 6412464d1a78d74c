package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/RealZimboGuy/epochtick/pkg/epochtick/core"
)

type AuthController struct {
	// ApiKeyHash is the bcrypt hash of the admin API key. Empty leaves the
	// routes open.
	ApiKeyHash string
}

func NewAuthController(apiKeyHash string) *AuthController {
	return &AuthController{ApiKeyHash: apiKeyHash}
}

func (ac *AuthController) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ac.ApiKeyHash == "" {
			ctx := context.WithValue(r.Context(), core.CtxKeyCaller, "anonymous")
			next(w, r.WithContext(ctx))
			return
		}
		// Supported headers: X-API-Key: <key>
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(ac.ApiKeyHash), []byte(apiKey)); err != nil {
			slog.Warn("Rejected admin API key", "path", r.URL.Path, "remote", r.RemoteAddr)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), core.CtxKeyCaller, "admin")
		next(w, r.WithContext(ctx))
	}
}

func callerFrom(r *http.Request) string {
	if caller, ok := r.Context().Value(core.CtxKeyCaller).(string); ok {
		return caller
	}
	return ""
}
