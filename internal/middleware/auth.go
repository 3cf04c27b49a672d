package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/agung037/cv-processor/internal/application/auth"
	"github.com/agung037/cv-processor/internal/domain/users"
	"github.com/agung037/cv-processor/internal/logger"
)

type contextKey string

const UserKey contextKey = "user"

// TokenCookie nama cookie sesi
const TokenCookie = "token"

// Authenticator resolves a session token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*users.User, error)
}

// TokenFromRequest reads "Authorization: Bearer <token>" first, then the
// session cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1])
		}
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// Authenticate rejects requests without a valid session and stores the
// user in the request context.
func Authenticate(a Authenticator, log *zap.Logger) func(http.Handler) http.Handler {
	log = logger.OrNop(log)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := a.Authenticate(r.Context(), TokenFromRequest(r))
			if err != nil {
				status, msg := authFailure(err)
				if status == http.StatusInternalServerError {
					log.Error("authentication error", zap.Error(err))
				}
				WriteError(w, status, msg)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrTokenMissing):
		return http.StatusUnauthorized, "Akses ditolak. Token tidak ditemukan."
	case errors.Is(err, auth.ErrUserGone):
		return http.StatusUnauthorized, "Pengguna tidak ditemukan."
	case errors.Is(err, users.ErrUnauthorized):
		return http.StatusUnauthorized, "Token tidak valid atau kedaluwarsa."
	case errors.Is(err, users.ErrInactive):
		return http.StatusForbidden, "Akun belum diaktifkan oleh admin."
	default:
		return http.StatusInternalServerError, "Terjadi kesalahan autentikasi."
	}
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...users.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Autentikasi diperlukan.")
				return
			}
			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, http.StatusForbidden, "Anda tidak memiliki izin untuk mengakses sumber daya ini.")
		})
	}
}

func WithUser(ctx context.Context, u *users.User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}

// UserFromContext extracts the authenticated user from context
func UserFromContext(ctx context.Context) (*users.User, bool) {
	u, ok := ctx.Value(UserKey).(*users.User)
	return u, ok && u != nil
}

// WriteError tulis {"error": msg}
func WriteError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
