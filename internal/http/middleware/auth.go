package middleware

import (
	"context"
	"net/http"
	"strings"

	"hirepulse/internal/app"
	"hirepulse/internal/common"
	"hirepulse/internal/domain/user"
	"hirepulse/internal/http/response"
	"hirepulse/internal/security"
)

type contextKey string

const contextPrincipalKey contextKey = "principal"

type AuthMiddleware struct {
	tokens *security.TokenProvider
	auth   *app.AuthService
}

func NewAuthMiddleware(tokens *security.TokenProvider, auth *app.AuthService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, auth: auth}
}

// Authenticate verifies the bearer token and resolves it to a live account.
// Deactivated and deleted accounts are rejected here even if their token has
// not expired yet.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil))
			return
		}
		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", err))
			return
		}
		principal, err := m.auth.CurrentUser(r.Context(), claims)
		if err != nil {
			response.Error(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), contextPrincipalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				response.Error(w, common.NewError(common.CodeUnauthorized, "not authenticated", nil))
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
		})
	}
}

func PrincipalFromContext(ctx context.Context) (*user.User, bool) {
	principal, ok := ctx.Value(contextPrincipalKey).(*user.User)
	return principal, ok
}
