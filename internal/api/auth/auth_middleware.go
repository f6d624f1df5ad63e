package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

type contextKey string

const authResultKey contextKey = "authResult"

// AuthState is the explicit outcome of the request gate. The fail-open
// behavior is a visible branch, not an exception side effect: a malformed
// or stale token degrades the request to anonymous and the authorization
// layer decides what that means for the route.
type AuthState int

const (
	// StateAnonymous: no bearer token was presented.
	StateAnonymous AuthState = iota
	// StateAuthenticated: a token was presented, validated and resolved
	// to a live user.
	StateAuthenticated
	// StateMalformed: a token was presented but failed validation or
	// user resolution; it is ignored.
	StateMalformed
)

// AuthResult is the request-scoped security context populated once by
// Authenticate and passed down explicitly via the request context.
type AuthResult struct {
	State AuthState
	User  *types.User
	Role  types.Role
}

// Authenticate is the request gate. It runs once per request, before any
// authorization decision:
//
//  1. Requests under a public prefix are passed through untouched.
//  2. A missing or non-Bearer Authorization header is not an error; the
//     request continues as anonymous.
//  3. Otherwise the token is validated, the subject's user record loaded
//     and re-checked, and the identity attached to the request context.
//  4. Any failure along the way is logged and the request continues as
//     anonymous with the malformed marker. The gate never writes a
//     response and always calls next exactly once.
func Authenticate(repo AuthRepo, tokens *TokenIssuer, publicPrefixes []string, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			for _, prefix := range publicPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			result := resolveIdentity(ctx, r, repo, tokens, l)
			ctx = context.WithValue(ctx, authResultKey, result)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveIdentity(ctx context.Context, r *http.Request, repo AuthRepo, tokens *TokenIssuer, l *slog.Logger) AuthResult {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return AuthResult{State: StateAnonymous}
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		return AuthResult{State: StateAnonymous}
	}
	tokenString := headerParts[1]

	claims, err := tokens.ParseAccessToken(tokenString)
	if err != nil {
		l.WarnContext(ctx, "Token parsing/validation failed", slog.Any("error", err))
		return AuthResult{State: StateMalformed}
	}

	user, err := repo.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		l.WarnContext(ctx, "Token subject could not be resolved",
			slog.String("subject", claims.Subject), slog.Any("error", err))
		return AuthResult{State: StateMalformed}
	}

	// Re-check the claims against the loaded identity: the subject must
	// still exist and be active, and the encoded role is the authority
	// granted to this request.
	if claims.Subject != user.Username || !user.Active {
		l.WarnContext(ctx, "Token subject mismatch or inactive account",
			slog.String("username", user.Username))
		return AuthResult{State: StateMalformed}
	}

	role, err := types.ParseRole(tokens.ExtractRole(tokenString))
	if err != nil {
		l.WarnContext(ctx, "Token carries unknown role", slog.Any("error", err))
		return AuthResult{State: StateMalformed}
	}

	return AuthResult{State: StateAuthenticated, User: user, Role: role}
}

// ResultFromContext returns the gate outcome for this request. Requests
// that skipped the gate (public prefixes) read as anonymous.
func ResultFromContext(ctx context.Context) AuthResult {
	result, ok := ctx.Value(authResultKey).(AuthResult)
	if !ok {
		return AuthResult{State: StateAnonymous}
	}
	return result
}

// IdentityFromContext returns the authenticated user, if any.
func IdentityFromContext(ctx context.Context) (*types.User, bool) {
	result := ResultFromContext(ctx)
	if result.State != StateAuthenticated {
		return nil, false
	}
	return result.User, true
}

// RoleFromContext returns the role granted to this request, if any.
func RoleFromContext(ctx context.Context) (types.Role, bool) {
	result := ResultFromContext(ctx)
	if result.State != StateAuthenticated {
		return "", false
	}
	return result.Role, true
}

// RequireAuth rejects requests that carry no authenticated identity.
// Runs AFTER Authenticate.
func RequireAuth(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := ResultFromContext(r.Context())
			if result.State != StateAuthenticated {
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests whose identity does not hold one of the
// allowed roles. Runs AFTER Authenticate.
func RequireRole(logger *slog.Logger, allowed ...types.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := ResultFromContext(r.Context())
			if result.State != StateAuthenticated {
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			for _, role := range allowed {
				if result.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.WarnContext(r.Context(), "Role check failed",
				slog.String("username", result.User.Username),
				slog.String("role", result.Role.String()),
				slog.String("path", r.URL.Path),
			)
			api.ErrorResponse(w, r, http.StatusForbidden, "Access denied for your role")
			return
		})
	}
}
