package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"contacthub/internal/jwttoken"
	"contacthub/internal/transport/http/shared"
	dErrors "contacthub/pkg/domain-errors"
	"contacthub/pkg/requestcontext"
)

// TokenValidator validates a bearer token string and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (*jwttoken.Claims, error)
}

// RevocationChecker reports whether a token's jti has been revoked (logout).
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type contextKeyClaims struct{}

// ContextKeyClaims is exported for handler tests that build contexts directly.
var ContextKeyClaims = contextKeyClaims{}

// GetClaims retrieves the verified token claims from the context. Returns nil
// when the request did not pass RequireAuth.
func GetClaims(ctx context.Context) *jwttoken.Claims {
	claims, ok := ctx.Value(ContextKeyClaims).(*jwttoken.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireAuth authenticates the bearer credential on every request it guards.
// On success the context carries the normalized user id, the token jti, and
// the full claims; downstream code never re-parses the header. Verification
// is pure (signature + expiry); only the optional revocation check leaves the
// process.
func RequireAuth(validator TokenValidator, revocation RevocationChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				shared.WriteError(w, err)
				return
			}

			userID, err := claims.Subject()
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed subject",
					"request_id", requestcontext.RequestID(ctx),
				)
				shared.WriteError(w, err)
				return
			}

			if revocation != nil && claims.ID != "" {
				revoked, err := revocation.IsRevoked(ctx, claims.ID)
				if err != nil {
					logger.ErrorContext(ctx, "failed to check token revocation",
						"error", err,
						"request_id", requestcontext.RequestID(ctx),
					)
					shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate token"))
					return
				}
				if revoked {
					logger.WarnContext(ctx, "unauthorized access - token revoked",
						"jti", claims.ID,
						"request_id", requestcontext.RequestID(ctx),
					)
					shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "token has been revoked"))
					return
				}
			}

			ctx = requestcontext.WithUserID(ctx, userID)
			ctx = requestcontext.WithTokenID(ctx, claims.ID)
			ctx = context.WithValue(ctx, ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
