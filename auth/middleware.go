package auth

import (
	"net/http"
	"strings"

	"github.com/nora-sch/s-r-portfolio/apperror"
	"github.com/nora-sch/s-r-portfolio/authz"
)

// JWTMiddleware verifies the bearer token from the Authorization header,
// resolves the identity it names, and rejects tokens issued before the user's
// most recent password change. On success the requester (user id + roles) is
// added to the request context.
//
// Roles are read from the database row rather than the token, so a role
// change takes effect on the next request instead of the next login.
func JWTMiddleware(service *AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			claims, err := service.validateToken(parts[1], tokenTypeAccess)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("invalid token", err))
				return
			}
			if claims.UserID == "" {
				WriteError(w, r, apperror.NewAuthError("invalid token: user_id claim is missing", nil))
				return
			}

			ident, err := service.GetIdentity(r.Context(), claims.UserID)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			if credentialStale(ident.PasswordChangeDate, claims.IssuedAt.Time) {
				WriteError(w, r, apperror.NewExpiredCredentialError("token was issued before the last password change", nil))
				return
			}

			ctx := NewContextWithRequester(r.Context(), authz.Requester{
				UserID: ident.UserID,
				Roles:  ident.Roles,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
