package middleware

import (
	"net/http"
	"strings"

	"blueline/reservehub/internal/auth"
	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
)

const sessionCookieName = "reservehub_session"

// AuthMiddleware resolves the request principal from either a session cookie
// or a provider-issued Bearer token. Role always comes from the user row, so
// an admin demotion takes effect on the next request.
func AuthMiddleware(
	userRepo *repositories.UserRepositoryGORM,
	sessions *common.SessionService,
	providerSecret []byte,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			cookie, cookieErr := r.Cookie(sessionCookieName)

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				tokenString := strings.TrimPrefix(authHeader, "Bearer ")

				identity, err := auth.ParseProviderToken(providerSecret, tokenString)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}

				user, err := userRepo.FindOrCreateByEmail(r.Context(), identity.Email, identity.Name)
				if err != nil {
					http.Error(w, "Unauthorized. User lookup failed", http.StatusUnauthorized)
					return
				}

				if user.Status != constants.UserActive {
					http.Error(w, "Unauthorized. Account inactive", http.StatusForbidden)
					return
				}

				claims = &auth.BearerClaims{
					UserIDValue: user.ID,
					EmailValue:  user.Email,
					NameValue:   user.Name,
					RoleValue:   user.Role,
				}

			case cookieErr == nil && cookie.Value != "":
				session, err := sessions.GetSession(r.Context(), cookie.Value)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid session", http.StatusUnauthorized)
					return
				}

				user, err := userRepo.GetByID(r.Context(), session.UserID)
				if err != nil {
					http.Error(w, "Unauthorized. User lookup failed", http.StatusUnauthorized)
					return
				}

				if user.Status != constants.UserActive {
					http.Error(w, "Unauthorized. Account inactive", http.StatusForbidden)
					return
				}

				claims = &auth.SessionClaims{
					UserIDValue: user.ID,
					EmailValue:  user.Email,
					NameValue:   user.Name,
					RoleValue:   user.Role,
				}

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
