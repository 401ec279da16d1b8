package middleware

import (
	"net/http"

	"blueline/reservehub/internal/auth"
	"blueline/reservehub/internal/constants"
)

// IsMemberMiddleware gates routes to approved members. Admins pass too;
// guests wait until an admin promotes them.
func IsMemberMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims == nil {
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			role := claims.Role()
			if role != constants.RoleMember.String() && role != constants.RoleAdmin.String() {
				http.Error(w, "Unauthorized. Membership pending approval", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
