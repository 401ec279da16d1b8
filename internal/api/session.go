package api

import (
	"net/http"
	"strings"
	"time"

	"blueline/reservehub/internal/auth"
	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/db/repositories"
)

const sessionCookieName = "reservehub_session"

// LoginHandler handles POST /api/v1/session
// Exchanges a provider-issued Bearer token for a session cookie. First login
// creates the user row as a guest pending admin approval.
func LoginHandler(userRepo *repositories.UserRepositoryGORM, sessions *common.SessionService, providerSecret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			common.RespondError(w, initTime, nil, "Missing Bearer token", http.StatusUnauthorized)
			return
		}

		identity, err := auth.ParseProviderToken(providerSecret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid token", http.StatusUnauthorized)
			return
		}

		user, err := userRepo.FindOrCreateByEmail(r.Context(), identity.Email, identity.Name)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to resolve user", http.StatusInternalServerError)
			return
		}

		sessionID, err := sessions.CreateSession(r.Context(), user.ID, user.Email, user.Name, user.Role, user.Position)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create session", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   7 * 24 * 60 * 60,
		})

		common.RespondSuccess(w, initTime, "Logged in", toUserResponse(user))
	}
}

// LogoutHandler handles DELETE /api/v1/session
func LogoutHandler(sessions *common.SessionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			_ = sessions.DeleteSession(r.Context(), cookie.Value)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})

		common.RespondSuccess(w, initTime, "Logged out", nil)
	}
}
