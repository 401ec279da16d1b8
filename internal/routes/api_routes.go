package routes

import (
	"github.com/go-chi/chi/v5"

	"blueline/reservehub/internal/api"
	"blueline/reservehub/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, providerSecret []byte) {

	svcs := deps.Services
	repos := deps.Repo

	r.Route("/api/v1", func(v1 chi.Router) {

		// Public: token exchange and signed file downloads
		v1.Post("/session", api.LoginHandler(repos.User, svcs.Sessions, providerSecret))
		v1.Delete("/session", api.LogoutHandler(svcs.Sessions))
		v1.Get("/files", api.FileDownloadHandler(svcs.Storage))

		// Authenticated routes
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(repos.User, svcs.Sessions, providerSecret))

			// Any authenticated user (guests included) can see and edit
			// their own profile and notifications
			authed.Get("/users/me", api.GetMeHandler(svcs.User))
			authed.Put("/users/me", api.UpdateMeHandler(svcs.User))
			authed.Post("/users/me/resume", api.UploadResumeHandler(svcs.User, svcs.Storage))

			authed.Get("/notifications", api.ListNotificationsHandler(svcs.Notifications))
			authed.Get("/notifications/unread-count", api.UnreadCountHandler(svcs.Notifications))
			authed.Post("/notifications/{id}/read", api.MarkNotificationReadHandler(svcs.Notifications))
			authed.Post("/notifications/read-all", api.MarkAllNotificationsReadHandler(svcs.Notifications))

			// Member-or-admin group
			authed.Group(func(member chi.Router) {
				member.Use(middleware.IsMemberMiddleware())

				member.Get("/equipment/mine", api.MyEquipmentHandler(svcs.Equipment))

				member.Get("/events", api.ListUpcomingEventsHandler(svcs.Event))
				member.Get("/events/{id}/participants", api.EventParticipantsHandler(svcs.Event))
				member.Post("/events/{id}/signup", api.SignUpEventHandler(svcs.Event))
				member.Delete("/events/{id}/signup", api.LeaveEventHandler(svcs.Event))

				member.Get("/trainings", api.ListUpcomingTrainingsHandler(svcs.Training))
				member.Get("/trainings/{id}/participants", api.TrainingParticipantsHandler(svcs.Training))
				member.Post("/trainings/{id}/signup", api.SignUpTrainingHandler(svcs.Training))
				member.Delete("/trainings/{id}/signup", api.LeaveTrainingHandler(svcs.Training))

				member.Get("/policies", api.ListPoliciesHandler(svcs.Policy))
				member.Get("/policies/{id}/status", api.PolicyStatusHandler(svcs.Policy))
				member.Post("/policies/{id}/acknowledge", api.AcknowledgePolicyHandler(svcs.Policy))

				// Admin-only group
				member.Group(func(admin chi.Router) {
					admin.Use(middleware.IsAdminMiddleware())

					admin.Get("/users", api.ListUsersHandler(svcs.User))
					admin.Get("/users/{id}", api.GetUserHandler(svcs.User))
					admin.Patch("/users/{id}", api.AdminUpdateUserHandler(svcs.User))
					admin.Get("/users/{id}/resume", api.ResumeURLHandler(svcs.User, svcs.Storage))
					admin.Get("/users/{id}/equipment", api.UserEquipmentHandler(svcs.Equipment))

					admin.Get("/equipment", api.ListEquipmentHandler(repos.Equipment))
					admin.Post("/equipment", api.CreateEquipmentHandler(repos.Equipment))
					admin.Put("/equipment/{id}", api.UpdateEquipmentHandler(repos.Equipment))
					admin.Post("/equipment/{id}/assign", api.AssignEquipmentHandler(svcs.Equipment))
					admin.Post("/equipment/{id}/obsolete", api.MarkObsoleteHandler(svcs.Equipment))
					admin.Post("/assignments/{id}/return", api.ReturnAssignmentHandler(svcs.Equipment))
					admin.Patch("/assignments/{id}/notes", api.UpdateAssignmentNotesHandler(svcs.Equipment))

					admin.Post("/events", api.CreateEventHandler(svcs.Event))
					admin.Put("/events/{id}", api.UpdateEventHandler(svcs.Event))
					admin.Delete("/events/{id}", api.DeleteEventHandler(svcs.Event))

					admin.Post("/trainings", api.CreateTrainingHandler(svcs.Training))
					admin.Put("/trainings/{id}", api.UpdateTrainingHandler(svcs.Training))
					admin.Delete("/trainings/{id}", api.DeleteTrainingHandler(svcs.Training))
					admin.Put("/trainings/{id}/completions/{userID}", api.UpdateTrainingCompletionHandler(svcs.Training))

					admin.Post("/policies", api.CreatePolicyHandler(svcs.Policy))
					admin.Put("/policies/{id}", api.UpdatePolicyHandler(svcs.Policy))
					admin.Get("/policies/{id}/completions", api.PolicyCompletionsHandler(svcs.Policy, svcs.User))
					admin.Delete("/policies/{id}/completions", api.ResetPolicyCompletionsHandler(svcs.Policy))
					admin.Delete("/policies/{id}/completions/{userID}", api.ResetPolicyCompletionForUserHandler(svcs.Policy))

					admin.Get("/dashboard", api.DashboardCountsHandler(repos.Roster, svcs.Cache))
				})
			})
		})
	})
}
