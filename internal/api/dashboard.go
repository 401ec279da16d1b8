package api

import (
	"net/http"
	"time"

	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
)

// DashboardCountsHandler handles GET /api/v1/dashboard (admin)
// Roster and activity aggregates, cached for a minute.
func DashboardCountsHandler(rosterRepo *repositories.RosterRepository, cache common.CacheInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		counts, err := cache.GetOrSet(
			string(constants.CachePrefixDashboardStats),
			time.Minute,
			func() (any, error) {
				return rosterRepo.DashboardCounts(r.Context(), time.Now())
			},
		)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to load dashboard counts", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Dashboard counts fetched", counts)
	}
}
