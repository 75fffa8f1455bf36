package v1

import "net/http"

// requireRatings wraps a handler and returns 503 if the rating resolver is not configured.
func (s *Server) requireRatings(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Ratings == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Ratings not configured", nil)
			return
		}
		next(w, r)
	}
}

// requireScheduler wraps a handler and returns 503 if the daily scheduler is not configured.
func (s *Server) requireScheduler(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Scheduler == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Daily refresh not configured", nil)
			return
		}
		next(w, r)
	}
}
