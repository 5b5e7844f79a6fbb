package routes

import (
	"encoding/json"
	"net/http"

	"ballmate_server/errs"
	"ballmate_server/services"

	"github.com/gorilla/mux"
)

// AuthMiddleware resolves the bearer token and stores the user id on the
// request context. Requests without a valid session are turned away
// before any handler runs.
func AuthMiddleware(tokens *services.TokenService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := tokens.ResolveUserID(r)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(errs.ErrNoSession.Status)
				json.NewEncoder(w).Encode(map[string]string{
					"code":    errs.ErrNoSession.Code,
					"message": errs.ErrNoSession.Message,
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(services.WithUserID(r.Context(), userID)))
		})
	}
}
