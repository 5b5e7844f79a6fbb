package routes

import (
	"ballmate_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up the health check on the root router.
func RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
}
