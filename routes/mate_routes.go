package routes

import (
	"ballmate_server/controllers"
	"ballmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterMateRoutes sets up routes for mate posts, feeds and applying.
// The feeds are public; everything that writes requires a session.
func RegisterMateRoutes(r *mux.Router, c *controllers.MateController, tokens *services.TokenService) {
	r.HandleFunc("/mate/latest", c.GetLatestPosts).Methods("GET")
	r.HandleFunc("/mate/relevance", c.GetRelevantPosts).Methods("GET")

	authed := r.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))
	authed.HandleFunc("/mate", c.CreateMatePost).Methods("POST")
	authed.HandleFunc("/mate", c.UpdateMatePost).Methods("PUT")
	authed.HandleFunc("/mate", c.DeleteMatePost).Methods("DELETE")
	authed.HandleFunc("/mate/{mateId}/apply", c.Apply).Methods("POST")
}
