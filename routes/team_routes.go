package routes

import (
	"ballmate_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterTeamRoutes sets up the public league reference routes.
func RegisterTeamRoutes(r *mux.Router, c *controllers.TeamController) {
	r.HandleFunc("/main/kbo-ranking", c.GetRankings).Methods("GET")
	r.HandleFunc("/main/schedule/{team}", c.GetSchedules).Methods("GET")
	r.HandleFunc("/main/food/{stadium}", c.GetStadiumFoods).Methods("GET")
}
