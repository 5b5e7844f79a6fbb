package controllers

import (
	"net/http"

	"ballmate_server/errs"
	"ballmate_server/services"

	"github.com/gorilla/mux"
)

// TeamController serves the league reference data behind the feeds.
type TeamController struct {
	TeamService *services.TeamService
}

// NewTeamController creates a new instance of TeamController.
func NewTeamController(teamService *services.TeamService) *TeamController {
	return &TeamController{TeamService: teamService}
}

// GetRankings handles GET /main/kbo-ranking.
func (c *TeamController) GetRankings(w http.ResponseWriter, r *http.Request) {
	ranks, err := c.TeamService.GetRankings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ranking": ranks})
}

// GetSchedules handles GET /main/schedule/{team}.
func (c *TeamController) GetSchedules(w http.ResponseWriter, r *http.Request) {
	team := mux.Vars(r)["team"]
	if team == "" {
		writeError(w, errs.Validation("team is required"))
		return
	}

	schedules, err := c.TeamService.GetSchedules(r.Context(), team)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"schedules": schedules})
}

// GetStadiumFoods handles GET /main/food/{stadium}.
func (c *TeamController) GetStadiumFoods(w http.ResponseWriter, r *http.Request) {
	stadium := mux.Vars(r)["stadium"]
	if stadium == "" {
		writeError(w, errs.Validation("stadium is required"))
		return
	}

	foods, err := c.TeamService.GetStadiumFoods(r.Context(), stadium)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"foods": foods})
}
