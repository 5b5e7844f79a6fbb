package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ballmate_server/errs"
	"ballmate_server/models"
	"ballmate_server/services"

	"github.com/gorilla/mux"
)

// MateController handles post creation, the two feed modes and applying.
type MateController struct {
	MateService *services.MateService
}

// NewMateController creates a new instance of MateController.
func NewMateController(mateService *services.MateService) *MateController {
	return &MateController{MateService: mateService}
}

// CreateMatePost handles POST /mate.
func (c *MateController) CreateMatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := services.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var input services.MatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errs.Validation("invalid request payload"))
		return
	}

	post, err := c.MateService.CreatePost(r.Context(), userID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "post created",
		"mateId":  post.MateID,
	})
}

// UpdateMatePost handles PUT /mate?mateId=.
func (c *MateController) UpdateMatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := services.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	mateID := r.URL.Query().Get("mateId")
	if mateID == "" {
		writeError(w, errs.Validation("mateId is required"))
		return
	}

	var input services.MatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errs.Validation("invalid request payload"))
		return
	}

	post, err := c.MateService.UpdatePost(r.Context(), userID, mateID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "post updated",
		"mateId":  post.MateID,
	})
}

// DeleteMatePost handles DELETE /mate?mateId=.
func (c *MateController) DeleteMatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := services.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	mateID := r.URL.Query().Get("mateId")
	if mateID == "" {
		writeError(w, errs.Validation("mateId is required"))
		return
	}

	if err := c.MateService.DeletePost(r.Context(), userID, mateID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// GetLatestPosts handles GET /mate/latest?cursor=. The cursor is the
// updatedAt of the last item of the previous page, RFC3339.
func (c *MateController) GetLatestPosts(w http.ResponseWriter, r *http.Request) {
	var cursor *time.Time
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			writeError(w, errs.Validation(fmt.Sprintf("malformed cursor: %q", raw)))
			return
		}
		cursor = &at
	}

	items, err := c.MateService.GetPostsByDate(r.Context(), cursor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": items})
}

// GetRelevantPosts handles GET /mate/relevance. Filter dimensions arrive
// as query parameters; absent ones simply score nothing.
func (c *MateController) GetRelevantPosts(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseSearchCriteria(r)
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := c.MateService.GetPostsByRelevance(r.Context(), r.URL.Query().Get("cursor"), criteria)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": items})
}

// Apply handles POST /mate/{mateId}/apply.
func (c *MateController) Apply(w http.ResponseWriter, r *http.Request) {
	userID, err := services.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	mateID := mux.Vars(r)["mateId"]
	req, err := c.MateService.Apply(r.Context(), userID, mateID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "application submitted",
		"requestId": req.RequestID,
	})
}

func parseSearchCriteria(r *http.Request) (services.SearchCriteria, error) {
	q := r.URL.Query()
	var criteria services.SearchCriteria
	var err error

	if raw := q.Get("date"); raw != "" {
		if _, err = time.Parse(models.DateLayout, raw); err != nil {
			return criteria, errs.Validation(fmt.Sprintf("invalid game date: %q", raw))
		}
		criteria.GameDate = raw
	}
	if raw := q.Get("gender"); raw != "" {
		if criteria.Gender, err = models.ParseGender(raw); err != nil {
			return criteria, errs.Validation(err.Error())
		}
	}
	if raw := q.Get("age"); raw != "" {
		if criteria.Age, err = models.ParseAgeRange(raw); err != nil {
			return criteria, errs.Validation(err.Error())
		}
	}
	if raw := q.Get("team"); raw != "" {
		if criteria.Team, err = models.ParseTeam(raw); err != nil {
			return criteria, errs.Validation(err.Error())
		}
	}
	if raw := q.Get("stadium"); raw != "" {
		if criteria.Stadium, err = models.ParseStadium(raw); err != nil {
			return criteria, errs.Validation(err.Error())
		}
	}
	if raw := q.Get("member"); raw != "" {
		member, convErr := strconv.Atoi(raw)
		if convErr != nil || member < models.MinPartySize || member > models.MaxPartySize {
			return criteria, errs.Validation(fmt.Sprintf("invalid member count: %q", raw))
		}
		criteria.Member = member
	}
	return criteria, nil
}
