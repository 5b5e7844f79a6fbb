package controllers

import (
	"encoding/json"
	"net/http"

	"ballmate_server/errs"
	"ballmate_server/services"

	"github.com/gorilla/mux"
)

// MyPageController handles the owner's decisions and the request dashboard.
type MyPageController struct {
	MyPageService *services.MyPageService
}

// NewMyPageController creates a new instance of MyPageController.
func NewMyPageController(myPageService *services.MyPageService) *MyPageController {
	return &MyPageController{MyPageService: myPageService}
}

// UpdateRequestStatus handles POST /users/mate-requests/{requestId}/status.
func (c *MyPageController) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := services.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	requestID := mux.Vars(r)["requestId"]

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Status == "" {
		writeError(w, errs.Validation("status is required"))
		return
	}

	if err := c.MyPageService.Respond(r.Context(), userID, requestID, payload.Status); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "request updated"})
}

// GetRequestSummary handles GET /users/notifications/all.
func (c *MyPageController) GetRequestSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := services.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := c.MyPageService.GetRequestSummary(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
