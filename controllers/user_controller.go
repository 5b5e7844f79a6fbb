package controllers

import (
	"encoding/json"
	"net/http"

	"ballmate_server/errs"
	"ballmate_server/services"
)

// UserController handles onboarding and profile reads.
type UserController struct {
	UserService *services.UserService
}

// NewUserController creates a new instance of UserController.
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{UserService: userService}
}

// SaveOnboarding handles POST and PUT /users/onboarding.
func (c *UserController) SaveOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, err := services.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var input services.OnboardingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errs.Validation("invalid request payload"))
		return
	}

	user, err := c.UserService.SaveOnboarding(r.Context(), userID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "profile saved",
		"user":    user,
	})
}

// GetUserInfo handles GET /users/info.
func (c *UserController) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := services.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := c.UserService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
