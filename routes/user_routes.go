package routes

import (
	"ballmate_server/controllers"
	"ballmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up the onboarding, profile and my-page routes.
// Everything under /users is tied to the acting user, so it all sits
// behind the session middleware.
func RegisterUserRoutes(r *mux.Router, users *controllers.UserController, myPage *controllers.MyPageController, tokens *services.TokenService) {
	authed := r.PathPrefix("/users").Subrouter()
	authed.Use(AuthMiddleware(tokens))

	authed.HandleFunc("/onboarding", users.SaveOnboarding).Methods("POST", "PUT")
	authed.HandleFunc("/info", users.GetUserInfo).Methods("GET")

	authed.HandleFunc("/mate-requests/{requestId}/status", myPage.UpdateRequestStatus).Methods("POST")
	authed.HandleFunc("/notifications/all", myPage.GetRequestSummary).Methods("GET")
}
