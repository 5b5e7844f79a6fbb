package routes

import (
	"ballmate_server/controllers"
	"ballmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for presigned image URLs.
func RegisterS3Routes(r *mux.Router, c *controllers.S3Controller, tokens *services.TokenService) {
	authed := r.PathPrefix("/s3").Subrouter()
	authed.Use(AuthMiddleware(tokens))
	authed.HandleFunc("/generate-presigned-url", c.GeneratePresignedURL).Methods("POST")
	authed.HandleFunc("/get-presigned-read-url", c.GetPresignedReadURL).Methods("POST")
}
