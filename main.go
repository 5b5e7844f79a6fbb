package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"ballmate_server/controllers"
	"ballmate_server/repositories"
	"ballmate_server/routes"
	"ballmate_server/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	ctx := context.Background()

	// Initialize DynamoDB and Redis clients
	log.Println("Initializing DynamoDB client...")
	dynamoClient := repositories.InitializeDynamoDBClient()
	dynamo := &repositories.DynamoClient{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	log.Println("Initializing Redis client...")
	redisClient := repositories.InitializeRedisClient()
	log.Println("Redis client initialized.")

	// Initialize repositories
	postRepo := repositories.NewMatePostRepository(dynamo)
	requestRepo := repositories.NewMateRequestRepository(dynamo)
	userRepo := repositories.NewUserRepository(dynamo)
	referenceRepo := repositories.NewReferenceCacheRepository(redisClient, dynamo)

	// Initialize services
	tokenService := services.NewTokenServiceFromEnv()
	mateService := services.NewMateService(postRepo, requestRepo, userRepo)
	myPageService := services.NewMyPageService(postRepo, requestRepo)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(referenceRepo)
	expiryService := services.NewExpiryService(postRepo)
	s3Service, err := services.NewS3Service()
	if err != nil {
		log.Fatalf("failed to initialize S3 service: %v", err)
	}

	// Background jobs: expire stale posts and keep the reference cache warm
	stopExpiry := expiryService.Start(ctx)
	defer stopExpiry()
	stopSync := teamService.StartSync(ctx)
	defer stopSync()

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()
	routes.RegisterRoutes(r)

	api := r.PathPrefix("/api/v1").Subrouter()
	routes.RegisterMateRoutes(api, controllers.NewMateController(mateService), tokenService)
	routes.RegisterUserRoutes(api, controllers.NewUserController(userService), controllers.NewMyPageController(myPageService), tokenService)
	routes.RegisterTeamRoutes(api, controllers.NewTeamController(teamService))
	routes.RegisterS3Routes(api, controllers.NewS3Controller(s3Service), tokenService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
