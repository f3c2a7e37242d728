package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/sprintnotes/sprintnotes/ai"
	"github.com/sprintnotes/sprintnotes/canvas"
	"github.com/sprintnotes/sprintnotes/config"
	"github.com/sprintnotes/sprintnotes/handlers"
	"github.com/sprintnotes/sprintnotes/middleware"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	// Initialize database connection
	config.Connect()

	DBHandler := &handlers.DBHandler{DB: config.Database}
	AIHandler := &handlers.AIHandler{Client: ai.NewClient(config.Env.AnthropicAPIKey)}
	CanvasHandler := &handlers.CanvasHandler{Client: canvas.NewClient()}
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/signup", DBHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", DBHandler.Login)
	mux.HandleFunc("PUT /api/auth/update", middleware.RequireAuth(DBHandler.UpdateProfile))

	// Matching
	mux.HandleFunc("POST /api/matches/find", middleware.RequireAuth(DBHandler.FindMatches))
	mux.HandleFunc("POST /api/matches/request", middleware.RequireAuth(DBHandler.RequestMatch))
	mux.HandleFunc("PUT /api/matches/{matchID}", middleware.RequireAuth(DBHandler.UpdateMatch))
	mux.HandleFunc("GET /api/matches", middleware.RequireAuth(DBHandler.ListMatches))

	// Messaging
	mux.HandleFunc("POST /api/messages/send", middleware.RequireAuth(DBHandler.SendMessage))
	mux.HandleFunc("POST /api/messages/get", middleware.RequireAuth(DBHandler.GetMessages))

	// Sharing
	mux.HandleFunc("POST /api/share", middleware.RequireAuth(DBHandler.ShareNote))
	mux.HandleFunc("GET /api/share", middleware.RequireAuth(DBHandler.SharedWithMe))

	// Sync ingest + document mirror
	mux.HandleFunc("POST /api/sync", middleware.RequireAuth(DBHandler.IngestOperation))
	mux.HandleFunc("GET /api/documents", middleware.RequireAuth(DBHandler.ListDocuments))

	// AI augmentation
	mux.HandleFunc("POST /api/ai/summarize", middleware.RequireAuth(AIHandler.Summarize))
	mux.HandleFunc("POST /api/ai/generate-description", middleware.RequireAuth(AIHandler.GenerateDescription))
	mux.HandleFunc("POST /api/ai/translate-lecture", middleware.RequireAuth(AIHandler.TranslateLecture))

	// Canvas LMS
	mux.HandleFunc("POST /api/canvas/verify", middleware.RequireAuth(CanvasHandler.Verify))
	mux.HandleFunc("POST /api/canvas/courses", middleware.RequireAuth(CanvasHandler.Courses))
	mux.HandleFunc("POST /api/canvas/assignments", middleware.RequireAuth(CanvasHandler.Assignments))
	mux.HandleFunc("POST /api/canvas/files", middleware.RequireAuth(CanvasHandler.Files))
	mux.HandleFunc("POST /api/canvas/export", middleware.RequireAuth(CanvasHandler.Export))

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://sprintnotes.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // fallback port for local development
	}
	serverAddr := "0.0.0.0:" + port

	log.Printf("Listening on %s", serverAddr)
	http.ListenAndServe(serverAddr, corsHandler)
}
