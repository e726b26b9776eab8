package main

import (
	"os"
	"strings"
	"time"

	"tripscout/database"
	"tripscout/handlers"
	"tripscout/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kataras/golog"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		golog.Info("no .env file found — using environment variables")
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		golog.SetLevel(lvl)
	}

	// Optional archive store
	database.InitDB()

	// External collaborators
	services.InitSerp()
	services.InitAgent()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	// CORS — allow configured frontend origins
	frontendURLs := os.Getenv("FRONTEND_URL")
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8501"}
	if frontendURLs != "" {
		for _, u := range strings.Split(frontendURLs, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Session-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	r.POST("/search_flights/", handlers.SearchFlightsHandler)
	r.POST("/search_hotels/", handlers.SearchHotelsHandler)
	r.POST("/generate_itinerary/", handlers.GenerateItineraryHandler)

	r.GET("/health", handlers.HealthHandler)
	r.GET("/download/:id", handlers.DownloadHandler)

	fav := r.Group("/favorites")
	{
		fav.GET("", handlers.ListFavoritesHandler)
		fav.POST("/add", handlers.AddFavoriteHandler)
		fav.POST("/remove", handlers.RemoveFavoriteHandler)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	golog.Infof("TripScout backend starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		golog.Fatalf("failed to start server: %v", err)
	}
}
