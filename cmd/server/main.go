package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/omoide-app/backend/internal/auth"
	"github.com/omoide-app/backend/internal/config"
	"github.com/omoide-app/backend/internal/database"
	"github.com/omoide-app/backend/internal/handlers"
	"github.com/omoide-app/backend/internal/middleware"
	"github.com/omoide-app/backend/internal/routes"
	"github.com/omoide-app/backend/internal/services"
	"github.com/omoide-app/backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.UsingDefaultSecret() {
		log.Println("⚠️  WARNING: JWT_SECRET not set, using the development default.")
		log.Println("   Generate one with: openssl rand -base64 32")
	}

	log.Printf("Connecting to MongoDB...")
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer database.Disconnect()

	indexCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		log.Fatal("Failed to ensure MongoDB indexes: ", err)
	}
	log.Println("✅ MongoDB indexes ensured")

	users := store.NewMongoUserStore(db)
	posts := store.NewMongoPostStore(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret)
	quota := services.NewQuotaPolicy(posts)
	userSvc := services.NewUserService(users, posts, tokens, quota)
	postSvc := services.NewPostService(posts, quota)
	querySvc := services.NewQueryService(users, posts)

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", auth.HeaderName},
		ExposedHeaders:   []string{auth.HeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.Setup(r,
		tokens,
		handlers.NewUserHandler(userSvc),
		handlers.NewAuthHandler(userSvc),
		handlers.NewPostHandler(postSvc, querySvc),
	)

	log.Printf("🚀 omoide backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
