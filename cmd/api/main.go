// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/bookwormapp/bookworm-backend/internal/auth"
	"github.com/bookwormapp/bookworm-backend/internal/books"
	"github.com/bookwormapp/bookworm-backend/internal/common/database"
	"github.com/bookwormapp/bookworm-backend/internal/config"
	"github.com/bookwormapp/bookworm-backend/internal/genres"
	"github.com/bookwormapp/bookworm-backend/internal/recommendations"
	"github.com/bookwormapp/bookworm-backend/internal/reviews"
	"github.com/bookwormapp/bookworm-backend/internal/shelf"
	"github.com/bookwormapp/bookworm-backend/internal/stats"
	"github.com/bookwormapp/bookworm-backend/internal/users"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting BookWorm API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration loaded and valid")

	// 3. Connect to PostgreSQL
	log.Println("\n🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 4. Connect to Redis (optional, used for access-token revocation)
	log.Println("\n📮 Step 4: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v, continuing without Redis", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 5. Run database migrations
	log.Println("\n🔨 Step 5: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Initialize Auth system
	log.Println("\n🔐 Step 6: Initializing authentication system...")
	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, redisClient, &auth.Config{
		JWTSecret:          cfg.JWTSecret,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
		BCryptCost:         cfg.BCryptCost,
	})
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Authentication system initialized")

	// 7. Initialize Genres module
	log.Println("\n🏷️  Step 7: Initializing Genres module...")
	genresRepo := genres.NewPostgresRepository(db)
	genresService := genres.NewService(genresRepo)
	genresHandler := genres.NewHandler(genresService)
	log.Println("✅ Genres module initialized")

	// 8. Initialize Books module
	log.Println("\n📚 Step 8: Initializing Books module...")
	booksRepo := books.NewPostgresRepository(db)
	uploadService := books.NewUploadService(books.UploadConfig{
		UseS3:          cfg.UseS3,
		S3Bucket:       cfg.S3Bucket,
		AWSRegion:      cfg.S3Region,
		LocalUploadDir: cfg.LocalUploadDir,
		BaseURL:        cfg.BaseURL,
	})
	if cfg.UseS3 {
		log.Println("   ✅ Using S3 for cover uploads")
	} else {
		log.Println("   ✅ Using local storage for cover uploads")
	}
	booksService := books.NewService(booksRepo, uploadService)
	booksHandler := books.NewHandler(booksService, cfg.DefaultPageSize, cfg.MaxPageSize)
	log.Println("✅ Books module initialized")

	// 9. Initialize Shelf module
	log.Println("\n📖 Step 9: Initializing Shelf module...")
	shelfRepo := shelf.NewPostgresRepository(db)
	shelfService := shelf.NewService(shelfRepo)
	shelfHandler := shelf.NewHandler(shelfService)
	log.Println("✅ Shelf module initialized")

	// 10. Initialize Reviews module
	log.Println("\n⭐ Step 10: Initializing Reviews module...")
	reviewsRepo := reviews.NewPostgresRepository(db)
	reviewsService := reviews.NewService(reviewsRepo)
	reviewsHandler := reviews.NewHandler(reviewsService, cfg.DefaultPageSize, cfg.MaxPageSize)
	log.Println("✅ Reviews module initialized")

	// 11. Initialize Users module
	log.Println("\n👤 Step 11: Initializing Users module...")
	usersRepo := users.NewPostgresRepository(db)
	usersService := users.NewService(usersRepo, cfg.BCryptCost)
	usersHandler := users.NewHandler(usersService, cfg.DefaultPageSize, cfg.MaxPageSize)
	log.Println("✅ Users module initialized")

	// 12. Initialize Stats module
	log.Println("\n📊 Step 12: Initializing Stats module...")
	statsRepo := stats.NewPostgresRepository(db)
	statsService := stats.NewService(statsRepo)
	statsHandler := stats.NewHandler(statsService)
	log.Println("✅ Stats module initialized")

	// 13. Initialize Recommendation engine
	log.Println("\n✨ Step 13: Initializing Recommendation engine...")
	engine := recommendations.NewEngine(shelfRepo, reviewsRepo, booksRepo)
	recommendationsHandler := recommendations.NewHandler(engine)
	log.Println("✅ Recommendation engine initialized")

	// 14. Setup routes
	log.Println("\n🛣️  Step 14: Setting up routes...")
	router := mux.NewRouter()

	// Static files for local cover uploads
	if !cfg.UseS3 {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/",
				http.FileServer(http.Dir(cfg.LocalUploadDir))))
		log.Println("   ✅ Static file server configured")
	}

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	authHandler.RegisterRoutes(router)
	authHandler.RegisterProtectedRoutes(router, authMiddleware)
	genres.RegisterRoutes(router, genresHandler, authMiddleware)
	books.RegisterRoutes(router, booksHandler, authMiddleware)
	shelf.RegisterRoutes(router, shelfHandler, authMiddleware)
	reviews.RegisterRoutes(router, reviewsHandler, authMiddleware)
	users.RegisterRoutes(router, usersHandler, authMiddleware)
	stats.RegisterRoutes(router, statsHandler, authMiddleware)
	recommendations.RegisterRoutes(router, recommendationsHandler, authMiddleware)
	log.Println("✅ All routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 15. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations creates the schema if it does not exist yet
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			image TEXT,
			challenge_year INT,
			challenge_goal INT,
			challenge_current INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			refresh_token VARCHAR(512) UNIQUE NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS genres (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL,
			slug VARCHAR(100) UNIQUE NOT NULL,
			description TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS books (
			id SERIAL PRIMARY KEY,
			title VARCHAR(300) NOT NULL,
			author VARCHAR(200) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cover_image TEXT NOT NULL DEFAULT '',
			avg_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_ratings INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS book_genres (
			book_id INT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			genre_id INT NOT NULL REFERENCES genres(id) ON DELETE CASCADE,
			PRIMARY KEY (book_id, genre_id)
		)`,

		`CREATE TABLE IF NOT EXISTS shelves (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			book_id INT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			status VARCHAR(20) NOT NULL,
			progress INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, book_id)
		)`,

		`CREATE TABLE IF NOT EXISTS reviews (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			book_id INT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, book_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_refresh_token ON sessions(refresh_token)`,
		`CREATE INDEX IF NOT EXISTS idx_books_avg_rating ON books(avg_rating)`,
		`CREATE INDEX IF NOT EXISTS idx_books_total_ratings ON books(total_ratings)`,
		`CREATE INDEX IF NOT EXISTS idx_book_genres_genre ON book_genres(genre_id)`,
		`CREATE INDEX IF NOT EXISTS idx_shelves_user ON shelves(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_shelves_user_status ON shelves(user_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_book_status ON reviews(book_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_user_status ON reviews(user_id, status)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
