package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/forgo/camp/internal/config"
	"github.com/forgo/camp/internal/database"
	"github.com/forgo/camp/internal/handler"
	"github.com/forgo/camp/internal/middleware"
	"github.com/forgo/camp/internal/repository"
	"github.com/forgo/camp/internal/service"
	"github.com/forgo/camp/internal/view"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Repositories
	campgroundRepo := repository.NewCampgroundRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Services
	campgroundService := service.NewCampgroundService(service.CampgroundServiceConfig{
		Campgrounds: campgroundRepo,
		Reviews:     reviewRepo,
	})
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: userRepo,
	})
	sessionService := service.NewSessionService(service.SessionServiceConfig{
		Repo: sessionRepo,
		TTL:  cfg.Session.MaxAge,
	})

	// Views
	views, err := view.New()
	if err != nil {
		slog.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}
	pages := handler.NewPages(views, sessionService)

	cookie := middleware.CookieConfig{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	}

	// Handlers
	campgroundHandler := handler.NewCampgroundHandler(campgroundService, pages)
	reviewHandler := handler.NewReviewHandler(campgroundService, pages)
	authHandler := handler.NewAuthHandler(authService, sessionService, pages, cookie)

	requireLogin := middleware.RequireLogin(sessionService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", pages.Home)
	mux.Handle("GET /static/", view.StaticHandler())

	// Campgrounds. Reads are open; every state change and both form pages
	// sit behind the login gate.
	mux.HandleFunc("GET /campgrounds", campgroundHandler.Index)
	mux.Handle("GET /campgrounds/new", requireLogin(http.HandlerFunc(campgroundHandler.New)))
	mux.HandleFunc("GET /campgrounds/{id}", campgroundHandler.Show)
	mux.Handle("GET /campgrounds/{id}/edit", requireLogin(http.HandlerFunc(campgroundHandler.Edit)))
	mux.Handle("POST /campgrounds", requireLogin(http.HandlerFunc(campgroundHandler.Create)))
	mux.Handle("PUT /campgrounds/{id}", requireLogin(http.HandlerFunc(campgroundHandler.Update)))
	mux.Handle("DELETE /campgrounds/{id}", requireLogin(http.HandlerFunc(campgroundHandler.Delete)))

	// Reviews. Creation is deliberately left open: the original system never
	// gated it, and that observed behavior is preserved rather than fixed.
	mux.HandleFunc("POST /campgrounds/{id}/reviews", reviewHandler.Create)
	mux.HandleFunc("DELETE /campgrounds/{id}/reviews/{reviewId}", reviewHandler.Delete)

	// Users
	mux.HandleFunc("GET /register", authHandler.RegisterForm)
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("GET /login", authHandler.LoginForm)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /logout", authHandler.Logout)

	// Anything else is a 404 through the same error translation
	mux.HandleFunc("/", pages.NotFound)

	chained := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery(pages.RenderError),
		middleware.MethodOverride,
		middleware.Session(sessionService, authService, cookie),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      chained,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", slog.String("port", cfg.Server.Port), slog.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", slog.String("error", err.Error()))
	}
}
