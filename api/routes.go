package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskify/intake/internal/config"
	"github.com/taskify/intake/internal/db"
	"github.com/taskify/intake/internal/repository/sqlite"
	"github.com/taskify/intake/internal/upload"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, uploads *upload.Store) (*mux.Router, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := mux.NewRouter()

	// Middleware chain
	flashes := NewFlashStore(cfg.SessionSecret)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware(flashes))

	// Repository
	repo := sqlite.New(database, logger)

	// Create handlers
	formHandler := NewFormHandler(repo, uploads, flashes, tmpl, cfg.RedirectBaseURL)
	pagesHandler := NewPagesHandler(tmpl)
	uploadsHandler := NewUploadsHandler(uploads)
	applicationsHandler := NewApplicationsHandler(repo, tmpl)
	systemHandler := NewSystemHandler(repo, uploads, database.Path())
	authHandler := NewAuthHandler(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.TokenDuration)
	exportHandler := NewExportHandler(repo)
	intakeHandler, err := NewIntakeHandler(repo)
	if err != nil {
		return nil, err
	}

	limitBody := MaxBodyMiddleware(cfg.MaxBodyBytes)

	// Form page and submission pipeline
	r.HandleFunc("/", formHandler.Show).Methods("GET")
	r.Handle("/", limitBody(http.HandlerFunc(formHandler.Submit))).Methods("POST")

	// Informational pages
	r.HandleFunc("/terms/data-collection", pagesHandler.TermsDataCollection).Methods("GET")
	r.HandleFunc("/terms/communication", pagesHandler.TermsCommunication).Methods("GET")
	r.HandleFunc("/terms/recruitment", pagesHandler.TermsRecruitment).Methods("GET")
	r.HandleFunc("/privacy", pagesHandler.Privacy).Methods("GET")
	r.HandleFunc("/submit", pagesHandler.Submit).Methods("GET")

	// Stored files and list view
	r.HandleFunc("/uploads/{filename}", uploadsHandler.Serve).Methods("GET")
	r.HandleFunc("/applications", applicationsHandler.List).Methods("GET")

	// JSON surface
	r.HandleFunc("/api/status", systemHandler.StatusHandler).Methods("GET")
	r.HandleFunc("/api/debug", systemHandler.DebugHandler).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.Handle("/api/applications", limitBody(http.HandlerFunc(intakeHandler.Create))).Methods("POST")
	r.HandleFunc("/api/admin/login", authHandler.Login).Methods("POST")

	// Admin-only export
	requireAdmin := JWTAuthMiddlewareWithSecret(cfg.JWTSecret)
	r.Handle("/api/export", requireAdmin(http.HandlerFunc(exportHandler.CSV))).Methods("GET")

	return r, nil
}
