package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/proptrail/crmgo/internal/config"
	"github.com/proptrail/crmgo/internal/database"
	"github.com/proptrail/crmgo/internal/extract"
	"github.com/proptrail/crmgo/internal/intake"
	"github.com/proptrail/crmgo/internal/middleware"
	"github.com/proptrail/crmgo/internal/websocket"
)

// Router wraps the mux router and the intake service dependencies
type Router struct {
	*mux.Router
	db      *database.DB
	cfg     *config.Config
	intakes *intake.Service
	ocr     extract.OCREngine
	hub     *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *websocket.Hub) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		db:      db,
		cfg:     cfg,
		intakes: intake.NewService(db),
		ocr:     extract.NewTesseractEngine(cfg.OCR),
		hub:     hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Intake event feed
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(r.hub, w, req)
	}).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")

	// Intake routes; a Bearer token is optional and only marks ownership
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.OptionalAuth(cfg.JWTSecret))

	api.HandleFunc("/intake/ocr", r.processOCR).Methods("POST")
	api.HandleFunc("/intake/zip", r.processZIP).Methods("POST")
	api.HandleFunc("/intake/pdf", r.processPDF).Methods("POST")
	api.HandleFunc("/intake", r.listIntakes).Methods("GET")
	api.HandleFunc("/intake", r.createIntake).Methods("POST")
	api.HandleFunc("/intake/{id}", r.updateIntakeStatus).Methods("PATCH")
	api.HandleFunc("/intake/{id}", r.deleteIntake).Methods("DELETE")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// envelope is the uniform response shape: {success, data?, message?}
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondData sends a success envelope wrapping data
func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, envelope{Success: true, Data: data})
}

// respondError sends a failure envelope with a message
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Success: false, Message: message})
}
