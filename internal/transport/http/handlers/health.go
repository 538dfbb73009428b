package http_handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

type HealthHandler struct {
	db    *sql.DB
	start time.Time
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db, start: time.Now()}
}

// Health handles GET /health: liveness plus a coarse database status and the
// process uptime in seconds.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	database := "connected"
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			database = "disconnected"
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "OK",
		"database": database,
		"uptime":   time.Since(h.start).Seconds(),
	})
}

// Index handles GET /: a small self-describing API index.
func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": "Authentication Backend API",
		"status":  "running",
		"endpoints": map[string]string{
			"register": "POST /api/auth/register",
			"login":    "POST /api/auth/login",
			"profile":  "GET /api/auth/me",
			"password": "PUT /api/auth/password",
			"health":   "GET /health",
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
