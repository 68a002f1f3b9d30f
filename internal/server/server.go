package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/work-hours/tracker/internal/session"
)

// Handler serves the read-only local status API used by external displays
// (status bars, tmux segments). It re-reads the session store on every
// request, so it always reflects the latest stored state even when another
// tracker process wrote it.
type Handler struct {
	store *session.Store
}

// NewHandler creates a status handler over the session store.
func NewHandler(store *session.Store) *Handler {
	return &Handler{store: store}
}

// Router builds the chi router for the status API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Get("/session", h.Session)

	return r
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionResponse is the body of GET /session.
type sessionResponse struct {
	Active         bool      `json:"active"`
	ProjectID      uint      `json:"project_id,omitempty"`
	ProjectName    string    `json:"project_name,omitempty"`
	TaskID         *uint     `json:"task_id,omitempty"`
	TaskTitle      string    `json:"task_title,omitempty"`
	StartedAt      time.Time `json:"started_at,omitempty"`
	ElapsedSeconds int       `json:"elapsed_seconds,omitempty"`
	Note           string    `json:"note,omitempty"`
}

// Session handles GET /session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Active()
	if sess == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"active": false})
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Active:         true,
		ProjectID:      sess.ProjectID,
		ProjectName:    sess.ProjectName,
		TaskID:         sess.TaskID,
		TaskTitle:      sess.TaskTitle,
		StartedAt:      sess.StartedAt,
		ElapsedSeconds: int(sess.Elapsed(time.Now()).Seconds()),
		Note:           sess.Note,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
