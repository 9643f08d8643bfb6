// Package api exposes HTTP handlers for the roster service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"example.com/roster/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/activities", h.listActivities)
	mux.HandleFunc("/activities/", h.roster)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	activities, err := h.service.Activities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "error fetching activities")
		return
	}

	out := make(map[string]ActivityView, len(activities))
	for name, detail := range activities {
		out[name] = toActivityView(detail)
	}
	writeJSON(w, http.StatusOK, out)
}

// roster dispatches the signup and removal sub-paths:
//
//	POST   /activities/{name}/signup?email=
//	DELETE /activities/{name}/participants/{email}
func (h *Handler) roster(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(rest, "/signup"):
		name := strings.TrimSuffix(rest, "/signup")
		h.signUp(w, r, name)
	case r.Method == http.MethodDelete && strings.Contains(rest, "/participants/"):
		parts := strings.SplitN(rest, "/participants/", 2)
		h.removeParticipant(w, r, parts[0], parts[1])
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown route")
	}
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request, name string) {
	if name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing activity name")
		return
	}
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing email parameter")
		return
	}

	message, err := h.service.SignUp(r.Context(), name, email)
	if err != nil {
		writeRosterError(w, err, "error signing up for activity")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: message})
}

func (h *Handler) removeParticipant(w http.ResponseWriter, r *http.Request, name, email string) {
	if name == "" || email == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing activity name or email")
		return
	}

	message, err := h.service.Remove(r.Context(), name, email)
	if err != nil {
		writeRosterError(w, err, "error removing participant")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// writeRosterError maps domain failures onto HTTP statuses. Validation
// outcomes keep their own message; anything unexpected stays generic so
// storage internals never leak to clients.
func writeRosterError(w http.ResponseWriter, err error, generic string) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Activity not found")
	case errors.Is(err, domain.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Participant not found in this activity")
	case errors.Is(err, domain.ErrAlreadySignedUp):
		writeError(w, http.StatusBadRequest, "already_signed_up", "Already signed up for this activity")
	case errors.Is(err, domain.ErrActivityFull):
		writeError(w, http.StatusBadRequest, "activity_full", "Activity is full")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", generic)
	}
}

// MessageResponse carries the confirmation text for roster mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ActivityView exposes an activity's details, keyed externally by name.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func toActivityView(detail domain.Detail) ActivityView {
	participants := detail.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityView{
		Description:     detail.Description,
		Schedule:        detail.Schedule,
		MaxParticipants: detail.MaxParticipants,
		Participants:    participants,
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
