// Package api exposes the HTTP handlers of the exercise tracker.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Rhman101/fcc0404/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	logger  *logrus.Logger
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, logger *logrus.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes wires endpoints to the router. Anything unmatched,
// including a matched path with the wrong method, gets the 404 body.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/exercise/new-user", h.createUser).Methods(http.MethodPost)
	r.HandleFunc("/api/exercise/users", h.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/exercise/add", h.addExercise).Methods(http.MethodPost)
	r.HandleFunc("/api/exercise/log", h.exerciseLog).Methods(http.MethodGet)
	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CreateUser(r.Context(), r.PostFormValue("username"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(*user))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request) {
	input := domain.AddExerciseInput{
		UserID:      r.PostFormValue("userId"),
		Description: r.PostFormValue("description"),
	}

	if input.Description == "" {
		h.writeDomainError(w, domain.Validation("description is required"))
		return
	}

	rawDuration := r.PostFormValue("duration")
	if rawDuration == "" {
		h.writeDomainError(w, domain.Validation("duration is required"))
		return
	}
	duration, err := strconv.ParseFloat(rawDuration, 64)
	if err != nil {
		h.writeDomainError(w, domain.Validation("invalid duration"))
		return
	}
	input.Duration = duration

	rawDate := r.PostFormValue("date")
	if rawDate != "" {
		date, err := domain.ParseDate(rawDate)
		if err != nil {
			h.writeDomainError(w, domain.Validation("invalid date"))
			return
		}
		input.Date = &date
	}

	user, exercise, err := h.service.AddExercise(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	// Description, duration and date echo the caller's values, not a
	// re-read of the persisted record.
	echoDate := rawDate
	if echoDate == "" {
		echoDate = exercise.Date.Format(domain.DateLayout)
	}
	writeJSON(w, http.StatusOK, AddExerciseResponse{
		Username:    user.Username,
		ID:          user.ID,
		Description: input.Description,
		Date:        echoDate,
		Duration:    duration,
	})
}

func (h *Handler) exerciseLog(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var query domain.LogQuery
	if raw := params.Get("from"); raw != "" {
		from, err := domain.ParseDate(raw)
		if err != nil {
			h.writeDomainError(w, domain.Validation("invalid from date"))
			return
		}
		query.From = &from
	}
	if raw := params.Get("to"); raw != "" {
		to, err := domain.ParseDate(raw)
		if err != nil {
			h.writeDomainError(w, domain.Validation("invalid to date"))
			return
		}
		query.To = &to
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.writeDomainError(w, domain.Validation("invalid limit"))
			return
		}
		query.Limit = &limit
	}

	user, exercises, err := h.service.ExerciseLog(r.Context(), params.Get("userId"), query)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	entries := make([]LogEntry, 0, len(exercises))
	for _, exercise := range exercises {
		entries = append(entries, toLogEntry(exercise))
	}

	writeJSON(w, http.StatusOK, ExerciseLogResponse{
		ID:       user.ID,
		Username: user.Username,
		From:     params.Get("from"),
		To:       params.Get("to"),
		Limit:    query.Limit,
		Count:    len(entries),
		Log:      entries,
	})
}

// UserView is the wire shape of a user record.
type UserView struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// AddExerciseResponse is the wire shape of a recorded exercise.
type AddExerciseResponse struct {
	Username    string  `json:"username"`
	ID          string  `json:"_id"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Duration    float64 `json:"duration"`
}

// LogEntry is one exercise inside the log response.
type LogEntry struct {
	ID          string  `json:"_id"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// ExerciseLogResponse merges the user record with its filtered log.
// From, To and Limit echo the query parameters actually present.
type ExerciseLogResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	From     string     `json:"from,omitempty"`
	To       string     `json:"to,omitempty"`
	Limit    *int       `json:"limit,omitempty"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

type errorBody struct {
	Error string `json:"error"`
}

var statusByKind = map[domain.ErrorKind]int{
	domain.KindValidation: http.StatusBadRequest,
	domain.KindNotFound:   http.StatusNotFound,
	domain.KindInternal:   http.StatusInternalServerError,
}

// writeDomainError is the single place mapping failure kinds to status
// codes, so every request ends in exactly one response.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		derr = domain.Internal(err)
	}
	if derr.Kind == domain.KindInternal {
		cause := derr.Cause
		if cause == nil {
			cause = derr
		}
		h.logger.WithError(cause).Error("request failed")
	}
	writeJSON(w, statusByKind[derr.Kind], errorBody{Error: derr.Message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toUserView(user domain.User) UserView {
	return UserView{ID: user.ID, Username: user.Username}
}

func toLogEntry(exercise domain.Exercise) LogEntry {
	return LogEntry{
		ID:          exercise.ID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date.UTC().Format(domain.DateLayout),
	}
}
