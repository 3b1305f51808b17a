package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	appmw "hoopcoach/internal/http/middleware"
	"hoopcoach/internal/llm"
	"hoopcoach/internal/prompt"
	"hoopcoach/internal/workout"
)

type Server struct {
	Router  *chi.Mux
	Model   llm.Generator
	Timeout time.Duration // budget for one model call
}

type ServerOptions struct {
	Model      llm.Generator
	Timeout    time.Duration
	CORSOrigin string
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.CORS(opts.CORSOrigin))

	s := &Server{Router: r, Model: opts.Model, Timeout: opts.Timeout}

	r.Get("/health", s.handleHealth)
	r.Post("/api/generate-workout", s.handleGenerateWorkout)

	return s
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Server is running",
	})
}

// handleGenerateWorkout runs the whole pipeline for one request:
// validate -> build prompt -> model call bounded by the timeout ->
// recover JSON -> respond. Every failure mode maps to a distinct status.
func (s *Server) handleGenerateWorkout(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)
	genID := uuid.New().String()
	w.Header().Set("X-Generation-Id", genID)

	var profile workout.TrainingProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Missing required fields"})
		return
	}
	if err := profile.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Missing required fields"})
		return
	}

	// The deadline is a genuine cancellation signal: the model call is
	// aborted when the budget runs out, not left running in the background.
	ctx, cancel := context.WithTimeout(r.Context(), s.Timeout)
	defer cancel()

	raw, err := s.Model.Generate(ctx, prompt.Build(profile))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Error().
				Str("generation_id", genID).
				Dur("budget", s.Timeout).
				Msg("model call exceeded time budget")
			writeJSON(w, http.StatusGatewayTimeout, errorBody{
				Error:   "Request timed out",
				Details: "The workout plan generation is taking too long. Please try again.",
			})
			return
		}
		msg := err.Error()
		if msg == "" {
			msg = "Unknown error"
		}
		logger.Error().Err(err).Str("generation_id", genID).Msg("model call failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "Failed to generate workout plan",
			Details: msg,
		})
		return
	}

	plan, err := llm.RecoverJSON(raw)
	if err != nil {
		// Model failure modes are not reproducible; keep the offending text.
		logger.Error().
			Err(err).
			Str("generation_id", genID).
			Str("raw", raw).
			Msg("could not recover JSON from model output")
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "Failed to generate a valid workout plan",
			Details: "The AI generated an invalid response format",
		})
		return
	}

	logger.Info().Str("generation_id", genID).Int("bytes", len(plan)).Msg("workout plan generated")

	// The recovered object is echoed verbatim, with no schema re-validation.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(plan); err != nil {
		logger.Error().Err(err).Msg("writing plan response")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
