package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/jonathan/nutriplan/internal/pipeline"
	"github.com/jonathan/nutriplan/internal/types"
)

// maxBodyBytes caps request bodies; a full weekly plan is well below this.
const maxBodyBytes = 1 << 20

// SaveResponse is returned by PUT /plans/saved
type SaveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleGenerate runs one generation and returns the validated plan
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	profile, err := decodeProfile(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	plan, err := s.session.Generate(r.Context(), profile, nil)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, plan)
}

// handleGenerateStream runs one generation and streams its progress as Server-Sent Events.
// Failures detected before the first event are reported as plain JSON errors.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	profile, err := decodeProfile(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	logger := zerolog.Ctx(r.Context())

	var (
		sse    *SSEWriter
		sseErr error
		runID  string
	)
	onProgress := func(event pipeline.ProgressEvent) {
		if sse == nil && sseErr == nil {
			sse, sseErr = NewSSEWriter(w)
		}
		if sse == nil {
			return
		}
		runID = event.RunID
		// The plan is sent as its own event once the session has accepted it
		if event.Plan != nil {
			return
		}
		if err := sse.WriteEvent(EventProgress, event); err != nil {
			logger.Debug().Err(err).Msg("error writing SSE event")
		}
	}

	plan, err := s.session.Generate(r.Context(), profile, onProgress)

	if sse == nil {
		if sseErr != nil {
			s.errorResponse(w, http.StatusInternalServerError, sseErr.Error())
			return
		}
		s.fail(w, r, err)
		return
	}

	if err != nil {
		logger.Warn().Err(err).Str("run_id", runID).Msg("streamed generation failed")
		sse.WriteError(PublicMessage(err, s.catalog))
		sse.WriteComplete(runID, string(pipeline.StatusFailed))
		return
	}

	if err := sse.WriteEvent(EventPlan, plan); err != nil {
		logger.Debug().Err(err).Msg("error writing SSE plan event")
	}
	sse.WriteComplete(runID, "completed")
}

// handleCurrent returns the session snapshot: status, latest progress and current plan
func (s *Server) handleCurrent(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Snapshot())
}

// handleGetSaved returns the saved plan
func (s *Server) handleGetSaved(w http.ResponseWriter, r *http.Request) {
	saved, err := s.store.Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if saved == nil {
		s.errorResponse(w, http.StatusNotFound, "no saved plan")
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

// handleSave persists the plan in the body, or the session's current plan when the body is empty
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	plan, err := s.planFromRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !plan.WeeklyPlan.Complete() {
		s.fail(w, r, &ErrValidation{
			Field:   "weeklyPlan",
			Message: fmt.Sprintf("must contain %d days, got %d", types.DaysPerWeek, len(plan.WeeklyPlan)),
		})
		return
	}

	if err := s.store.Save(r.Context(), types.NewSavedPlan(plan)); err != nil {
		s.fail(w, r, err)
		return
	}
	s.session.Adopt(plan)

	s.jsonResponse(w, http.StatusOK, SaveResponse{Status: "saved", Message: s.catalog.Saved})
}

// handleClearSaved removes the saved plan
func (s *Server) handleClearSaved(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExport renders the plan in the body, or the current plan, as a PDF attachment
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	plan, err := s.planFromRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	export, err := s.exporter.Export(r.Context(), plan)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data, err := export.Document.Bytes()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("error writing PDF response")
	}
}

// fail logs err and writes the matching status with a client-safe message
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	logger := zerolog.Ctx(r.Context())
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Int("status", status).Msg("request failed")

	s.errorResponse(w, status, PublicMessage(err, s.catalog))
}

// planFromRequest decodes an optional PlanResponse body, falling back to the session's plan.
func (s *Server) planFromRequest(w http.ResponseWriter, r *http.Request) (*types.PlanResponse, error) {
	var plan types.PlanResponse
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&plan)
	switch {
	case errors.Is(err, io.EOF):
		current := s.session.Snapshot().Result
		if current == nil {
			return nil, errNoPlan
		}
		return current, nil
	case err != nil:
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	case len(plan.WeeklyPlan) == 0:
		return nil, errNoPlan
	}
	return &plan, nil
}

// decodeProfile reads a profile body on top of the form defaults.
func decodeProfile(w http.ResponseWriter, r *http.Request) (types.UserProfile, error) {
	profile := types.DefaultProfile()
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&profile); err != nil {
		if errors.Is(err, io.EOF) {
			return profile, &ErrValidation{Field: "body", Message: "a profile is required"}
		}
		return profile, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return profile, nil
}
