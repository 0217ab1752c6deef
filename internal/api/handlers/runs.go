package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/goosebones/pokemon/internal/lister"
	domain "github.com/goosebones/pokemon/pkg/types"
)

// RunController starts batch runs and reports on them. *lister.Scheduler
// satisfies it.
type RunController interface {
	Trigger() error
	Running() bool
	Halted() bool
	Last(ctx context.Context) (*domain.RunSummary, error)
}

// RunsHandler exposes batch runs over HTTP.
type RunsHandler struct {
	runs RunController
}

// NewRunsHandler creates a new RunsHandler.
func NewRunsHandler(rc RunController) *RunsHandler {
	return &RunsHandler{runs: rc}
}

// TriggerRunOutput is the response body for starting a run.
type TriggerRunOutput struct {
	Body struct {
		Status string `json:"status" example:"run started" doc:"Trigger status"`
	}
}

// RunStatusOutput is the response body for the run status endpoint.
type RunStatusOutput struct {
	Body struct {
		Running bool `json:"running" doc:"Whether a batch run is in progress"`
		Halted  bool `json:"halted"  doc:"Whether scheduled runs are suspended after a fee breaker trip; a manual run resumes them"`
	}
}

// LatestRunOutput is the response body for the latest run endpoint.
type LatestRunOutput struct {
	Body struct {
		Run   *domain.RunSummary `json:"run"             doc:"Counters, fees and per-row outcomes"`
		Error string             `json:"error,omitempty" doc:"Error that aborted the run, if any"`
	}
}

// TriggerRun starts a batch run in the background.
func (h *RunsHandler) TriggerRun(_ context.Context, _ *struct{}) (*TriggerRunOutput, error) {
	if err := h.runs.Trigger(); err != nil {
		if errors.Is(err, lister.ErrRunInProgress) {
			return nil, huma.Error409Conflict("a run is already in progress")
		}
		return nil, huma.Error500InternalServerError("starting run failed: " + err.Error())
	}

	resp := &TriggerRunOutput{}
	resp.Body.Status = "run started"
	return resp, nil
}

// RunStatus reports whether a run is in progress and whether scheduled runs
// are halted.
func (h *RunsHandler) RunStatus(_ context.Context, _ *struct{}) (*RunStatusOutput, error) {
	resp := &RunStatusOutput{}
	resp.Body.Running = h.runs.Running()
	resp.Body.Halted = h.runs.Halted()
	return resp, nil
}

// LatestRun returns the summary of the most recent run.
func (h *RunsHandler) LatestRun(ctx context.Context, _ *struct{}) (*LatestRunOutput, error) {
	sum, err := h.runs.Last(ctx)
	if sum == nil {
		if err != nil {
			return nil, huma.Error500InternalServerError("last run failed: " + err.Error())
		}
		return nil, huma.Error404NotFound("no runs recorded")
	}

	resp := &LatestRunOutput{}
	resp.Body.Run = sum
	if err != nil {
		resp.Body.Error = err.Error()
	}
	return resp, nil
}

// RegisterRunRoutes registers batch run endpoints with the Huma API.
func RegisterRunRoutes(api huma.API, h *RunsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "trigger-run",
		Method:        http.MethodPost,
		Path:          "/api/v1/runs",
		Summary:       "Start a batch run",
		Description:   "Lists every unprocessed row in the background and resumes scheduled runs halted by the fee breaker. Returns 409 if a run is already in progress.",
		Tags:          []string{"runs"},
		DefaultStatus: http.StatusAccepted,
		Errors:        []int{http.StatusConflict, http.StatusInternalServerError},
	}, h.TriggerRun)

	huma.Register(api, huma.Operation{
		OperationID: "get-run-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/runs/status",
		Summary:     "Get batch run status",
		Tags:        []string{"runs"},
	}, h.RunStatus)

	huma.Register(api, huma.Operation{
		OperationID: "get-latest-run",
		Method:      http.MethodGet,
		Path:        "/api/v1/runs/latest",
		Summary:     "Get the latest run summary",
		Description: "Returns the most recent run's counters, fees and per-row outcomes.",
		Tags:        []string{"runs"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.LatestRun)
}
