package validation

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/deposit-validator/internal/storage"
)

// ListRunsInput is the Huma input for listing runs.
type ListRunsInput struct {
	Limit int `query:"limit" minimum:"0" maximum:"100" doc:"Maximum number of runs to return, 0 for all"`
}

// ListRunsResponseBody is the response body for listing runs.
type ListRunsResponseBody struct {
	Runs []Run `json:"runs" doc:"Runs newest-first"`
}

// ListRunsOutput is the Huma output for listing runs.
type ListRunsOutput struct {
	Body ListRunsResponseBody
}

// runLister is the interface for listing runs.
type runLister interface {
	ListRuns(ctx context.Context, limit int) ([]*storage.Run, error)
}

// ListRunsHandler handles GET /v1/validation.
type ListRunsHandler struct {
	ValidationService runLister
}

// NewListRunsHandler creates a new ListRunsHandler.
func NewListRunsHandler(svc runLister) *ListRunsHandler {
	return &ListRunsHandler{ValidationService: svc}
}

// Register registers the list runs endpoint with the Huma API.
func (h *ListRunsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-validation-runs",
		Method:      http.MethodGet,
		Path:        "/v1/validation",
		Summary:     "List validation runs",
		Description: "Returns runs newest-first. Run bodies omit records; fetch a run by ID for the full report.",
		Tags:        []string{"Validation"},
	}, h.handle)
}

func (h *ListRunsHandler) handle(ctx context.Context, input *ListRunsInput) (*ListRunsOutput, error) {
	runs, err := h.ValidationService.ListRuns(ctx, input.Limit)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list runs", err)
	}

	resp := ListRunsResponseBody{Runs: make([]Run, len(runs))}
	for i, run := range runs {
		api := runToAPI(run)
		// Listing stays light; the per-run endpoint carries the rows.
		api.Records = nil
		resp.Runs[i] = api
	}

	return &ListRunsOutput{Body: resp}, nil
}
