package validation

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/deposit-validator/internal/service"
	"github.com/carson-networks/deposit-validator/internal/storage"
)

// GetRunInput is the Huma input for fetching a run.
type GetRunInput struct {
	ID string `path:"id" doc:"Run UUID"`
}

// GetRunResponseBody is the response body for fetching a run.
type GetRunResponseBody struct {
	Run Run `json:"run"`
}

// GetRunOutput is the Huma output for fetching a run.
type GetRunOutput struct {
	Body GetRunResponseBody
}

// runGetter is the interface for fetching runs.
type runGetter interface {
	GetRun(ctx context.Context, id uuid.UUID) (*storage.Run, error)
}

// GetRunHandler handles GET /v1/validation/{id}.
type GetRunHandler struct {
	ValidationService runGetter
}

// NewGetRunHandler creates a new GetRunHandler.
func NewGetRunHandler(svc runGetter) *GetRunHandler {
	return &GetRunHandler{ValidationService: svc}
}

// Register registers the get run endpoint with the Huma API.
func (h *GetRunHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-validation-run",
		Method:      http.MethodGet,
		Path:        "/v1/validation/{id}",
		Summary:     "Get a validation run",
		Description: "Returns the run state and, when complete, the report.",
		Tags:        []string{"Validation"},
	}, h.handle)
}

func (h *GetRunHandler) handle(ctx context.Context, input *GetRunInput) (*GetRunOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid run id", err)
	}

	run, err := h.ValidationService.GetRun(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrRunNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "run not found", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get run", err)
	}

	return &GetRunOutput{Body: GetRunResponseBody{Run: runToAPI(run)}}, nil
}
