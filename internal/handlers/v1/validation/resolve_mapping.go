package validation

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/deposit-validator/internal/logging"
	"github.com/carson-networks/deposit-validator/internal/service"
	"github.com/carson-networks/deposit-validator/internal/storage"
)

// ResolveMappingBody is the request body for resolving a column mapping.
type ResolveMappingBody struct {
	Mapping map[string]string `json:"mapping" doc:"Canonical column name -> normalized source column name, one entry per missing column"`
}

// ResolveMappingInput is the Huma input for resolving a column mapping.
type ResolveMappingInput struct {
	ID   string `path:"id" doc:"Run UUID"`
	Body ResolveMappingBody
}

// ResolveMappingResponseBody is the response body for resolving a mapping.
type ResolveMappingResponseBody struct {
	Run Run `json:"run" doc:"The run after applying the mapping"`
}

// ResolveMappingOutput is the Huma output for resolving a column mapping.
type ResolveMappingOutput struct {
	Status int
	Body   ResolveMappingResponseBody
}

// mappingResolver is the interface for resuming a parked run.
type mappingResolver interface {
	ResolveMapping(ctx context.Context, id uuid.UUID, mapping map[string]string) (*storage.Run, error)
}

// ResolveMappingHandler handles POST /v1/validation/{id}/mapping.
type ResolveMappingHandler struct {
	ValidationService mappingResolver
}

// NewResolveMappingHandler creates a new ResolveMappingHandler.
func NewResolveMappingHandler(svc mappingResolver) *ResolveMappingHandler {
	return &ResolveMappingHandler{ValidationService: svc}
}

// Register registers the resolve mapping endpoint with the Huma API.
func (h *ResolveMappingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "resolve-validation-mapping",
		Method:      http.MethodPost,
		Path:        "/v1/validation/{id}/mapping",
		Summary:     "Resolve column mapping",
		Description: "Supplies the column mapping for a run awaiting one and resumes processing.",
		Tags:        []string{"Validation"},
	}, h.handle)
}

func (h *ResolveMappingHandler) handle(ctx context.Context, input *ResolveMappingInput) (*ResolveMappingOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid run id", err)
	}

	run, err := h.ValidationService.ResolveMapping(ctx, id, input.Body.Mapping)
	if err != nil {
		if errors.Is(err, service.ErrRunNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "run not found", err)
		}
		if errors.Is(err, service.ErrInvalidRunState) {
			return nil, huma.NewError(http.StatusConflict, "run is not awaiting a mapping", err)
		}
		return nil, runErrorToHuma(err)
	}

	if logData != nil {
		logData.AddData("runID", run.ID.String())
		logData.AddData("runState", string(run.State))
	}

	status := http.StatusOK
	if run.State == storage.RunStateAwaitingMapping {
		// Mapping did not cover every missing column; still parked.
		status = http.StatusAccepted
	}

	return &ResolveMappingOutput{
		Status: status,
		Body:   ResolveMappingResponseBody{Run: runToAPI(run)},
	}, nil
}
