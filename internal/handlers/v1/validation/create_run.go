package validation

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/deposit-validator/internal/logging"
	"github.com/carson-networks/deposit-validator/internal/refdata"
	"github.com/carson-networks/deposit-validator/internal/schema"
	"github.com/carson-networks/deposit-validator/internal/storage"
	"github.com/carson-networks/deposit-validator/internal/tabular"
)

// CreateRunBody is the request body for starting a validation run.
type CreateRunBody struct {
	Columns []string   `json:"columns" minItems:"1" doc:"Header row of the upload, raw column names"`
	Rows    [][]string `json:"rows" doc:"Data rows, cell values as strings"`
}

// CreateRunInput is the Huma input for starting a validation run.
type CreateRunInput struct {
	Body CreateRunBody
}

// CreateRunResponseBody is the response body for starting a validation run.
type CreateRunResponseBody struct {
	Run Run `json:"run" doc:"The created run; state complete when processed, awaiting_mapping when columns need mapping"`
}

// CreateRunOutput is the Huma output for starting a validation run.
type CreateRunOutput struct {
	Status int
	Body   CreateRunResponseBody
}

// runCreator is the interface for starting validation runs.
type runCreator interface {
	CreateRun(ctx context.Context, upload *tabular.Table) (*storage.Run, error)
}

// CreateRunHandler handles POST /v1/validation.
type CreateRunHandler struct {
	ValidationService runCreator
}

// NewCreateRunHandler creates a new CreateRunHandler.
func NewCreateRunHandler(svc runCreator) *CreateRunHandler {
	return &CreateRunHandler{ValidationService: svc}
}

// Register registers the create run endpoint with the Huma API.
func (h *CreateRunHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-validation-run",
		Method:      http.MethodPost,
		Path:        "/v1/validation",
		Summary:     "Start a validation run",
		Description: "Validates uploaded deposit rows against the reference ledger. When required columns are missing, the run parks awaiting a column mapping.",
		Tags:        []string{"Validation"},
	}, h.handle)
}

func (h *CreateRunHandler) handle(ctx context.Context, input *CreateRunInput) (*CreateRunOutput, error) {
	logData := logging.GetLogData(ctx)

	upload := &tabular.Table{
		Columns: input.Body.Columns,
		Rows:    input.Body.Rows,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createRunMs")
	}
	run, err := h.ValidationService.CreateRun(ctx, upload)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, runErrorToHuma(err)
	}

	if logData != nil {
		logData.AddData("runID", run.ID.String())
		logData.AddData("runState", string(run.State))
	}

	status := http.StatusCreated
	if run.State == storage.RunStateAwaitingMapping {
		status = http.StatusAccepted
	}

	return &CreateRunOutput{
		Status: status,
		Body:   CreateRunResponseBody{Run: runToAPI(run)},
	}, nil
}

// runErrorToHuma maps service errors onto HTTP statuses: unreadable uploads
// are the client's problem, an unreachable reference ledger is not.
func runErrorToHuma(err error) error {
	var parseErr *schema.ParseError
	if errors.As(err, &parseErr) {
		return huma.NewError(http.StatusUnprocessableEntity, "upload could not be parsed", err)
	}

	var fetchErr *refdata.FetchError
	if errors.As(err, &fetchErr) {
		return huma.NewError(http.StatusBadGateway, "reference data unavailable", err)
	}

	return huma.NewError(http.StatusInternalServerError, "validation run failed", err)
}
