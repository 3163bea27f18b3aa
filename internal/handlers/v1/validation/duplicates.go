package validation

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/deposit-validator/internal/dedup"
	"github.com/carson-networks/deposit-validator/internal/service"
)

// DuplicateRow is the API model for one flagged duplicate row.
type DuplicateRow struct {
	Row      int    `json:"row" doc:"Original row index in the upload"`
	Name     string `json:"name"`
	Date     string `json:"date" doc:"Calendar date YYYY-MM-DD"`
	ClientID string `json:"clientID"`
	Deposit  string `json:"deposit" doc:"Decimal amount"`
	Tag      string `json:"tag" doc:"Original or Dropped Duplicate"`
}

// ListDuplicatesInput is the Huma input for the duplicate preview.
type ListDuplicatesInput struct {
	ID string `path:"id" doc:"Run UUID"`
}

// ListDuplicatesResponseBody is the response body for the duplicate preview.
type ListDuplicatesResponseBody struct {
	Duplicates []DuplicateRow `json:"duplicates" doc:"Flagged rows in original order"`
}

// ListDuplicatesOutput is the Huma output for the duplicate preview.
type ListDuplicatesOutput struct {
	Body ListDuplicatesResponseBody
}

// duplicatePreviewer is the interface for fetching a run's duplicate rows.
type duplicatePreviewer interface {
	DuplicatePreview(ctx context.Context, id uuid.UUID) ([]dedup.FlaggedRow, error)
}

// ListDuplicatesHandler handles GET /v1/validation/{id}/duplicates.
type ListDuplicatesHandler struct {
	ValidationService duplicatePreviewer
}

// NewListDuplicatesHandler creates a new ListDuplicatesHandler.
func NewListDuplicatesHandler(svc duplicatePreviewer) *ListDuplicatesHandler {
	return &ListDuplicatesHandler{ValidationService: svc}
}

// Register registers the duplicate preview endpoint with the Huma API.
func (h *ListDuplicatesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-validation-duplicates",
		Method:      http.MethodGet,
		Path:        "/v1/validation/{id}/duplicates",
		Summary:     "Preview duplicate rows",
		Description: "Returns the upload rows flagged as duplicates, each tagged Original or Dropped Duplicate.",
		Tags:        []string{"Validation"},
	}, h.handle)
}

func (h *ListDuplicatesHandler) handle(ctx context.Context, input *ListDuplicatesInput) (*ListDuplicatesOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid run id", err)
	}

	flagged, err := h.ValidationService.DuplicatePreview(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrRunNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "run not found", err)
		}
		if errors.Is(err, service.ErrInvalidRunState) {
			return nil, huma.NewError(http.StatusConflict, "run has no report yet", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list duplicates", err)
	}

	resp := ListDuplicatesResponseBody{Duplicates: make([]DuplicateRow, len(flagged))}
	for i, f := range flagged {
		resp.Duplicates[i] = DuplicateRow{
			Row:      f.Record.Row,
			Name:     f.Record.Name,
			Date:     f.Record.Date.String(),
			ClientID: f.Record.ClientID,
			Deposit:  f.Record.Deposit.String(),
			Tag:      string(f.Tag),
		}
	}

	return &ListDuplicatesOutput{Body: resp}, nil
}
