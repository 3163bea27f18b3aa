package validation

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/deposit-validator/internal/service"
)

// DownloadReportInput is the Huma input for the CSV export.
type DownloadReportInput struct {
	ID string `path:"id" doc:"Run UUID"`
}

// DownloadReportOutput is the Huma output for the CSV export.
type DownloadReportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// reportWriter is the interface for streaming a run's CSV export.
type reportWriter interface {
	WriteReportCSV(ctx context.Context, id uuid.UUID, w io.Writer) error
}

// DownloadReportHandler handles GET /v1/validation/{id}/report.
type DownloadReportHandler struct {
	ValidationService reportWriter
}

// NewDownloadReportHandler creates a new DownloadReportHandler.
func NewDownloadReportHandler(svc reportWriter) *DownloadReportHandler {
	return &DownloadReportHandler{ValidationService: svc}
}

// Register registers the report download endpoint with the Huma API.
func (h *DownloadReportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "download-validation-report",
		Method:      http.MethodGet,
		Path:        "/v1/validation/{id}/report",
		Summary:     "Download the processed report",
		Description: "Returns the final output table as CSV.",
		Tags:        []string{"Validation"},
	}, h.handle)
}

func (h *DownloadReportHandler) handle(ctx context.Context, input *DownloadReportInput) (*DownloadReportOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid run id", err)
	}

	var buf bytes.Buffer
	if err := h.ValidationService.WriteReportCSV(ctx, id, &buf); err != nil {
		if errors.Is(err, service.ErrRunNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "run not found", err)
		}
		if errors.Is(err, service.ErrInvalidRunState) {
			return nil, huma.NewError(http.StatusConflict, "run has no report yet", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to export report", err)
	}

	return &DownloadReportOutput{
		ContentType:        "text/csv",
		ContentDisposition: `attachment; filename="processed_data.csv"`,
		Body:               buf.Bytes(),
	}, nil
}
