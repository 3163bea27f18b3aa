package refdata

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ExportProvider fetches the reference ledger from a spreadsheet CSV export
// URL (a Google Sheets export link in the original deployment).
type ExportProvider struct {
	URL    string
	Client *http.Client
}

// NewExportProvider creates an ExportProvider with a bounded-timeout client.
func NewExportProvider(url string) *ExportProvider {
	return &ExportProvider{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads and decodes the export. Any failure is a *FetchError.
func (p *ExportProvider) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, &FetchError{Source: p.URL, Err: err}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: p.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Source: p.URL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	records, err := DecodeCSV(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: p.URL, Err: err}
	}

	return records, nil
}
