package refdata

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSProvider fetches the reference ledger CSV from a Cloud Storage object.
type GCSProvider struct {
	Bucket string
	Object string
	// PublicBucket skips credential lookup; reads go out unauthenticated.
	PublicBucket bool
}

// Fetch downloads and decodes the object. Any failure is a *FetchError.
func (p *GCSProvider) Fetch(ctx context.Context) ([]Record, error) {
	source := fmt.Sprintf("gs://%s/%s", p.Bucket, p.Object)

	var opts []option.ClientOption
	if p.PublicBucket {
		opts = append(opts, option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("create storage client: %w", err)}
	}
	defer client.Close()

	reader, err := client.Bucket(p.Bucket).Object(p.Object).NewReader(ctx)
	if err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("open object reader: %w", err)}
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("read object: %w", err)}
	}

	records, err := DecodeCSV(bytes.NewReader(data))
	if err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}

	return records, nil
}
