package logging

import (
	"context"
)

type logDataContextKey struct{}

// WithLogData returns a context carrying the given LogData.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataContextKey{}, logData)
}

// GetLogData returns the LogData attached to the context, or nil when absent.
// Handlers must tolerate a nil result (humatest contexts carry no LogData).
func GetLogData(ctx context.Context) *LogData {
	logData, ok := ctx.Value(logDataContextKey{}).(*LogData)
	if !ok {
		return nil
	}
	return logData
}
