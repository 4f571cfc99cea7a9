// Package track is the error-tracking collaborator contract: a passive
// sink for failures that exhausted their retries.
package track

import "go.uber.org/zap"

type Tracker interface {
	CaptureError(err error, context map[string]any)
}

// LogTracker reports captured errors through the structured logger. A
// hosted error tracker would slot in behind the same interface.
type LogTracker struct {
	log *zap.SugaredLogger
}

func NewLogTracker(log *zap.SugaredLogger) *LogTracker {
	return &LogTracker{log: log}
}

func (t *LogTracker) CaptureError(err error, context map[string]any) {
	fields := make([]any, 0, len(context)*2+2)
	fields = append(fields, "error", err)
	for k, v := range context {
		fields = append(fields, k, v)
	}
	t.log.Errorw("captured error", fields...)
}

// NopTracker discards everything, for tests and benign paths.
type NopTracker struct{}

func (NopTracker) CaptureError(error, map[string]any) {}
