package recorder

import "YieldSentinel/internal/model"

// Recorder persists screening-run history for later analysis.
type Recorder interface {
	RecordRun(report *model.RunReport) error
	Close() error
}
