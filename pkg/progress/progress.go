// Package progress provides the progress side-channel used by long scans.
package progress

import (
	"github.com/lerenn/asset-cleaner/pkg/logger"
)

// Stage identifies the long running operation emitting progress.
type Stage string

// Known stages.
const (
	StageBuild     Stage = "build"
	StageReferrers Stage = "referrers"
	StageDeepScan  Stage = "deep-scan"
)

// Event is a progress checkpoint.
type Event struct {
	Stage   Stage
	Done    int
	Total   int
	Current string // path of the last processed item, may be empty
}

// Percent returns the completion ratio of the event in percent.
func (e Event) Percent() float64 {
	if e.Total <= 0 {
		return 100
	}
	return float64(e.Done) / float64(e.Total) * 100
}

// Reporter receives progress events. Implementations must return quickly:
// they are called inline from the scanning loop.
type Reporter interface {
	Report(event Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(event Event)

// Report calls f(event).
func (f ReporterFunc) Report(event Event) {
	f(event)
}

type noopReporter struct{}

// NewNoopReporter creates a reporter that drops every event.
func NewNoopReporter() Reporter {
	return noopReporter{}
}

func (noopReporter) Report(Event) {}

type loggerReporter struct {
	logger logger.Logger
}

// NewLoggerReporter creates a reporter that logs every event.
func NewLoggerReporter(l logger.Logger) Reporter {
	return &loggerReporter{logger: l}
}

// Report logs the event as "<stage>: done/total (pct%)".
func (r *loggerReporter) Report(event Event) {
	r.logger.Logf("%s: %d/%d (%.0f%%)", event.Stage, event.Done, event.Total, event.Percent())
}

// OrNoop returns r, or a noop reporter when r is nil.
func OrNoop(r Reporter) Reporter {
	if r == nil {
		return NewNoopReporter()
	}
	return r
}
