// Package progress infers human-readable generation progress from a partially streamed weekly plan.
//
// Progress is a best-effort proxy for where the model currently is in the document.
// It is never used as a correctness signal; the final text is validated separately.
package progress

import (
	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/types"
)

// Stage identifies which phase of a generation attempt a progress value belongs to.
type Stage string

// Stages of a generation attempt, in order.
const (
	StageStarting   Stage = "starting"
	StageDay        Stage = "day"
	StageValidating Stage = "validating"
)

// Progress is the state reported to the caller. Day is 0 before the first day marker
// and k while day k (1-based) is being produced.
type Progress struct {
	Day     int    `json:"day"`
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

// Estimator turns the accumulated stream text into progress.
//
// Update receives everything streamed so far and reports whether progress advanced.
// When it did not, the returned Progress is the unchanged current value.
type Estimator interface {
	Update(fullText string) (Progress, bool)
}

// Strategy names an Estimator implementation.
type Strategy string

// Available strategies.
const (
	StrategyMarker Strategy = "marker"
	StrategyPath   Strategy = "path"
)

// New returns a fresh estimator for one generation attempt.
func New(strategy Strategy, catalog messages.Catalog) Estimator {
	if strategy == StrategyPath {
		return NewPathCounter(catalog)
	}
	return NewMarkerCounter(catalog)
}

// Starting is the progress reported before the first chunk arrives.
func Starting(catalog messages.Catalog) Progress {
	return Progress{Day: 0, Stage: StageStarting, Message: catalog.Starting}
}

// Validating is the progress reported once the stream is exhausted.
func Validating(catalog messages.Catalog, day int) Progress {
	return Progress{Day: day, Stage: StageValidating, Message: catalog.Validating}
}

// tracker holds the monotonic day counter shared by all strategies.
type tracker struct {
	catalog messages.Catalog
	current Progress
}

func newTracker(catalog messages.Catalog) tracker {
	return tracker{catalog: catalog, current: Starting(catalog)}
}

// advance moves to found when it grows and stays within the weekday table.
// Counts beyond the table are ignored rather than treated as errors.
func (t *tracker) advance(found int) (Progress, bool) {
	if found <= t.current.Day || found > types.DaysPerWeek {
		return t.current, false
	}
	t.current = Progress{
		Day:     found,
		Stage:   StageDay,
		Message: t.catalog.DayMessage(found),
	}
	return t.current, true
}
