package progress

import (
	"regexp"

	"github.com/jonathan/nutriplan/internal/messages"
)

// dayMarker matches the key that opens each daily entry. Whitespace before the colon is tolerated.
var dayMarker = regexp.MustCompile(`"day"\s*:`)

// MarkerCounter estimates progress by counting day markers in the raw text.
type MarkerCounter struct {
	tracker
}

// NewMarkerCounter creates a MarkerCounter starting at day 0.
func NewMarkerCounter(catalog messages.Catalog) *MarkerCounter {
	return &MarkerCounter{tracker: newTracker(catalog)}
}

// Update implements Estimator.
func (c *MarkerCounter) Update(fullText string) (Progress, bool) {
	return c.advance(CountMarkers(fullText))
}

// CountMarkers returns the number of day markers in text.
func CountMarkers(text string) int {
	return len(dayMarker.FindAllStringIndex(text, -1))
}
