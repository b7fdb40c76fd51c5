package progress

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/nutriplan/internal/messages"
)

// PathCounter estimates progress by tokenizing the partial document and counting
// "day" keys that belong directly to elements of the top-level weeklyPlan array.
// It ignores whitespace differences and marker-like text inside string values.
type PathCounter struct {
	tracker
}

// NewPathCounter creates a PathCounter starting at day 0.
func NewPathCounter(catalog messages.Catalog) *PathCounter {
	return &PathCounter{tracker: newTracker(catalog)}
}

// Update implements Estimator.
func (c *PathCounter) Update(fullText string) (Progress, bool) {
	return c.advance(CountDayKeys(fullText))
}

type frame struct {
	array     bool
	key       string
	expectKey bool
}

// CountDayKeys counts weeklyPlan[i].day keys in a possibly truncated document.
// Tokenizing stops at the first truncation or syntax error and the count so far is returned.
func CountDayKeys(text string) int {
	dec := json.NewDecoder(strings.NewReader(text))
	var stack []frame
	count := 0

	for {
		tok, err := dec.Token()
		if err != nil {
			return count
		}

		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{':
				stack = append(stack, frame{expectKey: true})
			case '[':
				stack = append(stack, frame{array: true})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone(stack)
			}
			continue
		}

		if len(stack) == 0 {
			continue
		}
		top := &stack[len(stack)-1]
		if key, ok := tok.(string); ok && !top.array && top.expectKey {
			top.key = key
			top.expectKey = false
			if key == "day" && inPlanEntry(stack) {
				count++
			}
			continue
		}
		valueDone(stack)
	}
}

// valueDone marks that the enclosing object now expects its next key.
func valueDone(stack []frame) {
	if len(stack) == 0 {
		return
	}
	if top := &stack[len(stack)-1]; !top.array {
		top.expectKey = true
	}
}

// inPlanEntry reports whether the innermost frame is an element of the root weeklyPlan array.
func inPlanEntry(stack []frame) bool {
	return len(stack) == 3 &&
		!stack[0].array && stack[0].key == "weeklyPlan" &&
		stack[1].array &&
		!stack[2].array
}
