//nolint:revive // types is a standard Go package name pattern
package types

// Severity values used by plan checks.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Violation represents a single finding about a generated plan
type Violation struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Details  string `json:"details"`
	Day      string `json:"day,omitempty"`
	Field    string `json:"field,omitempty"`
}

// Violations represents a collection of plan findings
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any finding has error severity.
func (v *Violations) HasErrors() bool {
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}
