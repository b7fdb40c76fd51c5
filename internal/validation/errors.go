// Package validation checks generated nutrition plans before they reach the caller.
package validation

import "fmt"

// Reason classifies why a response was rejected.
type Reason string

// Rejection reasons.
const (
	ReasonUnparseable       Reason = "unparseable"
	ReasonMissingWeeklyPlan Reason = "missing_weekly_plan"
	ReasonMissingSleep      Reason = "missing_sleep_recommendation"
	ReasonNotSequence       Reason = "weekly_plan_not_sequence"
	ReasonWrongDayCount     Reason = "wrong_day_count"
	ReasonInvalidEntry      Reason = "invalid_entry"
	ReasonSchema            Reason = "schema_violation"
	ReasonDayLabel          Reason = "day_label_mismatch"
)

// MalformedResponseError reports a response that does not parse or breaks the plan shape.
// No partial plan is ever returned alongside it.
type MalformedResponseError struct {
	Reason  Reason
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response (%s): %s: %v", e.Reason, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed response (%s): %s", e.Reason, e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

func malformed(reason Reason, cause error, format string, args ...any) *MalformedResponseError {
	return &MalformedResponseError{
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}
