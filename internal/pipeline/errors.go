package pipeline

import (
	"errors"
	"fmt"

	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/validation"
)

// ErrGenerationInFlight is returned when a session is asked to start a second attempt
// while one is still streaming or validating.
var ErrGenerationInFlight = errors.New("a plan generation is already in progress")

// ErrSequenceConsumed is yielded when an event sequence is iterated a second time.
var ErrSequenceConsumed = errors.New("event sequence already consumed")

// TransportError represents a failure of the chunk source: it could not be opened,
// or it failed mid-stream.
type TransportError struct {
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// InvalidProfileError is returned before any request is made when the profile
// is outside the accepted ranges.
type InvalidProfileError struct {
	Cause error
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %v", e.Cause)
}

func (e *InvalidProfileError) Unwrap() error {
	return e.Cause
}

// IsGenerationFailure reports whether err ended a generation attempt, as opposed
// to a caller mistake such as a concurrent submission.
func IsGenerationFailure(err error) bool {
	var transport *TransportError
	var malformed *validation.MalformedResponseError
	return errors.As(err, &transport) || errors.As(err, &malformed)
}

// UserMessage converts any generation error into the single localized message shown to the user.
// Transport and malformed-response failures share one message.
func UserMessage(err error, catalog messages.Catalog) string {
	if err == nil {
		return ""
	}
	var invalid *InvalidProfileError
	if errors.As(err, &invalid) {
		return invalid.Error()
	}
	if errors.Is(err, ErrGenerationInFlight) {
		return err.Error()
	}
	return catalog.GenerationFailed
}
