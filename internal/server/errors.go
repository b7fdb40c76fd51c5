package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/pipeline"
	"github.com/jonathan/nutriplan/internal/rendering"
	"github.com/jonathan/nutriplan/internal/store"
)

// errNoPlan is returned when an operation needs a plan and none was given or generated.
var errNoPlan = errors.New("no plan available")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var profileErr *pipeline.InvalidProfileError

	switch {
	case errors.Is(err, pipeline.ErrGenerationInFlight):
		return http.StatusConflict
	case errors.As(err, &validationErr), errors.As(err, &profileErr):
		return http.StatusBadRequest
	case errors.Is(err, errNoPlan):
		return http.StatusNotFound
	case pipeline.IsGenerationFailure(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage maps err to the text shown to the client. Internal details stay in the logs.
func PublicMessage(err error, catalog messages.Catalog) string {
	var validationErr *ErrValidation
	var exportErr *rendering.ExportError
	var persistenceErr *store.PersistenceError

	switch {
	case errors.As(err, &validationErr), errors.Is(err, errNoPlan):
		return err.Error()
	case errors.As(err, &exportErr):
		return catalog.ExportFailed
	case errors.As(err, &persistenceErr):
		return catalog.SaveFailed
	default:
		return pipeline.UserMessage(err, catalog)
	}
}
