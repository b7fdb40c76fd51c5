// Package schemas provides JSON Schema validation for nutriplan documents.
package schemas

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	contracts "github.com/jonathan/nutriplan/schemas"
)

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a dotted field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError reports a schema that cannot be compiled or a document that cannot be read.
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// compiled holds a schema compiled on first use.
type compiled struct {
	name string
	load func() (*gojsonschema.Schema, error)
}

func newCompiled(name, content string) compiled {
	return compiled{
		name: name,
		load: sync.OnceValues(func() (*gojsonschema.Schema, error) {
			return gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
		}),
	}
}

var (
	planResponseSchema = newCompiled("plan_response.schema.json", contracts.PlanResponse)
	userProfileSchema  = newCompiled("user_profile.schema.json", contracts.UserProfile)
)

// ValidatePlanResponse validates a generated plan document against the plan response schema.
func ValidatePlanResponse(jsonContent string) error {
	return planResponseSchema.validate(gojsonschema.NewStringLoader(jsonContent))
}

// ValidateUserProfile validates a profile document against the user profile schema.
func ValidateUserProfile(jsonContent string) error {
	return userProfileSchema.validate(gojsonschema.NewStringLoader(jsonContent))
}

// ValidateJSON validates the JSON file at jsonPath against schemaContent.
func ValidateJSON(schemaContent, jsonPath string) error {
	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	c := compiled{
		name: "(inline)",
		load: func() (*gojsonschema.Schema, error) {
			return gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
		},
	}
	return c.validate(gojsonschema.NewReferenceLoader("file://" + jsonAbsPath))
}

func (c compiled) validate(document gojsonschema.JSONLoader) error {
	schema, err := c.load()
	if err != nil {
		return &SchemaLoadError{Schema: c.name, Message: "failed to compile", Cause: err}
	}

	result, err := schema.Validate(document)
	if err != nil {
		// Unreadable or unparseable document
		return &SchemaLoadError{Schema: c.name, Message: "failed to load document", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
