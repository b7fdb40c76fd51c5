// Package rendering turns a weekly plan into printable output: an HTML view of the plan
// and a paginated PDF built from a rasterized snapshot of that view.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing the plan template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure while assembling the PDF document
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// LayoutError reports a page geometry that leaves no room for content
type LayoutError struct {
	Message string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout error: %s", e.Message)
}

// ExportError is returned by the exporter for any failure between the plan view and the
// written document. The plan itself is never affected by it.
type ExportError struct {
	Stage string
	Cause error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed during %s: %v", e.Stage, e.Cause)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
