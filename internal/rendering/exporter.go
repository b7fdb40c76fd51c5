package rendering

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/types"
)

// Rasterizer snapshots the element matched by selector in an HTML page into a bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, page, selector string) (Bitmap, error)
}

// ExportRecorder receives the outcome of every export.
type ExportRecorder interface {
	ExportFinished(outcome string)
}

// Export outcomes.
const (
	ExportSuccess = "success"
	ExportFailure = "failure"
)

// Export is a finished document ready to be written.
type Export struct {
	FileName string
	Document *Document
}

// Exporter renders a plan, rasterizes it and paginates the snapshot into a PDF.
type Exporter struct {
	rasterizer Rasterizer
	catalog    messages.Catalog
	gridWidth  int
	now        func() time.Time
	logger     zerolog.Logger
	recorder   ExportRecorder
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithClock overrides the clock used for the footer date.
func WithClock(now func() time.Time) ExporterOption {
	return func(e *Exporter) { e.now = now }
}

// WithLogger sets the exporter logger.
func WithLogger(logger zerolog.Logger) ExporterOption {
	return func(e *Exporter) { e.logger = logger }
}

// WithExportRecorder sets the recorder notified after each export.
func WithExportRecorder(recorder ExportRecorder) ExporterOption {
	return func(e *Exporter) { e.recorder = recorder }
}

// WithGridWidth sets the CSS width of the rasterized grid.
func WithGridWidth(width int) ExporterOption {
	return func(e *Exporter) { e.gridWidth = width }
}

// NewExporter creates an exporter producing documents in the catalog's language.
func NewExporter(rasterizer Rasterizer, catalog messages.Catalog, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		rasterizer: rasterizer,
		catalog:    catalog,
		gridWidth:  DefaultGridWidth,
		now:        time.Now,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export builds the PDF for plan. Any failure is returned as an *ExportError.
func (e *Exporter) Export(ctx context.Context, plan *types.PlanResponse) (*Export, error) {
	started := time.Now()
	export, err := e.export(ctx, plan)
	outcome := ExportSuccess
	if err != nil {
		outcome = ExportFailure
		e.logger.Error().Err(err).Msg("plan export failed")
	} else {
		e.logger.Info().
			Int("pages", export.Document.PageCount()).
			Dur("elapsed", time.Since(started)).
			Msg("plan exported")
	}
	if e.recorder != nil {
		e.recorder.ExportFinished(outcome)
	}
	return export, err
}

func (e *Exporter) export(ctx context.Context, plan *types.PlanResponse) (*Export, error) {
	page, err := RenderHTML(plan, e.catalog, e.gridWidth)
	if err != nil {
		return nil, &ExportError{Stage: "render", Cause: err}
	}

	bitmap, err := e.rasterizer.Rasterize(ctx, page, PlanGridSelector)
	if err != nil {
		return nil, &ExportError{Stage: "rasterize", Cause: err}
	}

	spec := NewPageSpec(bitmap.Width, bitmap.Height)
	slices, err := PlanPages(spec)
	if err != nil {
		return nil, &ExportError{Stage: "paginate", Cause: err}
	}

	doc, err := Compose(spec, slices, bitmap, Labels{
		Title: e.catalog.DocumentTitle,
		Date:  e.catalog.DateLabel(e.now()),
		Page:  e.catalog.PageLabel,
	})
	if err != nil {
		return nil, &ExportError{Stage: "compose", Cause: err}
	}

	return &Export{FileName: e.catalog.FileName, Document: doc}, nil
}

// WriteFile exports plan into dir under the localized file name and returns the path.
func (e *Exporter) WriteFile(ctx context.Context, plan *types.PlanResponse, dir string) (string, error) {
	export, err := e.Export(ctx, plan)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, export.FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", &ExportError{Stage: "write", Cause: err}
	}
	defer func() { _ = f.Close() }()

	if _, err := export.Document.WriteTo(f); err != nil {
		return "", &ExportError{Stage: "write", Cause: err}
	}
	if err := f.Close(); err != nil {
		return "", &ExportError{Stage: "write", Cause: fmt.Errorf("failed to close %s: %w", path, err)}
	}
	return path, nil
}
