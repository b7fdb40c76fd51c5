package rendering

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // registers JPEG for DecodeConfig
	_ "image/png"  // registers PNG for DecodeConfig
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Bitmap is an encoded raster image with its pixel dimensions.
type Bitmap struct {
	Data   []byte
	Width  int
	Height int
	Format string // "png" or "jpeg"
}

// DecodeBitmap reads the dimensions and format of an encoded image.
func DecodeBitmap(data []byte) (Bitmap, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Bitmap{}, fmt.Errorf("failed to decode image: %w", err)
	}
	return Bitmap{Data: data, Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Labels are the texts printed on every page.
type Labels struct {
	Title string
	Date  string
	// Page renders the page counter, e.g. "Page 2 of 3".
	Page func(page, total int) string
}

// Document is a composed multi-page PDF. Its bytes are encoded once and may be read any number of times.
type Document struct {
	data  []byte
	pages int
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.pages
}

// WriteTo writes the PDF bytes to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(d.data).WriteTo(w)
}

// Bytes returns a copy of the encoded PDF.
func (d *Document) Bytes() ([]byte, error) {
	return bytes.Clone(d.data), nil
}

const imageName = "plan"

// Compose builds one page per slice. Each page carries the title centered at the top
// margin, the full scaled image shifted by the slice offset and clipped to the content
// box, and a footer with the date on the left and the page counter on the right.
// Pages are numbered by position, 1 through len(slices).
func Compose(spec PageSpec, slices []Slice, bitmap Bitmap, labels Labels) (*Document, error) {
	return compose(spec, slices, bitmap, labels, true)
}

func compose(spec PageSpec, slices []Slice, bitmap Bitmap, labels Labels, compress bool) (*Document, error) {
	if len(slices) == 0 {
		return nil, &RenderError{Message: "no pages to compose"}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: spec.PageWidth, Ht: spec.PageHeight},
	})
	pdf.SetMargins(spec.Margin, spec.Margin, spec.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(compress)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	hasImage := len(bitmap.Data) > 0 && spec.ScaledHeight() > 0
	if hasImage {
		pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{
			ImageType: strings.ToUpper(bitmap.Format),
		}, bytes.NewReader(bitmap.Data))
		if pdf.Err() {
			return nil, &RenderError{Message: "failed to register image", Cause: pdf.Error()}
		}
	}

	total := len(slices)
	contentTop := spec.Margin + headerToImageOffset
	contentWidth := spec.ContentWidth()
	scaledHeight := spec.ScaledHeight()

	for i, slice := range slices {
		page := i + 1
		pdf.AddPage()

		// Header
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(44, 62, 80)
		pdf.SetXY(spec.Margin, spec.Margin-4)
		pdf.CellFormat(contentWidth, 8, tr(labels.Title), "", 0, "C", false, 0, "")

		// Image band
		if hasImage {
			pdf.ClipRect(spec.Margin, contentTop, contentWidth, spec.ContentHeight(), false)
			pdf.ImageOptions(imageName, spec.Margin, contentTop+slice.Offset, contentWidth, scaledHeight,
				false, gofpdf.ImageOptions{ImageType: strings.ToUpper(bitmap.Format)}, 0, "")
			pdf.ClipEnd()
		}

		// Footer
		footerY := spec.PageHeight - spec.Margin/2
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(128, 128, 128)
		pdf.SetXY(spec.Margin, footerY-3)
		pdf.CellFormat(contentWidth/2, 6, tr(labels.Date), "", 0, "L", false, 0, "")
		pageLabel := fmt.Sprintf("%d / %d", page, total)
		if labels.Page != nil {
			pageLabel = labels.Page(page, total)
		}
		pdf.SetXY(spec.Margin+contentWidth/2, footerY-3)
		pdf.CellFormat(contentWidth/2, 6, tr(pageLabel), "", 0, "R", false, 0, "")
	}

	if pdf.Err() {
		return nil, &RenderError{Message: "failed to compose document", Cause: pdf.Error()}
	}

	pages := pdf.PageCount()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to write document", Cause: err}
	}
	return &Document{data: buf.Bytes(), pages: pages}, nil
}
