package rendering

import "math"

// A4 portrait in millimetres, with the margins used by exported plans.
const (
	A4Width             = 210.0
	A4Height            = 297.0
	DefaultMargin       = 15.0
	DefaultReserve      = 15.0
	DefaultDeviceScale  = 2.0
	headerToImageOffset = 10.0
)

// PageSpec is the geometry used to split one tall bitmap across pages.
// Page measurements share a unit (millimetres for exported plans); the source
// is measured in device pixels.
type PageSpec struct {
	PageWidth    float64
	PageHeight   float64
	Margin       float64
	Reserve      float64 // header and footer band, in addition to the margins
	SourceWidth  int
	SourceHeight int
	Scale        float64 // device pixels per layout pixel of the source
}

// NewPageSpec returns the A4 layout for a source bitmap of the given pixel size.
func NewPageSpec(sourceWidth, sourceHeight int) PageSpec {
	return PageSpec{
		PageWidth:    A4Width,
		PageHeight:   A4Height,
		Margin:       DefaultMargin,
		Reserve:      DefaultReserve,
		SourceWidth:  sourceWidth,
		SourceHeight: sourceHeight,
		Scale:        DefaultDeviceScale,
	}
}

// ContentWidth is the width the image is scaled to.
func (s PageSpec) ContentWidth() float64 {
	return s.PageWidth - 2*s.Margin
}

// ContentHeight is the height of the band each page shows.
func (s PageSpec) ContentHeight() float64 {
	return s.PageHeight - 2*s.Margin - s.Reserve
}

// ScaledHeight is the source height after scaling its width to ContentWidth.
// A source without positive dimensions scales to 0.
func (s PageSpec) ScaledHeight() float64 {
	if s.SourceWidth <= 0 || s.SourceHeight <= 0 {
		return 0
	}
	return float64(s.SourceHeight) * s.ContentWidth() / float64(s.SourceWidth)
}

// Slice is one page's view into the scaled image.
type Slice struct {
	PageIndex int // 1-based
	// Offset is the vertical position of the image top relative to the content box.
	// It is 0 on the first page and decreases by ContentHeight on each following page.
	Offset float64
	// RenderedHeight is how much of the scaled image is visible on the page.
	RenderedHeight float64
}

// PlanPages computes the pages needed to show the whole scaled image. Every page places
// the full image at its Offset and relies on clipping to the content box. A degenerate
// source yields a single empty page.
func PlanPages(spec PageSpec) ([]Slice, error) {
	if spec.ContentWidth() <= 0 {
		return nil, &LayoutError{Message: "margins leave no content width"}
	}
	contentHeight := spec.ContentHeight()
	if contentHeight <= 0 {
		return nil, &LayoutError{Message: "margins and reserve leave no content height"}
	}

	scaled := spec.ScaledHeight()
	total := int(math.Ceil(scaled / contentHeight))
	if total < 1 {
		total = 1
	}

	slices := make([]Slice, total)
	for i := range slices {
		top := float64(i) * contentHeight
		slices[i] = Slice{
			PageIndex:      i + 1,
			Offset:         float64(-i) * contentHeight,
			RenderedHeight: math.Max(0, math.Min(contentHeight, scaled-top)),
		}
	}
	return slices, nil
}
