package layout

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoMeasurer is returned when a Frame is built without a Measurer.
var ErrNoMeasurer = errors.New("layout: missing text measurer")

// Frame bundles what every layout primitive needs: geometry, measurement,
// the drawing surface and the paginator. A Frame serves one composition and
// must not be shared between goroutines.
type Frame struct {
	Geometry PageGeometry
	Surface  *Surface
	Pager    *Paginator

	measure Measurer
	logger  *slog.Logger
}

// NewFrame validates opts and prepares an empty surface.
func NewFrame(opts FrameOptions) (*Frame, error) {
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}
	if opts.Measurer == nil {
		return nil, ErrNoMeasurer
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	top := opts.TopOffset
	if top <= 0 {
		top = opts.Geometry.Margin.Top
	}
	if top >= opts.Geometry.ContentBottom() {
		return nil, fmt.Errorf("%w: top offset %.2f below content bottom", ErrInvalidGeometry, top)
	}
	surface := NewSurface(opts.Geometry)
	return &Frame{
		Geometry: opts.Geometry,
		Surface:  surface,
		Pager:    NewPaginator(surface, opts.Geometry, top, logger, opts.Decorators...),
		measure:  opts.Measurer,
		logger:   logger,
	}, nil
}

// Start opens the first page and returns the initial cursor.
func (f *Frame) Start() Cursor { return f.Pager.Start() }

// TextWidth measures text with the frame's measurer.
func (f *Frame) TextWidth(text string, font Font) float64 {
	if text == "" {
		return 0
	}
	return f.measure.TextWidth(text, font)
}

// Text draws text with its baseline at (x, baseline) on page.
func (f *Frame) Text(page int, text string, x, baseline float64, font Font, color Color) {
	if text == "" {
		return
	}
	f.Surface.DrawText(page, TextRun{
		Text:  text,
		X:     x,
		Y:     baseline,
		Width: f.TextWidth(text, font),
		Font:  font,
		Color: color,
	})
}

// CenteredText centers text between the left and right margins.
func (f *Frame) CenteredText(page int, text string, baseline float64, font Font, color Color) {
	w := f.TextWidth(text, font)
	x := f.Geometry.Margin.Left + (f.Geometry.UsableWidth()-w)/2
	f.Text(page, text, x, baseline, font, color)
}

// RightText aligns the end of text with the right margin.
func (f *Frame) RightText(page int, text string, baseline float64, font Font, color Color) {
	w := f.TextWidth(text, font)
	f.Text(page, text, f.Geometry.Width-f.Geometry.Margin.Right-w, baseline, font, color)
}

// Result snapshots the surface into a renderable display list.
func (f *Frame) Result(meta DocumentMeta) *Result {
	return &Result{Pages: f.Surface.Pages(), Meta: meta}
}

// baseline returns the baseline of a line box whose top is at top.
func baseline(top float64, font Font) float64 { return top + font.Size }
