package layout

import "log/slog"

// Measurer reports the rendered width, in points, of text set in font.
// Rendering backends implement it so layout and output agree on metrics.
type Measurer interface {
	TextWidth(text string, font Font) float64
}

// MeasurerFunc adapts a plain function to Measurer.
type MeasurerFunc func(text string, font Font) float64

func (fn MeasurerFunc) TextWidth(text string, font Font) float64 { return fn(text, font) }

// FrameOptions configures a Frame.
type FrameOptions struct {
	Geometry PageGeometry
	Measurer Measurer
	// TopOffset is where content resumes on every page, measured from the
	// page top. Zero means Geometry.Margin.Top.
	TopOffset float64
	// Decorators run for every page as soon as it is opened, before any
	// content is placed on it (header, footer).
	Decorators []PageDecorator
	Logger     *slog.Logger
}

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }
