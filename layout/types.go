package layout

// This file defines the display list produced by composition. Renderers
// consume it, and the debug JSON dump serializes it as-is.

// Result holds the composed pages and document metadata.
type Result struct {
	Pages []Page       `json:"pages"`
	Meta  DocumentMeta `json:"meta"`
}

// Color uses 0-255 RGB components.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Common colors.
var (
	Black     = Color{}
	White     = Color{R: 255, G: 255, B: 255}
	RuleColor = Color{R: 80, G: 80, B: 80}
)

// Page records the page size, margins and every positioned element.
// Renderers paint Rects first, then Lines, then Texts.
type Page struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Margin Margin    `json:"margin"`
	Texts  []TextRun `json:"texts"`
	Lines  []Line    `json:"lines,omitempty"`
	Rects  []Rect    `json:"rects,omitempty"`
}

// Margin is expressed in points.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// TextRun is a single positioned string. Y is the baseline.
type TextRun struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Font  Font    `json:"font"`
	Color Color   `json:"color"`
}

// Line is a straight segment.
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"` // renderers substitute a hairline when <= 0
}

// Rect is an axis-aligned rectangle; Y is its top edge.
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor *Color  `json:"strokeColor,omitempty"` // nil: no outline
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	FillColor   *Color  `json:"fillColor,omitempty"` // nil: no fill
}

// DocumentMeta feeds the PDF info dictionary.
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
