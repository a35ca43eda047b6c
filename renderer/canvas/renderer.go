package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/acta/fonts"
	"github.com/ByLCY/acta/layout"
	"github.com/ByLCY/acta/renderer"
)

// hairline is the stroke width, in points, used when an element has none.
const hairline = 0.5

// Renderer measures and draws layout results with github.com/tdewolff/canvas.
// The display list is in points; canvas works in millimetres, so every
// coordinate crosses toMm on the way in and widths cross toPt on the way out.
type Renderer struct {
	fontBlobs map[string]map[fonts.Variant][]byte

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
	logger       *slog.Logger
}

var (
	_ renderer.Backend = (*Renderer)(nil)
	_ layout.Measurer  = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	// Fonts replaces or adds families. Keys are family names; a family
	// missing a variant falls back to its regular face.
	Fonts  map[string]FamilyResource
	Logger *slog.Logger
}

// FamilyResource lists the faces of one family.
type FamilyResource struct {
	Regular    Resource
	Bold       Resource
	Italic     Resource
	BoldItalic Resource
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

func (r Resource) load() []byte {
	if len(r.Bytes) > 0 {
		return r.Bytes
	}
	if r.Path != "" {
		data, _ := os.ReadFile(r.Path) // a missing file surfaces when the family loads
		return data
	}
	return nil
}

// NewRenderer creates a renderer backed by the embedded Latin Modern faces.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected font families.
func NewRendererWithOptions(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Renderer{
		fontBlobs:    map[string]map[fonts.Variant][]byte{},
		fontFamilies: map[string]*canvas.FontFamily{},
		logger:       logger,
	}
	for name, fam := range opts.Fonts {
		if name == "" {
			continue
		}
		r.fontBlobs[strings.ToLower(name)] = map[fonts.Variant][]byte{
			{}:                         fam.Regular.load(),
			{Bold: true}:               fam.Bold.load(),
			{Italic: true}:             fam.Italic.load(),
			{Bold: true, Italic: true}: fam.BoldItalic.load(),
		}
	}
	return r
}

// TextWidth implements layout.Measurer. The result is in points.
func (r *Renderer) TextWidth(text string, font layout.Font) float64 {
	if text == "" {
		return 0
	}
	face, err := r.fontFace(font, layout.Black)
	if err != nil {
		r.logger.Warn("measure with fallback width", slog.String("family", font.Family), slog.Any("err", err))
		return 0.5 * font.Size * float64(len([]rune(text)))
	}
	return toPt(face.TextWidth(text))
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if err := renderer.Check(result); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	first := result.Pages[0]
	writer := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	r.applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(toMm(page.Width), toMm(page.Height))
		}
		c := canvas.New(toMm(page.Width), toMm(page.Height))
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // origin at the top-left, like the layout

		if err := r.drawPage(ctx, page); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	r.logger.Debug("pdf rendered", slog.Int("pages", len(result.Pages)), slog.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawPage paints backgrounds and borders before text.
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	r.drawRects(ctx, page.Rects)
	r.drawLines(ctx, page.Lines)
	for _, run := range page.Texts {
		if err := r.drawText(ctx, run); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawText(ctx *canvas.Context, run layout.TextRun) error {
	face, err := r.fontFace(run.Font, run.Color)
	if err != nil {
		return err
	}
	line := canvas.NewTextLine(face, run.Text, canvas.Left)
	ctx.DrawText(toMm(run.X), toMm(run.Y), line)
	return nil
}

func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = hairline
		}
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(toMm(w))
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(toMm(ln.X2-ln.X1), toMm(ln.Y2-ln.Y1))
		ctx.DrawPath(toMm(ln.X1), toMm(ln.Y1), p)
	}
}

func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		if rc.FillColor != nil {
			ctx.SetFillColor(colorFromLayout(*rc.FillColor))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		if rc.StrokeColor != nil {
			w := rc.StrokeWidth
			if w <= 0 {
				w = hairline
			}
			ctx.SetStrokeColor(colorFromLayout(*rc.StrokeColor))
			ctx.SetStrokeWidth(toMm(w))
		} else {
			ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
			ctx.SetStrokeWidth(0)
		}
		ctx.DrawPath(toMm(rc.X), toMm(rc.Y), canvas.Rectangle(toMm(rc.Width), toMm(rc.Height)))
	}
}

// fontFace builds a face at font.Size points. Families are loaded once with
// all four variants and cached.
func (r *Renderer) fontFace(font layout.Font, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(font.Family)
	if err != nil {
		return nil, err
	}
	return family.Face(font.Size, colorFromLayout(col), canvasStyle(font.Style), canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(name string) (*canvas.FontFamily, error) {
	key := strings.ToLower(name)
	if key == "" {
		key = layout.FamilySerif
	}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[key]; ok {
		return family, nil
	}
	family := canvas.NewFontFamily(key)
	for _, tag := range []layout.StyleTag{layout.StyleNormal, layout.StyleBold, layout.StyleItalic, layout.StyleBoldItalic} {
		v := fonts.Variant{Bold: tag.Bold(), Italic: tag.Italic()}
		data, err := r.fontBytes(key, v)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, canvasStyle(tag)); err != nil {
			return nil, fmt.Errorf("load font %s %s: %w", key, tag, err)
		}
	}
	r.fontFamilies[key] = family
	return family, nil
}

func (r *Renderer) fontBytes(family string, v fonts.Variant) ([]byte, error) {
	if set, ok := r.fontBlobs[family]; ok {
		if data := set[v]; len(data) > 0 {
			return data, nil
		}
		if data := set[fonts.Variant{}]; len(data) > 0 {
			return data, nil
		}
		return nil, fmt.Errorf("font family %s has no usable face", family)
	}
	data, err := fonts.Load(family, v)
	if err != nil {
		r.logger.Debug("unknown family, using serif", slog.String("family", family))
		return fonts.Load(layout.FamilySerif, v)
	}
	return data, nil
}

func canvasStyle(tag layout.StyleTag) canvas.FontStyle {
	result := canvas.FontRegular
	if tag.Bold() {
		result = canvas.FontBold
	}
	if tag.Italic() {
		result |= canvas.FontItalic
	}
	return result
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt converts millimetres to points.
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm converts points to millimetres.
func toMm(pt float64) float64 { return pt * layout.PtToMm }
