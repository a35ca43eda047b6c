// Package fpdfrenderer renders layout results with codeberg.org/go-pdf/fpdf
// using the standard PDF core fonts, so documents carry no embedded font
// programs. Text is translated to cp1252, which covers Spanish.
package fpdfrenderer

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/acta/layout"
	"github.com/ByLCY/acta/renderer"
)

const hairline = 0.5

var (
	_ renderer.Backend = (*Renderer)(nil)
	_ layout.Measurer  = (*Renderer)(nil)
)

// Options configures the fpdf renderer.
type Options struct {
	// Compress deflates page streams. Disable it to inspect output by eye.
	Compress bool
	// CreationDate is stamped into the info dictionary; zero means now.
	CreationDate time.Time
	Logger       *slog.Logger
}

// Renderer measures with core-font metrics and draws with fpdf. One
// measuring document is kept for the renderer's lifetime; Render builds a
// fresh document per call.
type Renderer struct {
	opts   Options
	logger *slog.Logger

	mu      sync.Mutex
	measure *fpdf.Fpdf
	tr      func(string) string
}

// NewRenderer creates an fpdf backend.
func NewRenderer(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := fpdf.New("P", "pt", "Letter", "")
	return &Renderer{
		opts:    opts,
		logger:  logger,
		measure: m,
		tr:      m.UnicodeTranslatorFromDescriptor(""),
	}
}

// TextWidth implements layout.Measurer in points.
func (r *Renderer) TextWidth(text string, font layout.Font) float64 {
	if text == "" {
		return 0
	}
	family, style := coreFont(font)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.measure.SetFont(family, style, font.Size)
	return r.measure.GetStringWidth(r.tr(text))
}

// Render draws every page of result and returns the PDF bytes.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if err := renderer.Check(result); err != nil {
		return nil, err
	}
	first := result.Pages[0]
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: first.Width, Ht: first.Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCompression(r.opts.Compress)
	created := r.opts.CreationDate
	if created.IsZero() {
		created = time.Now()
	}
	doc.SetCreationDate(created)
	applyMeta(doc, result.Meta)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, page := range result.Pages {
		doc.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
		drawRects(doc, page.Rects)
		drawLines(doc, page.Lines)
		for _, run := range page.Texts {
			family, style := coreFont(run.Font)
			doc.SetFont(family, style, run.Font.Size)
			doc.SetTextColor(run.Color.R, run.Color.G, run.Color.B)
			doc.Text(run.X, run.Y, tr(run.Text))
		}
		if doc.Err() {
			return nil, fmt.Errorf("draw page: %w", doc.Error())
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	r.logger.Debug("pdf rendered", slog.Int("pages", len(result.Pages)), slog.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func applyMeta(doc *fpdf.Fpdf, meta layout.DocumentMeta) {
	doc.SetTitle(meta.Title, true)
	doc.SetSubject(meta.Subject, true)
	doc.SetAuthor(meta.Author, true)
	doc.SetCreator(meta.Creator, true)
	if len(meta.Keywords) > 0 {
		doc.SetKeywords(strings.Join(meta.Keywords, ", "), true)
	}
}

func drawRects(doc *fpdf.Fpdf, rects []layout.Rect) {
	for _, rc := range rects {
		style := ""
		if rc.FillColor != nil {
			doc.SetFillColor(rc.FillColor.R, rc.FillColor.G, rc.FillColor.B)
			style += "F"
		}
		if rc.StrokeColor != nil {
			w := rc.StrokeWidth
			if w <= 0 {
				w = hairline
			}
			doc.SetDrawColor(rc.StrokeColor.R, rc.StrokeColor.G, rc.StrokeColor.B)
			doc.SetLineWidth(w)
			style += "D"
		}
		if style == "" {
			continue
		}
		doc.Rect(rc.X, rc.Y, rc.Width, rc.Height, style)
	}
}

func drawLines(doc *fpdf.Fpdf, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = hairline
		}
		doc.SetDrawColor(ln.Color.R, ln.Color.G, ln.Color.B)
		doc.SetLineWidth(w)
		doc.Line(ln.X1, ln.Y1, ln.X2, ln.Y2)
	}
}

// coreFont maps a layout font onto a core font family and fpdf style.
func coreFont(font layout.Font) (string, string) {
	family := "Times"
	if strings.EqualFold(font.Family, layout.FamilySans) {
		family = "Helvetica"
	}
	style := ""
	if font.Style.Bold() {
		style += "B"
	}
	if font.Style.Italic() {
		style += "I"
	}
	return family, style
}
