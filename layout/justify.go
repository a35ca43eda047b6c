package layout

import (
	"fmt"
	"strings"
)

// HAlign positions a line between the margins.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
)

// JustifyCap bounds the stretch of a justified line: when the extra space
// per gap would exceed JustifyCap times the natural space width, the line
// is set with natural spacing instead.
const JustifyCap = 2.0

// backgroundPad is the padding around a highlighted word.
const backgroundPad = 1.0

// ParagraphOptions controls how a paragraph is set.
type ParagraphOptions struct {
	Font    Font
	Color   Color
	Justify bool
	Align   HAlign
}

type word struct {
	text  string
	span  int
	font  Font
	color Color
	bg    *Color
	width float64
}

// lineBox is a closed line: its words and the sum of their widths.
type lineBox struct {
	words []word
	ink   float64
}

func (l lineBox) natural(space float64) float64 {
	if len(l.words) == 0 {
		return 0
	}
	return l.ink + float64(len(l.words)-1)*space
}

// Paragraph sets spans as one flow of words starting at cur and returns the
// cursor below the last line. Every line is preceded by a page-break check.
func (f *Frame) Paragraph(cur Cursor, spans []TextSpan, opts ParagraphOptions) (Cursor, error) {
	if opts.Font.Size <= 0 {
		return cur, fmt.Errorf("layout: paragraph font size %.2f", opts.Font.Size)
	}
	if opts.Font.Family == "" {
		opts.Font.Family = FamilySerif
	}
	words, err := f.tokenize(spans, opts)
	if err != nil {
		return cur, err
	}
	if len(words) == 0 {
		return cur, nil
	}

	usable := f.Geometry.UsableWidth()
	space := f.TextWidth(" ", opts.Font.WithStyle(StyleNormal))
	lines := wrap(words, usable, space)
	lh := LineHeight(opts.Font.Size)

	for i, ln := range lines {
		cur = f.Pager.EnsureSpace(cur, lh)
		justify := opts.Justify && opts.Align == AlignLeft && i < len(lines)-1
		f.drawLine(cur, ln, opts, space, justify)
		cur.Y += lh
	}
	return cur, nil
}

// tokenize flattens spans into words, resolving each word's font and colors
// from its span.
func (f *Frame) tokenize(spans []TextSpan, opts ParagraphOptions) ([]word, error) {
	var words []word
	for i, sp := range spans {
		if !sp.Style.Valid() {
			return nil, fmt.Errorf("span %d: %w: %d", i, ErrUnknownStyle, int(sp.Style))
		}
		font := opts.Font.WithStyle(sp.Style)
		if sp.Font != "" {
			font.Family = sp.Font
		}
		color := opts.Color
		if sp.Color != nil {
			color = *sp.Color
		}
		for _, w := range strings.Fields(sp.Text) {
			words = append(words, word{
				text:  w,
				span:  i,
				font:  font,
				color: color,
				bg:    sp.Background,
				width: f.TextWidth(w, font),
			})
		}
	}
	return words, nil
}

// wrap breaks words greedily: a word closes the current line when the
// running width plus the word and one space would pass limit. A line always
// takes at least one word, so an oversized word sits alone.
func wrap(words []word, limit, space float64) []lineBox {
	var (
		lines []lineBox
		cur   lineBox
		width float64
	)
	for _, w := range words {
		if len(cur.words) > 0 && width+w.width+space > limit {
			lines = append(lines, cur)
			cur, width = lineBox{}, 0
		}
		cur.words = append(cur.words, w)
		cur.ink += w.width
		width += w.width + space
	}
	if len(cur.words) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// extraSpace returns the additional gap per word boundary that makes ln
// fill usable, or 0 when the line cannot or should not be stretched.
func extraSpace(ln lineBox, usable, space float64) float64 {
	gaps := len(ln.words) - 1
	if gaps < 1 {
		return 0
	}
	extra := (usable - ln.natural(space)) / float64(gaps)
	if extra <= 0 || extra > JustifyCap*space {
		return 0
	}
	return extra
}

func (f *Frame) drawLine(cur Cursor, ln lineBox, opts ParagraphOptions, space float64, justify bool) {
	usable := f.Geometry.UsableWidth()
	x := f.Geometry.Margin.Left
	if opts.Align == AlignCenter {
		if nat := ln.natural(space); nat < usable {
			x += (usable - nat) / 2
		}
	}
	extra := 0.0
	if justify {
		extra = extraSpace(ln, usable, space)
	}
	y := baseline(cur.Y, opts.Font)
	for _, w := range ln.words {
		if w.bg != nil {
			bg := *w.bg
			f.Surface.DrawRect(cur.Page, Rect{
				X:         x - backgroundPad,
				Y:         y - 0.8*w.font.Size - backgroundPad,
				Width:     w.width + 2*backgroundPad,
				Height:    w.font.Size + 2*backgroundPad,
				FillColor: &bg,
			})
		}
		f.Surface.DrawText(cur.Page, TextRun{
			Text:  w.text,
			X:     x,
			Y:     y,
			Width: w.width,
			Font:  w.font,
			Color: w.color,
		})
		x += w.width + space + extra
	}
}
