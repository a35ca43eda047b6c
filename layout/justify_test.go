package layout

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParagraphScenarioTwoLines(t *testing.T) {
	f := newTestFrame(t)
	cur := f.Start()
	start := cur

	// 40 words of 10 pt: 31 fit on the first line, 9 remain.
	end, err := f.Paragraph(cur, []TextSpan{plain(repeatWords("ab", 40))}, ParagraphOptions{Font: bodyFont, Justify: true})
	if err != nil {
		t.Fatalf("Paragraph: %v", err)
	}
	page := f.Surface.Pages()[0]
	lines := linesOf(page)
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	if len(lines[0]) != 31 || len(lines[1]) != 9 {
		t.Fatalf("unexpected split %d/%d", len(lines[0]), len(lines[1]))
	}

	left := f.Geometry.Margin.Left
	usable := f.Geometry.UsableWidth()
	first := lines[0]
	last := first[len(first)-1]
	if got := last.X + last.Width - left; math.Abs(got-usable) > eps {
		t.Fatalf("justified line spans %g, want %g", got, usable)
	}

	for i, run := range lines[1] {
		want := left + float64(i)*15
		if math.Abs(run.X-want) > eps {
			t.Fatalf("last line word %d at x=%g, want natural %g", i, run.X, want)
		}
	}

	if want := start.Y + 2*LineHeight(10); math.Abs(end.Y-want) > eps {
		t.Fatalf("cursor at %g, want %g", end.Y, want)
	}
	if end.Page != 0 {
		t.Fatalf("unexpected page %d", end.Page)
	}
}

func TestJustifiedLineSumsToUsableWidth(t *testing.T) {
	f := newTestFrame(t)
	usable := f.Geometry.UsableWidth()
	space := fixedMeasurer.TextWidth(" ", bodyFont)

	words := strings.Fields("el suscrito hace entrega formal de los bienes que se detallan a continuacion en buen estado de conservacion y funcionamiento para uso exclusivo del area asignada dentro de la institucion conforme al inventario vigente")
	var spans []TextSpan
	for i, w := range words {
		if i%3 == 0 {
			spans = append(spans, bold(w))
		} else {
			spans = append(spans, plain(w))
		}
	}
	if _, err := f.Paragraph(f.Start(), spans, ParagraphOptions{Font: bodyFont, Justify: true}); err != nil {
		t.Fatalf("Paragraph: %v", err)
	}
	lines := linesOf(f.Surface.Pages()[0])
	if len(lines) < 2 {
		t.Fatalf("want several lines, got %d", len(lines))
	}
	for i, ln := range lines[:len(lines)-1] {
		sum := 0.0
		for _, run := range ln {
			sum += run.Width
		}
		n := float64(len(ln))
		extra := (usable - sum - (n-1)*space) / (n - 1)
		if extra > JustifyCap*space {
			continue
		}
		got := sum + (n-1)*(space+extra)
		end := ln[len(ln)-1].X + ln[len(ln)-1].Width - f.Geometry.Margin.Left
		if math.Abs(end-got) > eps || math.Abs(got-usable) > eps {
			t.Fatalf("line %d: ends at %g, sum %g, usable %g", i, end, got, usable)
		}
	}
}

func TestJustificationCapFallsBackToNatural(t *testing.T) {
	f := newTestFrame(t)
	long := strings.Repeat("m", 40) // 200 pt: two per line leaves about 65 pt of slack
	text := long + " " + long + " " + long
	if _, err := f.Paragraph(f.Start(), []TextSpan{plain(text)}, ParagraphOptions{Font: bodyFont, Justify: true}); err != nil {
		t.Fatalf("Paragraph: %v", err)
	}
	lines := linesOf(f.Surface.Pages()[0])
	if len(lines) != 2 || len(lines[0]) != 2 {
		t.Fatalf("unexpected lines: %d", len(lines))
	}
	gap := lines[0][1].X - lines[0][0].X
	if math.Abs(gap-205) > eps {
		t.Fatalf("capped line should use natural spacing, advance=%g", gap)
	}
}

func TestOversizedWordOwnsLine(t *testing.T) {
	f := newTestFrame(t)
	huge := strings.Repeat("x", 100)
	if _, err := f.Paragraph(f.Start(), []TextSpan{plain("short " + huge + " tail")}, ParagraphOptions{Font: bodyFont, Justify: true}); err != nil {
		t.Fatalf("Paragraph: %v", err)
	}
	lines := linesOf(f.Surface.Pages()[0])
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d", len(lines))
	}
	if len(lines[1]) != 1 || lines[1][0].Text != huge {
		t.Fatalf("oversized word not alone: %+v", lines[1])
	}
	if lines[1][0].X != f.Geometry.Margin.Left {
		t.Fatalf("oversized word moved to x=%g", lines[1][0].X)
	}
}

func TestSpanStylesAndBackground(t *testing.T) {
	f := newTestFrame(t)
	red := Color{R: 192}
	yellow := Color{R: 255, G: 255}
	spans := []TextSpan{
		plain("entrega el"),
		{Text: "CODIGO-1", Style: StyleBoldItalic, Color: &red, Background: &yellow},
		plain(""),
		plain("   "),
		plain("fin"),
	}
	if _, err := f.Paragraph(f.Start(), spans, ParagraphOptions{Font: bodyFont}); err != nil {
		t.Fatalf("Paragraph: %v", err)
	}
	p := f.Surface.Pages()[0]
	if len(p.Texts) != 4 {
		t.Fatalf("want 4 words, got %d", len(p.Texts))
	}
	hl := p.Texts[2]
	if hl.Font.Style != StyleBoldItalic || hl.Color != red {
		t.Fatalf("span style not applied: %+v", hl)
	}
	if p.Texts[3].Font.Style != StyleNormal || p.Texts[3].Color != Black {
		t.Fatalf("style leaked into following span: %+v", p.Texts[3])
	}
	if len(p.Rects) != 1 || p.Rects[0].FillColor == nil || *p.Rects[0].FillColor != yellow {
		t.Fatalf("background rect missing: %+v", p.Rects)
	}
	if r := p.Rects[0]; r.X >= hl.X || r.X+r.Width <= hl.X+hl.Width {
		t.Fatalf("background does not cover word: rect=%+v word=%+v", r, hl)
	}
}

func TestParagraphWithoutWords(t *testing.T) {
	f := newTestFrame(t)
	cur := f.Start()
	got, err := f.Paragraph(cur, []TextSpan{plain(""), plain(" \t ")}, ParagraphOptions{Font: bodyFont})
	if err != nil {
		t.Fatalf("Paragraph: %v", err)
	}
	if got != cur {
		t.Fatalf("cursor moved: %+v -> %+v", cur, got)
	}
}

func TestParagraphRejectsInvalidStyle(t *testing.T) {
	f := newTestFrame(t)
	_, err := f.Paragraph(f.Start(), []TextSpan{{Text: "x", Style: StyleTag(42)}}, ParagraphOptions{Font: bodyFont})
	if !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("want ErrUnknownStyle, got %v", err)
	}
}

func TestCenteredParagraph(t *testing.T) {
	f := newTestFrame(t)
	title := Font{Family: FamilySerif, Style: StyleBold, Size: 12}
	if _, err := f.Paragraph(f.Start(), []TextSpan{bold("ACTA DE ENTREGA")}, ParagraphOptions{Font: title, Align: AlignCenter, Justify: true}); err != nil {
		t.Fatalf("Paragraph: %v", err)
	}
	runs := f.Surface.Pages()[0].Texts
	first, last := runs[0], runs[len(runs)-1]
	leftGap := first.X - f.Geometry.Margin.Left
	rightGap := f.Geometry.Width - f.Geometry.Margin.Right - (last.X + last.Width)
	if math.Abs(leftGap-rightGap) > eps {
		t.Fatalf("title not centered: left=%g right=%g", leftGap, rightGap)
	}
}
