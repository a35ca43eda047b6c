package canvasrenderer

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/ByLCY/acta/layout"
	"github.com/ByLCY/acta/renderer"
)

func TestTextWidthScalesWithSize(t *testing.T) {
	r := NewRenderer()
	small := r.TextWidth("Acta de entrega", layout.Font{Family: layout.FamilySerif, Size: 10})
	large := r.TextWidth("Acta de entrega", layout.Font{Family: layout.FamilySerif, Size: 20})
	if small <= 0 {
		t.Fatalf("invalid width %g", small)
	}
	if math.Abs(large-2*small) > 0.01*large {
		t.Fatalf("width not proportional to size: %g vs %g", small, large)
	}
	// Latin Modern at 10 pt: a handful of characters stays well under 100 pt.
	if small > 100 {
		t.Fatalf("width looks like millimetres were not converted: %g", small)
	}
}

func TestTextWidthDiffersByStyle(t *testing.T) {
	r := NewRenderer()
	regular := r.TextWidth("RECIBÍ CONFORME", layout.Font{Family: layout.FamilySerif, Size: 10})
	bold := r.TextWidth("RECIBÍ CONFORME", layout.Font{Family: layout.FamilySerif, Style: layout.StyleBold, Size: 10})
	if bold <= regular {
		t.Fatalf("bold should be wider: regular=%g bold=%g", regular, bold)
	}
}

func TestUnknownFamilyFallsBackToSerif(t *testing.T) {
	r := NewRenderer()
	want := r.TextWidth("inventario", layout.Font{Family: layout.FamilySerif, Size: 10})
	got := r.TextWidth("inventario", layout.Font{Family: "Garamond", Size: 10})
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("fallback width %g, want %g", got, want)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()
	f, err := layout.NewFrame(layout.FrameOptions{Geometry: layout.Letter(layout.CM(2.5)), Measurer: r})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	yellow := layout.Color{R: 255, G: 255}
	cur := f.Start()
	cur, err = f.Paragraph(cur, []layout.TextSpan{
		{Text: "Se hace entrega del bien"},
		{Text: "PC-0001", Style: layout.StyleBold, Background: &yellow},
	}, layout.ParagraphOptions{Font: layout.Font{Family: layout.FamilySerif, Size: 10}, Justify: true})
	if err != nil {
		t.Fatalf("Paragraph: %v", err)
	}
	if _, err := f.Signatures(cur, [2]layout.SignatureEntry{{Label: "A"}, {Label: "B"}}, layout.DefaultSignatureOptions()); err != nil {
		t.Fatalf("Signatures: %v", err)
	}
	data, err := r.Render(f.Result(layout.DocumentMeta{Title: "Acta"}))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	if _, err := NewRenderer().Render(&layout.Result{}); !errors.Is(err, renderer.ErrNothingToRender) {
		t.Fatalf("want ErrNothingToRender, got %v", err)
	}
}

func TestJustifiedLinesStayInsideMargins(t *testing.T) {
	r := NewRenderer()
	geom := layout.Letter(layout.CM(2.5))
	f, err := layout.NewFrame(layout.FrameOptions{Geometry: geom, Measurer: r})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	text := "En la ciudad, siendo las diez horas, se reúnen las partes para dejar constancia de la entrega de los bienes patrimoniales que se detallan, los cuales se encuentran operativos y en buen estado de conservación."
	if _, err := f.Paragraph(f.Start(), []layout.TextSpan{{Text: text}}, layout.ParagraphOptions{
		Font:    layout.Font{Family: layout.FamilySerif, Size: 10},
		Justify: true,
	}); err != nil {
		t.Fatalf("Paragraph: %v", err)
	}
	right := geom.Width - geom.Margin.Right
	for _, run := range f.Result(layout.DocumentMeta{}).Pages[0].Texts {
		if run.X+run.Width > right+1e-6 {
			t.Fatalf("%q ends at %g past the right margin %g", run.Text, run.X+run.Width, right)
		}
	}
}
