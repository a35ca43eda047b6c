package layout

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// fixedMeasurer gives every rune half an em, so at 10 pt each character
// (space included) is 5 pt wide.
var fixedMeasurer = MeasurerFunc(func(text string, font Font) float64 {
	return 0.5 * font.Size * float64(utf8.RuneCountInString(text))
})

var bodyFont = Font{Family: FamilySerif, Style: StyleNormal, Size: 10}

const eps = 1e-6

func newTestFrame(t *testing.T, decorators ...PageDecorator) *Frame {
	t.Helper()
	f, err := NewFrame(FrameOptions{
		Geometry:   Letter(CM(2.5)),
		Measurer:   fixedMeasurer,
		Decorators: decorators,
	})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	return f
}

// linesOf groups the runs of one page by baseline, in drawing order.
func linesOf(p Page) [][]TextRun {
	var out [][]TextRun
	for _, run := range p.Texts {
		if n := len(out); n > 0 && out[n-1][0].Y == run.Y {
			out[n-1] = append(out[n-1], run)
			continue
		}
		out = append(out, []TextRun{run})
	}
	return out
}

func plain(text string) TextSpan { return TextSpan{Text: text, Style: StyleNormal} }
func bold(text string) TextSpan  { return TextSpan{Text: text, Style: StyleBold} }

func repeatWords(w string, n int) string {
	return strings.TrimSpace(strings.Repeat(w+" ", n))
}

func countText(p Page, text string) int {
	n := 0
	for _, run := range p.Texts {
		if run.Text == text {
			n++
		}
	}
	return n
}
