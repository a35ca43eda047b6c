package layout

import "fmt"

// SignatureGutter is the default gap between the two signature columns.
const SignatureGutter = 80.0

// SignatureEntry is one signing party. CaptionBelowLine usually holds the
// signer's name and Label the role caption printed one line lower.
type SignatureEntry struct {
	Label            string `json:"label"`
	CaptionAboveLine string `json:"captionAboveLine,omitempty"`
	CaptionBelowLine string `json:"captionBelowLine"`
}

// SignatureOptions controls the signature block.
type SignatureOptions struct {
	Font   Font
	Gutter float64
	// SigningRoom is the blank space above the rules left for handwriting.
	SigningRoom float64
	RuleWidth   float64
	Color       Color
}

// DefaultSignatureOptions returns the block style used by actas.
func DefaultSignatureOptions() SignatureOptions {
	return SignatureOptions{
		Font:        Font{Family: FamilySerif, Style: StyleNormal, Size: 10},
		Gutter:      SignatureGutter,
		SigningRoom: 45,
		RuleWidth:   0.6,
		Color:       Black,
	}
}

// SignatureColumns returns the left edge of each column and the shared
// column width, (usable - gutter) / 2.
func (g PageGeometry) SignatureColumns(gutter float64) (left, right, width float64) {
	width = (g.UsableWidth() - gutter) / 2
	left = g.Margin.Left
	right = left + width + gutter
	return left, right, width
}

// Signatures draws a two-column signature block below cur. The whole block
// moves to a new page when it does not fit on the current one.
func (f *Frame) Signatures(cur Cursor, entries [2]SignatureEntry, opts SignatureOptions) (Cursor, error) {
	if opts.Font.Size <= 0 {
		opts.Font = DefaultSignatureOptions().Font
	}
	if opts.Gutter <= 0 {
		opts.Gutter = SignatureGutter
	}
	left, right, width := f.Geometry.SignatureColumns(opts.Gutter)
	if width <= 0 {
		return cur, fmt.Errorf("%w: gutter %.2f leaves no signature column", ErrInvalidGeometry, opts.Gutter)
	}

	lh := LineHeight(opts.Font.Size)
	cur = f.Pager.EnsureSpace(cur, opts.SigningRoom+2*lh)
	rule := cur.Y + opts.SigningRoom
	label := opts.Font.WithStyle(StyleBold)

	for i, x := range [2]float64{left, right} {
		e := entries[i]
		if e.CaptionAboveLine != "" {
			f.columnText(cur.Page, e.CaptionAboveLine, x, width, baseline(rule-lh, opts.Font), opts.Font, opts.Color)
		}
		f.Surface.DrawLine(cur.Page, Line{
			X1: x, Y1: rule,
			X2: x + width, Y2: rule,
			Color: opts.Color,
			Width: opts.RuleWidth,
		})
		f.columnText(cur.Page, e.CaptionBelowLine, x, width, baseline(rule, opts.Font), opts.Font, opts.Color)
		f.columnText(cur.Page, e.Label, x, width, baseline(rule+lh, label), label, opts.Color)
	}
	return Cursor{Y: rule + 2*lh, Page: cur.Page}, nil
}

// columnText centers text in the column starting at x.
func (f *Frame) columnText(page int, text string, x, width, y float64, font Font, color Color) {
	w := f.TextWidth(text, font)
	f.Text(page, text, x+(width-w)/2, y, font, color)
}
