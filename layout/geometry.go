package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned when margins are negative or leave no
// usable width.
var ErrInvalidGeometry = errors.New("layout: invalid page geometry")

// US Letter in points.
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0
)

// PageGeometry describes the page size and margins, in points.
type PageGeometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// Letter returns a US Letter page with the same margin on every side.
func Letter(margin float64) PageGeometry {
	return PageGeometry{
		Width:  LetterWidth,
		Height: LetterHeight,
		Margin: Margin{Top: margin, Right: margin, Bottom: margin, Left: margin},
	}
}

// UsableWidth is the page width minus the left and right margins.
func (g PageGeometry) UsableWidth() float64 {
	return g.Width - g.Margin.Left - g.Margin.Right
}

// ContentBottom is the lowest y content may reach.
func (g PageGeometry) ContentBottom() float64 {
	return g.Height - g.Margin.Bottom
}

// Validate checks that all margins are non-negative and that the usable
// width and height are positive.
func (g PageGeometry) Validate() error {
	m := g.Margin
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return fmt.Errorf("%w: negative margin %+v", ErrInvalidGeometry, m)
	}
	if g.UsableWidth() <= 0 {
		return fmt.Errorf("%w: usable width %.2f", ErrInvalidGeometry, g.UsableWidth())
	}
	if g.ContentBottom() <= m.Top {
		return fmt.Errorf("%w: no vertical room between margins", ErrInvalidGeometry)
	}
	return nil
}
