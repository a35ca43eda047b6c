// Package renderer defines the contract between layout and PDF output.
package renderer

import (
	"errors"

	"github.com/ByLCY/acta/layout"
)

// ErrNothingToRender is returned for a nil result or one without pages.
var ErrNothingToRender = errors.New("renderer: no pages to render")

// Renderer turns a composed display list into a finished file such as PDF
// bytes.
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Backend measures text for layout and renders the result with the same
// font metrics, so wrapped lines never overflow once drawn.
type Backend interface {
	layout.Measurer
	Renderer
}

// Check rejects results that cannot produce a document.
func Check(result *layout.Result) error {
	if result == nil || len(result.Pages) == 0 {
		return ErrNothingToRender
	}
	return nil
}
