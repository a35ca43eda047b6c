// Package fonts exposes the embedded Latin Modern faces used by the canvas
// backend. Family names match layout.FamilySerif and layout.FamilySans.
package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10boldoblique"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"
)

// Variant selects one face of a family.
type Variant struct {
	Bold   bool
	Italic bool
}

var faces = map[string]map[Variant][]byte{
	"serif": {
		{}:                         lmroman10regular.TTF,
		{Bold: true}:               lmroman10bold.TTF,
		{Italic: true}:             lmroman10italic.TTF,
		{Bold: true, Italic: true}: lmroman10bolditalic.TTF,
	},
	"sans": {
		{}:                         lmsans10regular.TTF,
		{Bold: true}:               lmsans10bold.TTF,
		{Italic: true}:             lmsans10oblique.TTF,
		{Bold: true, Italic: true}: lmsans10boldoblique.TTF,
	},
}

// Families lists the embedded family names.
func Families() []string { return []string{"serif", "sans"} }

// Load returns the font data for family and variant. The "embed:" prefix
// is accepted so flavor files can reference faces explicitly.
func Load(family string, v Variant) ([]byte, error) {
	name := strings.ToLower(strings.TrimPrefix(family, "embed:"))
	set, ok := faces[name]
	if !ok {
		return nil, fmt.Errorf("fonts: unknown family %q", family)
	}
	return set[v], nil
}
