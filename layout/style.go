package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStyle is returned for style names outside the StyleTag set.
var ErrUnknownStyle = errors.New("layout: unknown style tag")

// StyleTag is the closed set of text styles.
type StyleTag int

const (
	StyleNormal StyleTag = iota
	StyleBold
	StyleItalic
	StyleBoldItalic
)

// ParseStyleTag maps a style name onto a StyleTag. Matching ignores case;
// "bold-italic" and "bold_italic" are accepted spellings of bolditalic.
func ParseStyleTag(name string) (StyleTag, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normal", "regular":
		return StyleNormal, nil
	case "bold":
		return StyleBold, nil
	case "italic":
		return StyleItalic, nil
	case "bolditalic", "bold-italic", "bold_italic":
		return StyleBoldItalic, nil
	}
	return StyleNormal, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

func (s StyleTag) String() string {
	switch s {
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	case StyleBoldItalic:
		return "bolditalic"
	default:
		return "normal"
	}
}

func (s StyleTag) Bold() bool   { return s == StyleBold || s == StyleBoldItalic }
func (s StyleTag) Italic() bool { return s == StyleItalic || s == StyleBoldItalic }

// Valid reports whether s is one of the declared tags.
func (s StyleTag) Valid() bool { return s >= StyleNormal && s <= StyleBoldItalic }

func (s StyleTag) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *StyleTag) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	tag, err := ParseStyleTag(name)
	if err != nil {
		return err
	}
	*s = tag
	return nil
}

// Font families understood by every backend.
const (
	FamilySerif = "serif"
	FamilySans  = "sans"
)

// Font selects a face: family, style and size in points.
type Font struct {
	Family string   `json:"family"`
	Style  StyleTag `json:"style"`
	Size   float64  `json:"size"`
}

// WithStyle returns a copy of f using style s.
func (f Font) WithStyle(s StyleTag) Font {
	f.Style = s
	return f
}

// WithSize returns a copy of f at size pt.
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

// TextSpan is a run of text sharing one font, style and color.
type TextSpan struct {
	Text       string   `json:"text"`
	Font       string   `json:"font,omitempty"` // family override; empty keeps the paragraph font
	Style      StyleTag `json:"style"`
	Color      *Color   `json:"color,omitempty"`
	Background *Color   `json:"background,omitempty"`
}

// Span builds a TextSpan. An invalid style is rejected here rather than at
// draw time.
func Span(text string, style StyleTag) (TextSpan, error) {
	if !style.Valid() {
		return TextSpan{}, fmt.Errorf("%w: %d", ErrUnknownStyle, int(style))
	}
	return TextSpan{Text: text, Style: style}, nil
}
