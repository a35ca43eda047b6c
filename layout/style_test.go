package layout

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStyleTag(t *testing.T) {
	cases := map[string]StyleTag{
		"":            StyleNormal,
		"normal":      StyleNormal,
		"Bold":        StyleBold,
		"italic":      StyleItalic,
		"bolditalic":  StyleBoldItalic,
		"bold-italic": StyleBoldItalic,
	}
	for in, want := range cases {
		got, err := ParseStyleTag(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %v, %v", in, got, err)
		}
	}
	if _, err := ParseStyleTag("underline"); !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("want ErrUnknownStyle, got %v", err)
	}
}

func TestSpanRejectsInvalidStyle(t *testing.T) {
	if _, err := Span("x", StyleTag(7)); !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("want ErrUnknownStyle, got %v", err)
	}
	sp, err := Span("x", StyleItalic)
	if err != nil || !sp.Style.Italic() || sp.Style.Bold() {
		t.Fatalf("unexpected span %+v, %v", sp, err)
	}
}

func TestStyleTagJSON(t *testing.T) {
	var sp TextSpan
	if err := json.Unmarshal([]byte(`{"text":"x","style":"bolditalic"}`), &sp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sp.Style != StyleBoldItalic {
		t.Fatalf("style %v", sp.Style)
	}
	if err := json.Unmarshal([]byte(`{"text":"x","style":"heavy"}`), &sp); !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("want ErrUnknownStyle, got %v", err)
	}
}

func TestGeometryValidate(t *testing.T) {
	g := Letter(CM(2.5))
	if err := g.Validate(); err != nil {
		t.Fatalf("letter: %v", err)
	}
	if w := g.UsableWidth(); w <= 470 || w >= 471 {
		t.Fatalf("usable width %g", w)
	}
	g.Margin.Left = -1
	if err := g.Validate(); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("negative margin accepted")
	}
	if err := Letter(306).Validate(); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("zero usable width accepted")
	}
}
