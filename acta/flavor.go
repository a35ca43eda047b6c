package acta

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/ByLCY/acta/binding"
	"github.com/ByLCY/acta/dsl"
	"github.com/ByLCY/acta/layout"
)

//go:embed flavors/*.acta
var flavorFS embed.FS

var (
	// ErrUnknownFlavor is returned by LoadFlavor for names without an
	// embedded flavor file.
	ErrUnknownFlavor = errors.New("acta: unknown flavor")
	// ErrInvalidFlavor wraps every semantic error found in a flavor file.
	ErrInvalidFlavor = errors.New("acta: invalid flavor")
)

// Section names a narrative paragraph. The composer lays them out in the
// fixed order intro, giver, receiver, caption, [table], closing.
type Section string

const (
	SectionIntro    Section = "intro"
	SectionGiver    Section = "giver"
	SectionReceiver Section = "receiver"
	SectionCaption  Section = "caption"
	SectionClosing  Section = "closing"
)

var sections = map[Section]bool{
	SectionIntro: true, SectionGiver: true, SectionReceiver: true,
	SectionCaption: true, SectionClosing: true,
}

// SpanTemplate is a styled run whose text may reference record fields.
type SpanTemplate struct {
	Text       string
	Style      layout.StyleTag
	Font       string
	Color      *layout.Color
	Background *layout.Color
}

// Paragraph is a list of span templates plus how the paragraph is set.
type Paragraph struct {
	Spans   []SpanTemplate
	Justify bool
	Align   layout.HAlign
}

// Render interpolates the templates against data. Templates never join
// words: each one starts and ends on a word boundary.
func (p Paragraph) Render(data any) []layout.TextSpan { return renderSpans(p.Spans, data) }

func renderSpans(tpls []SpanTemplate, data any) []layout.TextSpan {
	out := make([]layout.TextSpan, 0, len(tpls))
	for _, t := range tpls {
		out = append(out, layout.TextSpan{
			Text:       binding.Interpolate(t.Text, data),
			Font:       t.Font,
			Style:      t.Style,
			Color:      t.Color,
			Background: t.Background,
		})
	}
	return out
}

func renderText(text string, data any) string {
	if text == "" {
		return ""
	}
	return binding.Interpolate(text, data)
}

// AssetColumns is the number of asset table columns: code, name, location,
// category, subcategory, status and the shared description.
const AssetColumns = 7

// TableTemplate holds the asset table captions and relative widths.
type TableTemplate struct {
	Header  []string
	Columns []float64
}

// SignatureTemplate holds the fixed role caption of one signing party.
type SignatureTemplate struct {
	Label        string
	CaptionAbove string
}

// Flavor describes one kind of act: its wording, captions and role labels.
// Handover and return acts are two flavors of the same composer.
type Flavor struct {
	Name       string
	Meta       layout.DocumentMeta
	FilePrefix string
	Title      []SpanTemplate
	Paragraphs map[Section]Paragraph
	Table      TableTemplate
	Giver      SignatureTemplate
	Receiver   SignatureTemplate
}

// Builtin lists the embedded flavor names.
func Builtin() []string {
	entries, _ := flavorFS.ReadDir("flavors")
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".acta"))
	}
	sort.Strings(names)
	return names
}

// LoadFlavor returns an embedded flavor by name.
func LoadFlavor(name string) (*Flavor, error) {
	data, err := flavorFS.ReadFile(path.Join("flavors", name+".acta"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFlavor, name)
	}
	return ParseFlavor(name+".acta", strings.NewReader(string(data)))
}

// LoadFlavorFile parses a flavor file from disk.
func LoadFlavorFile(filename string) (*Flavor, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open flavor: %w", err)
	}
	defer f.Close()
	return ParseFlavor(filename, f)
}

// ResolveFlavor treats ref as a file path when it ends in .acta and as an
// embedded flavor name otherwise.
func ResolveFlavor(ref string) (*Flavor, error) {
	if strings.HasSuffix(ref, ".acta") {
		return LoadFlavorFile(ref)
	}
	return LoadFlavor(ref)
}

// ParseFlavor parses and validates flavor source. Unknown styles, unknown
// sections and placeholders that no record field provides are rejected
// here, before any document is composed.
func ParseFlavor(name string, r io.Reader) (*Flavor, error) {
	file, err := dsl.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFlavor, err)
	}
	fl, err := decodeFlavor(file.Flavor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFlavor, err)
	}
	return fl, nil
}

func decodeFlavor(node *dsl.Flavor) (*Flavor, error) {
	fl := &Flavor{
		Name:       node.Name,
		Paragraphs: map[Section]Paragraph{},
		FilePrefix: "acta-" + node.Name,
	}
	for _, cmd := range node.Block.Commands() {
		var err error
		switch cmd.Name {
		case "meta":
			err = fl.decodeMeta(cmd)
		case "title":
			fl.Title, err = decodeSpans(cmd.Block, nil)
		case "paragraph":
			err = fl.decodeParagraph(cmd)
		case "table":
			err = fl.decodeTable(cmd)
		case "signatures":
			err = fl.decodeSignatures(cmd)
		default:
			err = cmd.Errorf("unknown statement %q", cmd.Name)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := fl.validate(); err != nil {
		return nil, err
	}
	return fl, nil
}

func (fl *Flavor) decodeMeta(cmd *dsl.Command) error {
	for key, v := range cmd.Block.Assignments() {
		switch key {
		case "title", "subject", "author", "creator", "file":
			s, ok := v.Text()
			if !ok {
				return cmd.Errorf("meta %s: expected text", key)
			}
			switch key {
			case "title":
				fl.Meta.Title = s
			case "subject":
				fl.Meta.Subject = s
			case "author":
				fl.Meta.Author = s
			case "creator":
				fl.Meta.Creator = s
			case "file":
				fl.FilePrefix = s
			}
		case "keywords":
			kw, err := v.Strings()
			if err != nil {
				return cmd.Errorf("meta keywords: %v", err)
			}
			fl.Meta.Keywords = kw
		default:
			return cmd.Errorf("unknown meta key %q", key)
		}
	}
	return nil
}

func (fl *Flavor) decodeParagraph(cmd *dsl.Command) error {
	if len(cmd.Args) == 0 {
		return cmd.Errorf("paragraph needs a section name")
	}
	sec := Section(cmd.Args[0].Value)
	if !sections[sec] {
		return cmd.Errorf("unknown paragraph section %q", sec)
	}
	p := Paragraph{Justify: true, Align: layout.AlignLeft}
	for _, arg := range cmd.Args[1:] {
		switch arg.Value {
		case "center":
			p.Align = layout.AlignCenter
		case "left":
			p.Align = layout.AlignLeft
		case "justify":
			p.Justify = true
		case "ragged":
			p.Justify = false
		default:
			return cmd.Errorf("unknown paragraph option %q", arg.Value)
		}
	}
	spans, err := decodeSpans(cmd.Block, func(a *dsl.Assignment) error {
		if a.Key != "justify" {
			return cmd.Errorf("unknown paragraph key %q", a.Key)
		}
		on, err := a.Value.Bool()
		if err != nil {
			return cmd.Errorf("paragraph justify: %v", err)
		}
		p.Justify = on
		return nil
	})
	if err != nil {
		return err
	}
	p.Spans = spans
	fl.Paragraphs[sec] = p
	return nil
}

func (fl *Flavor) decodeTable(cmd *dsl.Command) error {
	for key, v := range cmd.Block.Assignments() {
		switch key {
		case "header":
			h, err := v.Strings()
			if err != nil {
				return cmd.Errorf("table header: %v", err)
			}
			fl.Table.Header = h
		case "columns":
			c, err := v.Floats()
			if err != nil {
				return cmd.Errorf("table columns: %v", err)
			}
			fl.Table.Columns = c
		default:
			return cmd.Errorf("unknown table key %q", key)
		}
	}
	return nil
}

func (fl *Flavor) decodeSignatures(cmd *dsl.Command) error {
	for key, v := range cmd.Block.Assignments() {
		s, ok := v.Text()
		if !ok {
			return cmd.Errorf("signatures %s: expected text", key)
		}
		switch key {
		case "giver":
			fl.Giver.Label = s
		case "receiver":
			fl.Receiver.Label = s
		case "giverAbove":
			fl.Giver.CaptionAbove = s
		case "receiverAbove":
			fl.Receiver.CaptionAbove = s
		default:
			return cmd.Errorf("unknown signatures key %q", key)
		}
	}
	return nil
}

// decodeSpans reads the statements of a span block: bare strings are
// normal text; `<style> "text" [color #hex] [background #hex] [font name]`
// sets a styled run. Assignments go to assign; nil rejects them.
func decodeSpans(b *dsl.Block, assign func(*dsl.Assignment) error) ([]SpanTemplate, error) {
	if b == nil {
		return nil, nil
	}
	var out []SpanTemplate
	for _, st := range b.Statements {
		switch {
		case st.Text != nil:
			out = append(out, SpanTemplate{Text: string(st.Text.Value)})
		case st.Command != nil:
			sp, err := decodeSpan(st.Command)
			if err != nil {
				return nil, err
			}
			out = append(out, sp)
		case assign != nil:
			if err := assign(st.Assignment); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("assignment %q not allowed in text", st.Assignment.Key)
		}
	}
	return out, nil
}

func decodeSpan(cmd *dsl.Command) (SpanTemplate, error) {
	style, err := layout.ParseStyleTag(cmd.Name)
	if err != nil {
		return SpanTemplate{}, cmd.Errorf("%v", err)
	}
	if len(cmd.Args) == 0 || cmd.Args[0].Type != "String" {
		return SpanTemplate{}, cmd.Errorf("%s: expected quoted text", cmd.Name)
	}
	base, err := layout.Span(cmd.Args[0].Value, style)
	if err != nil {
		return SpanTemplate{}, cmd.Errorf("%v", err)
	}
	sp := SpanTemplate{Text: base.Text, Style: base.Style}
	rest := cmd.Args[1:]
	for len(rest) > 0 {
		if len(rest) < 2 {
			return SpanTemplate{}, cmd.Errorf("option %q needs a value", rest[0].Value)
		}
		key, val := rest[0].Value, rest[1].Value
		switch key {
		case "color", "background":
			r, g, b, err := dsl.ParseColor(val)
			if err != nil {
				return SpanTemplate{}, cmd.Errorf("%v", err)
			}
			c := &layout.Color{R: r, G: g, B: b}
			if key == "color" {
				sp.Color = c
			} else {
				sp.Background = c
			}
		case "font":
			sp.Font = val
		default:
			return SpanTemplate{}, cmd.Errorf("unknown span option %q", key)
		}
		rest = rest[2:]
	}
	return sp, nil
}

func (fl *Flavor) validate() error {
	if len(fl.Title) == 0 {
		return fmt.Errorf("flavor %s: missing title", fl.Name)
	}
	if len(fl.Table.Header) != AssetColumns {
		return fmt.Errorf("flavor %s: table header has %d captions, want %d", fl.Name, len(fl.Table.Header), AssetColumns)
	}
	if fl.Table.Columns != nil && len(fl.Table.Columns) != AssetColumns {
		return fmt.Errorf("flavor %s: table has %d column widths, want %d", fl.Name, len(fl.Table.Columns), AssetColumns)
	}
	if fl.Giver.Label == "" || fl.Receiver.Label == "" {
		return fmt.Errorf("flavor %s: both signature labels are required", fl.Name)
	}

	known := Record{}.Fields()
	check := func(where, text string) error {
		for _, p := range binding.Placeholders(text) {
			if !binding.Resolves(known, p) {
				return fmt.Errorf("flavor %s: %s references unknown field ${%s}", fl.Name, where, p)
			}
		}
		return nil
	}
	texts := map[string][]SpanTemplate{"title": fl.Title}
	for sec, p := range fl.Paragraphs {
		texts["paragraph "+string(sec)] = p.Spans
	}
	for where, spans := range texts {
		for _, sp := range spans {
			if err := check(where, sp.Text); err != nil {
				return err
			}
		}
	}
	for where, s := range map[string]string{
		"meta title": fl.Meta.Title, "meta subject": fl.Meta.Subject,
		"giver caption": fl.Giver.CaptionAbove, "receiver caption": fl.Receiver.CaptionAbove,
	} {
		if err := check(where, s); err != nil {
			return err
		}
	}
	return nil
}
