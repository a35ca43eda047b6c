package acta

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ByLCY/acta/layout"
)

// ErrNoLineItems is returned when a record has no assets: an act without a
// table is refused instead of printing an empty one.
var ErrNoLineItems = errors.New("acta: record has no line items")

// DefaultFooterCaption is printed centered at the bottom of every page.
const DefaultFooterCaption = "Sistema de Control de Bienes Patrimoniales"

// Options configures a Composer. Zero fields take the documented defaults.
type Options struct {
	Measurer layout.Measurer
	// Geometry defaults to US Letter with 2.5 cm margins.
	Geometry layout.PageGeometry
	// BodyFont defaults to serif 10 pt; SmallFont (header, footer, table)
	// to serif 8 pt.
	BodyFont        layout.Font
	SmallFont       layout.Font
	FooterCaption   string
	HidePageNumbers bool
	Author          string
	Creator         string
	Logger          *slog.Logger
}

// Composer turns a record and a flavor into a paginated display list. It
// holds configuration only; every Compose call works on its own frame, so
// one Composer may serve concurrent requests.
type Composer struct {
	opts   Options
	logger *slog.Logger
}

// NewComposer validates opts and fills defaults.
func NewComposer(opts Options) (*Composer, error) {
	if opts.Measurer == nil {
		return nil, layout.ErrNoMeasurer
	}
	if opts.Geometry == (layout.PageGeometry{}) {
		opts.Geometry = layout.Letter(layout.CM(2.5))
	}
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}
	if opts.BodyFont.Size <= 0 {
		opts.BodyFont = layout.Font{Family: layout.FamilySerif, Size: 10}
	}
	if opts.SmallFont.Size <= 0 {
		opts.SmallFont = layout.Font{Family: opts.BodyFont.Family, Size: 8}
	}
	if opts.FooterCaption == "" {
		opts.FooterCaption = DefaultFooterCaption
	}
	if opts.Creator == "" {
		opts.Creator = "acta"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Composer{opts: opts, logger: logger}, nil
}

// Compose lays out rec as fl: header and footer on every page, centered
// title, intro, giver and receiver sections, table caption, asset table,
// closing paragraph and the two signatures.
func (c *Composer) Compose(rec Record, fl *Flavor) (*layout.Result, error) {
	if fl == nil {
		return nil, fmt.Errorf("%w: nil flavor", ErrInvalidFlavor)
	}
	if len(rec.Items) == 0 {
		return nil, ErrNoLineItems
	}
	rec = rec.Normalized()
	data := rec.Fields()

	geom := c.opts.Geometry
	small := c.opts.SmallFont
	body := c.opts.BodyFont
	headerBaseline := geom.Margin.Top
	footerBaseline := geom.ContentBottom() + layout.LineHeight(small.Size)*1.5

	var frame *layout.Frame
	header := func(s *layout.Surface, page int) {
		frame.Text(page, "Código: "+rec.Code, geom.Margin.Left, headerBaseline, small, layout.Black)
	}
	footer := func(s *layout.Surface, page int) {
		frame.CenteredText(page, c.opts.FooterCaption, footerBaseline, small, layout.Black)
	}
	frame, err := layout.NewFrame(layout.FrameOptions{
		Geometry:   geom,
		Measurer:   c.opts.Measurer,
		TopOffset:  headerBaseline + layout.LineHeight(small.Size),
		Decorators: []layout.PageDecorator{header, footer},
		Logger:     c.logger,
	})
	if err != nil {
		return nil, err
	}

	gap := layout.LineHeight(body.Size) / 2
	cur := frame.Start()

	title := body.WithSize(body.Size + 2)
	cur, err = frame.Paragraph(cur, renderSpans(fl.Title, data), layout.ParagraphOptions{Font: title, Align: layout.AlignCenter})
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	cur = cur.Advance(gap)

	paragraph := func(cur layout.Cursor, sec Section) (layout.Cursor, error) {
		p, ok := fl.Paragraphs[sec]
		if !ok {
			return cur, nil
		}
		next, err := frame.Paragraph(cur, p.Render(data), layout.ParagraphOptions{
			Font:    body,
			Justify: p.Justify,
			Align:   p.Align,
		})
		if err != nil {
			return cur, fmt.Errorf("paragraph %s: %w", sec, err)
		}
		if next == cur {
			return cur, nil
		}
		return next.Advance(gap), nil
	}

	for _, sec := range []Section{SectionIntro, SectionGiver, SectionReceiver, SectionCaption} {
		if cur, err = paragraph(cur, sec); err != nil {
			return nil, err
		}
	}

	spec, err := BuildAssetTable(rec.Items, rec.Description, fl.Table)
	if err != nil {
		return nil, err
	}
	topts := layout.DefaultTableOptions()
	topts.Font = small
	cur, err = frame.Table(cur, spec, topts)
	if errors.Is(err, layout.ErrEmptyTable) {
		return nil, ErrNoLineItems
	}
	if err != nil {
		return nil, fmt.Errorf("asset table: %w", err)
	}
	cur = cur.Advance(gap)

	if cur, err = paragraph(cur, SectionClosing); err != nil {
		return nil, err
	}

	sopts := layout.DefaultSignatureOptions()
	sopts.Font = body
	entries := [2]layout.SignatureEntry{
		{
			Label:            fl.Giver.Label,
			CaptionAboveLine: renderText(fl.Giver.CaptionAbove, data),
			CaptionBelowLine: Upper(rec.Giver.FullName()),
		},
		{
			Label:            fl.Receiver.Label,
			CaptionAboveLine: renderText(fl.Receiver.CaptionAbove, data),
			CaptionBelowLine: Upper(rec.Receiver.FullName()),
		},
	}
	if cur, err = frame.Signatures(cur, entries, sopts); err != nil {
		return nil, fmt.Errorf("signatures: %w", err)
	}

	total := frame.Surface.PageCount()
	if !c.opts.HidePageNumbers {
		for i := 0; i < total; i++ {
			frame.RightText(i, fmt.Sprintf("Página %d de %d", i+1, total), footerBaseline, small, layout.Black)
		}
	}

	c.logger.Debug("acta composed",
		slog.String("flavor", fl.Name),
		slog.String("code", rec.Code),
		slog.Int("items", len(rec.Items)),
		slog.Int("pages", total),
		slog.Int("breaks", frame.Pager.Breaks()),
	)
	return frame.Result(c.meta(fl, data)), nil
}

func (c *Composer) meta(fl *Flavor, data map[string]any) layout.DocumentMeta {
	m := layout.DocumentMeta{
		Title:    renderText(fl.Meta.Title, data),
		Subject:  renderText(fl.Meta.Subject, data),
		Author:   fl.Meta.Author,
		Creator:  fl.Meta.Creator,
		Keywords: append([]string(nil), fl.Meta.Keywords...),
	}
	if m.Author == "" {
		m.Author = c.opts.Author
	}
	if m.Creator == "" {
		m.Creator = c.opts.Creator
	}
	return m
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DocumentName returns the file name for rec printed as fl, eg.
// "acta-entrega-ACT-2025-001.pdf".
func DocumentName(rec Record, fl *Flavor) string {
	prefix := "acta"
	if fl != nil && fl.FilePrefix != "" {
		prefix = fl.FilePrefix
	}
	code := strings.Trim(unsafeName.ReplaceAllString(clean(rec.Code), "-"), "-")
	if code == "" {
		return prefix + ".pdf"
	}
	return prefix + "-" + code + ".pdf"
}
