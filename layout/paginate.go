package layout

import "log/slog"

// Cursor is the vertical write position: Y is the top of the next line box
// on page Page. It is a value; every layout call takes one and returns the
// updated copy.
type Cursor struct {
	Y    float64 `json:"y"`
	Page int     `json:"page"`
}

// Advance returns the cursor moved down by dy.
func (c Cursor) Advance(dy float64) Cursor {
	c.Y += dy
	return c
}

// PageDecorator draws fixed content (header, footer) on a freshly opened page.
type PageDecorator func(s *Surface, page int)

// Paginator owns page transitions. It knows nothing about content: callers
// ask for room before they draw, and the paginator opens and decorates new
// pages when the room is not there.
type Paginator struct {
	surface    *Surface
	geom       PageGeometry
	top        float64
	decorators []PageDecorator
	breaks     int
	logger     *slog.Logger
}

// NewPaginator creates a paginator writing to surface. top is the y at
// which content starts on every page.
func NewPaginator(surface *Surface, geom PageGeometry, top float64, logger *slog.Logger, decorators ...PageDecorator) *Paginator {
	if logger == nil {
		logger = discardLogger()
	}
	if top <= 0 {
		top = geom.Margin.Top
	}
	return &Paginator{
		surface:    surface,
		geom:       geom,
		top:        top,
		decorators: decorators,
		logger:     logger,
	}
}

// Top is the content start offset used on every page.
func (p *Paginator) Top() float64 { return p.top }

// Bottom is the lowest y content may reach.
func (p *Paginator) Bottom() float64 { return p.geom.ContentBottom() }

// Room is the vertical space available on an empty page.
func (p *Paginator) Room() float64 { return p.Bottom() - p.top }

// Breaks returns how many page breaks have happened so far.
func (p *Paginator) Breaks() int { return p.breaks }

// Start opens the first page.
func (p *Paginator) Start() Cursor {
	return p.open()
}

// Fits reports whether height more points fit below cur on its page.
func (p *Paginator) Fits(cur Cursor, height float64) bool {
	return cur.Y+height <= p.Bottom()
}

// EnsureSpace breaks the page iff cur.Y + height > pageHeight - marginBottom.
func (p *Paginator) EnsureSpace(cur Cursor, height float64) Cursor {
	if p.Fits(cur, height) {
		return cur
	}
	return p.NewPage(cur)
}

// NewPage opens a page after cur, redraws header and footer on it and
// returns a cursor at the top offset.
func (p *Paginator) NewPage(cur Cursor) Cursor {
	p.breaks++
	next := p.open()
	p.logger.Debug("page break",
		slog.Int("from", cur.Page),
		slog.Int("to", next.Page),
		slog.Float64("y", cur.Y),
	)
	return next
}

func (p *Paginator) open() Cursor {
	idx := p.surface.addPage()
	for _, decorate := range p.decorators {
		decorate(p.surface, idx)
	}
	return Cursor{Y: p.top, Page: idx}
}
