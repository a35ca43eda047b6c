package layout

// Surface collects the elements drawn on each page. It is the only drawing
// target layout code writes to; renderers read it back through Pages.
type Surface struct {
	geom  PageGeometry
	pages []*Page
}

// NewSurface creates an empty surface; pages are opened by a Paginator.
func NewSurface(geom PageGeometry) *Surface {
	return &Surface{geom: geom}
}

func (s *Surface) addPage() int {
	s.pages = append(s.pages, &Page{
		Width:  s.geom.Width,
		Height: s.geom.Height,
		Margin: s.geom.Margin,
	})
	return len(s.pages) - 1
}

// PageCount returns the number of opened pages.
func (s *Surface) PageCount() int { return len(s.pages) }

// Page returns the page at index i, or nil when it does not exist.
func (s *Surface) Page(i int) *Page {
	if i < 0 || i >= len(s.pages) {
		return nil
	}
	return s.pages[i]
}

// DrawText appends a text run to page i. Out-of-range pages are ignored.
func (s *Surface) DrawText(i int, run TextRun) {
	if p := s.Page(i); p != nil {
		p.Texts = append(p.Texts, run)
	}
}

// DrawLine appends a line segment to page i.
func (s *Surface) DrawLine(i int, ln Line) {
	if p := s.Page(i); p != nil {
		p.Lines = append(p.Lines, ln)
	}
}

// DrawRect appends a rectangle to page i.
func (s *Surface) DrawRect(i int, rc Rect) {
	if p := s.Page(i); p != nil {
		p.Rects = append(p.Rects, rc)
	}
}

// Pages returns a copy of every page in order.
func (s *Surface) Pages() []Page {
	out := make([]Page, len(s.pages))
	for i, p := range s.pages {
		out[i] = *p
	}
	return out
}
