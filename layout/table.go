package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrEmptyTable is returned for a table without body rows.
	ErrEmptyTable = errors.New("layout: table has no rows")
	// ErrInvalidRowSpan is returned when a row span runs past the last row
	// or a covered position carries content.
	ErrInvalidRowSpan = errors.New("layout: invalid row span")
)

// VAlign positions cell text vertically.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
)

// CellSpec is one table cell. RowSpan values above 1 merge the cell with
// the same column of the following RowSpan-1 rows, which must hold empty
// placeholders.
type CellSpec struct {
	Content string `json:"content"`
	RowSpan int    `json:"rowSpan,omitempty"`
	Align   VAlign `json:"align,omitempty"`
}

// RowSpec is one body row.
type RowSpec []CellSpec

// TableSpec describes a table: header captions, body rows and relative
// column widths. Nil Columns means equal widths.
type TableSpec struct {
	Header  []string  `json:"header"`
	Rows    []RowSpec `json:"rows"`
	Columns []float64 `json:"columns,omitempty"`
}

// TableOptions controls table styling.
type TableOptions struct {
	Font        Font
	HeaderStyle StyleTag
	Padding     float64
	BorderWidth float64
	BorderColor Color
	TextColor   Color
}

// DefaultTableOptions returns the 8 pt bordered style used for asset lists.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		Font:        Font{Family: FamilySerif, Style: StyleNormal, Size: 8},
		HeaderStyle: StyleBoldItalic,
		Padding:     3,
		BorderWidth: 0.5,
		BorderColor: Black,
		TextColor:   Black,
	}
}

func (spec TableSpec) columnCount() int {
	if len(spec.Header) > 0 {
		return len(spec.Header)
	}
	if len(spec.Rows) > 0 {
		return len(spec.Rows[0])
	}
	return 0
}

// Validate checks row widths and row spans.
func (spec TableSpec) Validate() error {
	if len(spec.Rows) == 0 {
		return ErrEmptyTable
	}
	cols := spec.columnCount()
	if spec.Columns != nil && len(spec.Columns) != cols {
		return fmt.Errorf("layout: %d column widths for %d columns", len(spec.Columns), cols)
	}
	covered := make([]int, cols)
	for r, row := range spec.Rows {
		if len(row) != cols {
			return fmt.Errorf("layout: row %d has %d cells, want %d", r, len(row), cols)
		}
		for c, cell := range row {
			if covered[c] > 0 {
				if strings.TrimSpace(cell.Content) != "" || cell.RowSpan > 1 {
					return fmt.Errorf("%w: row %d column %d lies under a merged cell", ErrInvalidRowSpan, r, c)
				}
				covered[c]--
				continue
			}
			if cell.RowSpan < 0 {
				return fmt.Errorf("%w: row %d column %d span %d", ErrInvalidRowSpan, r, c, cell.RowSpan)
			}
			if cell.RowSpan > 1 {
				if r+cell.RowSpan > len(spec.Rows) {
					return fmt.Errorf("%w: row %d column %d spans %d of %d remaining rows",
						ErrInvalidRowSpan, r, c, cell.RowSpan, len(spec.Rows)-r)
				}
				covered[c] = cell.RowSpan - 1
			}
		}
	}
	return nil
}

// tableLayout holds everything measured before drawing.
type tableLayout struct {
	widths  []float64
	header  [][]string
	headerH float64
	cells   [][][]string // wrapped text per body cell; nil when covered
	heights []float64
	groups  [][2]int // [first, last] row of each merge group
}

func (tl tableLayout) groupHeight(g [2]int) float64 {
	h := 0.0
	for r := g[0]; r <= g[1]; r++ {
		h += tl.heights[r]
	}
	return h
}

// Table draws spec at cur and returns the cursor immediately below the last
// row. Rows are kept with their merge group when the group fits on a fresh
// page; on every break the header row is repeated.
func (f *Frame) Table(cur Cursor, spec TableSpec, opts TableOptions) (Cursor, error) {
	if err := spec.Validate(); err != nil {
		return cur, err
	}
	if opts.Font.Size <= 0 {
		opts = DefaultTableOptions()
	}
	tl := f.measureTable(spec, opts)

	// Keep the header with the first group, or at least its first row.
	first := tl.groupHeight(tl.groups[0])
	if tl.headerH+first > f.Pager.Room() {
		first = tl.heights[0]
	}
	cur = f.Pager.EnsureSpace(cur, tl.headerH+first)
	cur = f.tableHeader(cur, tl, opts)

	spans := make([]*spanSegment, len(tl.widths))
	for _, g := range tl.groups {
		gh := tl.groupHeight(g)
		if !f.Pager.Fits(cur, gh) && gh <= f.Pager.Room()-tl.headerH {
			cur = f.tableBreak(cur, tl, opts, spans)
		}
		for r := g[0]; r <= g[1]; r++ {
			if !f.Pager.Fits(cur, tl.rowHeight(r, spans, opts)) {
				f.logger.Debug("table group split", slog.Int("row", r), slog.Int("page", cur.Page))
				cur = f.tableBreak(cur, tl, opts, spans)
			}
			cur = f.tableRow(cur, spec.Rows[r], r, tl, opts, spans)
		}
	}
	return cur, nil
}

// rowHeight is the measured height of row r, grown when a merged cell
// closing on this row still has more lines than its segment can hold.
func (tl tableLayout) rowHeight(r int, spans []*spanSegment, opts TableOptions) float64 {
	h := tl.heights[r]
	lh := LineHeight(opts.Font.Size)
	for _, seg := range spans {
		if seg == nil || seg.remaining != 1 {
			continue
		}
		need := float64(len(seg.lines)-seg.next)*lh + 2*opts.Padding
		h = max(h, need-seg.height)
	}
	return h
}

func (f *Frame) measureTable(spec TableSpec, opts TableOptions) tableLayout {
	cols := spec.columnCount()
	usable := f.Geometry.UsableWidth()
	tl := tableLayout{widths: make([]float64, cols)}

	total := 0.0
	for c := 0; c < cols; c++ {
		wt := 1.0
		if spec.Columns != nil && spec.Columns[c] > 0 {
			wt = spec.Columns[c]
		}
		tl.widths[c] = wt
		total += wt
	}
	for c := range tl.widths {
		tl.widths[c] = usable * tl.widths[c] / total
	}

	lh := LineHeight(opts.Font.Size)
	minRow := lh + 2*opts.Padding
	headFont := opts.Font.WithStyle(opts.HeaderStyle)

	tl.header = make([][]string, cols)
	tl.headerH = minRow
	for c := 0; c < cols && c < len(spec.Header); c++ {
		tl.header[c] = f.wrapCell(spec.Header[c], headFont, tl.widths[c]-2*opts.Padding)
		tl.headerH = max(tl.headerH, float64(len(tl.header[c]))*lh+2*opts.Padding)
	}

	n := len(spec.Rows)
	tl.cells = make([][][]string, n)
	tl.heights = make([]float64, n)
	covered := make([]int, cols)
	for r, row := range spec.Rows {
		tl.cells[r] = make([][]string, cols)
		tl.heights[r] = minRow
		for c, cell := range row {
			if covered[c] > 0 {
				covered[c]--
				continue
			}
			lines := f.wrapCell(cell.Content, opts.Font, tl.widths[c]-2*opts.Padding)
			tl.cells[r][c] = lines
			if cell.RowSpan > 1 {
				covered[c] = cell.RowSpan - 1
				continue
			}
			tl.heights[r] = max(tl.heights[r], float64(len(lines))*lh+2*opts.Padding)
		}
	}
	tl.groups = mergeGroups(spec.Rows)
	f.stretchMerged(spec, &tl, lh, opts.Padding)
	return tl
}

// mergeGroups returns [first, last] row ranges that merged cells tie
// together. A row without spans is a group of its own.
func mergeGroups(rows []RowSpec) [][2]int {
	var groups [][2]int
	for r := 0; r < len(rows); {
		last := r
		for k := r; k <= last; k++ {
			for _, cell := range rows[k] {
				if cell.RowSpan > 1 {
					last = max(last, k+cell.RowSpan-1)
				}
			}
		}
		groups = append(groups, [2]int{r, last})
		r = last + 1
	}
	return groups
}

// stretchMerged grows the last row under a merged cell until the summed
// height of the spanned rows holds the merged text.
func (f *Frame) stretchMerged(spec TableSpec, tl *tableLayout, lh, pad float64) {
	for r, row := range spec.Rows {
		for c, cell := range row {
			if cell.RowSpan <= 1 || tl.cells[r][c] == nil {
				continue
			}
			last := r + cell.RowSpan - 1
			sum := 0.0
			for k := r; k <= last; k++ {
				sum += tl.heights[k]
			}
			need := float64(len(tl.cells[r][c]))*lh + 2*pad
			if need > sum {
				tl.heights[last] += need - sum
			}
		}
	}
}

// wrapCell splits text into lines no wider than limit. Explicit newlines
// are kept.
func (f *Frame) wrapCell(text string, font Font, limit float64) []string {
	var out []string
	space := f.TextWidth(" ", font)
	for _, para := range strings.Split(text, "\n") {
		var words []word
		for _, w := range strings.Fields(para) {
			words = append(words, word{text: w, width: f.TextWidth(w, font)})
		}
		for _, ln := range wrap(words, limit, space) {
			parts := make([]string, len(ln.words))
			for i, w := range ln.words {
				parts[i] = w.text
			}
			out = append(out, strings.Join(parts, " "))
		}
	}
	if len(out) == 0 {
		return []string{}
	}
	return out
}

func (f *Frame) tableHeader(cur Cursor, tl tableLayout, opts TableOptions) Cursor {
	font := opts.Font.WithStyle(opts.HeaderStyle)
	x := f.Geometry.Margin.Left
	for c, w := range tl.widths {
		f.cellBox(cur.Page, x, cur.Y, w, tl.headerH, opts)
		f.cellText(cur.Page, tl.header[c], x, cur.Y, tl.headerH, font, AlignMiddle, opts)
		x += w
	}
	return cur.Advance(tl.headerH)
}

// spanSegment tracks the part of a merged cell drawn on the current page.
// Lines before next were drawn on earlier pages.
type spanSegment struct {
	lines     []string
	align     VAlign
	top       float64
	height    float64
	remaining int
	next      int
}

func (f *Frame) tableRow(cur Cursor, row RowSpec, r int, tl tableLayout, opts TableOptions, spans []*spanSegment) Cursor {
	h := tl.rowHeight(r, spans, opts)
	x := f.Geometry.Margin.Left
	for c, w := range tl.widths {
		lines := tl.cells[r][c]
		switch {
		case lines != nil && row[c].RowSpan > 1:
			spans[c] = &spanSegment{lines: lines, align: row[c].Align, top: cur.Y, remaining: row[c].RowSpan}
		case lines != nil:
			f.cellBox(cur.Page, x, cur.Y, w, h, opts)
			f.cellText(cur.Page, lines, x, cur.Y, h, opts.Font, row[c].Align, opts)
		}
		if seg := spans[c]; seg != nil {
			seg.height += h
			seg.remaining--
			if seg.remaining == 0 {
				f.flushSpan(cur.Page, seg, x, w, opts, true)
				spans[c] = nil
			}
		}
		x += w
	}
	return cur.Advance(h)
}

// tableBreak closes open merged cells on the current page, opens a new page
// and repeats the header row.
func (f *Frame) tableBreak(cur Cursor, tl tableLayout, opts TableOptions, spans []*spanSegment) Cursor {
	x := f.Geometry.Margin.Left
	for c, w := range tl.widths {
		if seg := spans[c]; seg != nil && seg.height > 0 {
			f.flushSpan(cur.Page, seg, x, w, opts, false)
		}
		x += w
	}
	cur = f.Pager.NewPage(cur)
	cur = f.tableHeader(cur, tl, opts)
	for _, seg := range spans {
		if seg != nil {
			seg.top, seg.height = cur.Y, 0
		}
	}
	return cur
}

// flushSpan boxes the segment and draws the merged lines that fit inside
// it. The rest carry over to the next segment; the last one takes them all.
func (f *Frame) flushSpan(page int, seg *spanSegment, x, w float64, opts TableOptions, last bool) {
	f.cellBox(page, x, seg.top, w, seg.height, opts)
	rest := seg.lines[seg.next:]
	n := len(rest)
	if !last {
		fit := int((seg.height-2*opts.Padding)/LineHeight(opts.Font.Size) + 1e-9)
		n = min(max(fit, 0), n)
	}
	align := seg.align
	if seg.next > 0 || n < len(rest) {
		align = AlignTop
	}
	f.cellText(page, rest[:n], x, seg.top, seg.height, opts.Font, align, opts)
	seg.next += n
}

func (f *Frame) cellBox(page int, x, y, w, h float64, opts TableOptions) {
	border := opts.BorderColor
	f.Surface.DrawRect(page, Rect{
		X:           x,
		Y:           y,
		Width:       w,
		Height:      h,
		StrokeColor: &border,
		StrokeWidth: opts.BorderWidth,
	})
}

func (f *Frame) cellText(page int, lines []string, x, y, h float64, font Font, align VAlign, opts TableOptions) {
	lh := LineHeight(font.Size)
	top := y + opts.Padding
	if align == AlignMiddle {
		top = max(top, y+(h-float64(len(lines))*lh)/2)
	}
	for i, ln := range lines {
		f.Text(page, ln, x+opts.Padding, baseline(top+float64(i)*lh, font), font, opts.TextColor)
	}
}
