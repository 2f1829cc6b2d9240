package text

// shelfAllocator implements shelf-based rectangle packing: glyphs are
// placed left-to-right on horizontal strips of fixed height (the tallest
// glyph placed on that strip so far). Packing is next-fit: only the most
// recently opened strip is tried, and a new strip is opened below it when
// the rectangle does not fit there.
//
// Adapted from gogpu-gg/text/msdf/shelf.go's ShelfAllocator, trimmed to
// the subset Atlas needs (no fixed-cell fast path, no utilization
// reporting).
type shelfAllocator struct {
	width, height int
	padding       int
	shelves       []shelfRow
}

type shelfRow struct {
	y, height, x int
}

func newShelfAllocator(width, height, padding int) *shelfAllocator {
	return &shelfAllocator{width: width, height: height, padding: padding}
}

// allocate finds space for a w×h rectangle, returning its top-left corner.
func (a *shelfAllocator) allocate(w, h int) (x, y int, ok bool) {
	paddedW := w + a.padding
	paddedH := h + a.padding
	if paddedW > a.width {
		return -1, -1, false
	}

	if n := len(a.shelves); n > 0 {
		row := &a.shelves[n-1]
		if row.x+paddedW <= a.width && (h <= row.height || row.y+paddedH <= a.height) {
			if h > row.height {
				row.height = h
			}
			x, y = row.x, row.y
			row.x += paddedW
			return x, y, true
		}
	}

	newY := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		newY = last.y + last.height + a.padding
	}
	if newY+paddedH > a.height {
		return -1, -1, false
	}
	a.shelves = append(a.shelves, shelfRow{y: newY, height: h, x: paddedW})
	return 0, newY, true
}

// resize grows the packing area in place. Existing shelves and their
// occupied pixel ranges stay valid since only the unused tail grows.
func (a *shelfAllocator) resize(width, height int) {
	a.width = width
	a.height = height
}
