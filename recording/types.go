package recording

import "github.com/gogpu/ink"

// Point, Rect, Color, and Image are aliased from the root ink package so
// that recording's public API speaks the same vocabulary as the rest of
// the module without re-declaring these value types.
type (
	Point = ink.Point
	Rect  = ink.Rect
	Color = ink.Color
	Image = ink.Image
)
