// Package text implements the glyph atlas shared by the CPU and GPU
// backends: it rasterizes glyphs on first use, packs them into a single
// growable greyscale bitmap, and answers measurement queries (spec §4.7).
//
// Font parsing and outline rasterization are treated as a black-box
// collaborator, grounded on the teacher's own gogpu-gg/text/rasterize.go:
// golang.org/x/image/font/opentype parses the font file and
// golang.org/x/image/font.Drawer scan-converts each glyph into an
// image.Alpha coverage mask, which Atlas then copies into its packed
// bitmap. Shelf packing is adapted from gogpu-gg/text/msdf/shelf.go.
//
// Text is treated as ASCII, matching spec §4.7: a string is defensively
// NFC-normalized (golang.org/x/text/unicode/norm) and then walked byte by
// byte, each byte used directly as a cache key. Multi-byte UTF-8 runes
// therefore degrade to their constituent bytes rather than being shaped;
// this mirrors the spec's explicit simplification, not an oversight.
package text
