// Package ink provides a retained-mode 2D rendering pipeline: record high
// level drawing commands against a [github.com/gogpu/ink/recording.Canvas],
// compile them into a compact
// [github.com/gogpu/ink/recording.Recording], sort that recording into an
// efficient execution order with a
// [github.com/gogpu/ink/recording.DrawPass], and replay it onto a
// [github.com/gogpu/ink/surface.Surface] through a software or GPU backend.
//
// # Overview
//
//	s, _ := surface.MakeRaster(256, 256, ink.RGBA8888)
//	s.BeginFrame(ink.Black)
//	s.Canvas().FillRect(ink.Rect{X: 0, Y: 0, W: 256, H: 256}, ink.RGB(255, 0, 0))
//	s.EndFrame()
//	s.Flush()
//	snap := s.MakeSnapshot()
//
// # Architecture
//
// The library is organized as:
//   - Root package (this one): Point, Rect, Color, Pixmap, Image.
//   - recording: Arena, DrawOp, Recording, Recorder, Canvas, DrawPass.
//   - backend, backend/cpu, backend/gpu: the execution engines.
//   - text: GlyphAtlas, the greyscale glyph cache shared by both backends.
//   - surface: Surface, tying a backend and a Canvas to a render target.
//
// # Coordinate system
//
// Top-left origin, X increases right, Y increases down, all in pixels.
//
// # Non-goals
//
// Path rendering beyond polylines, antialiasing of primitive edges,
// affine/perspective transforms, color management, subpixel text
// positioning, multithreaded recording, and shader hot-reloading.
package ink

// Version identifiers for the ink module, following the teacher's own
// versioning convention. Not tied to any build or release tooling — those
// are out of scope (see spec §1).
const (
	Version           = "0.1.0-alpha.1"
	VersionMajor      = 0
	VersionMinor      = 1
	VersionPatch      = 0
	VersionPrerelease = "alpha.1"
)
