// Package backend defines the abstract contract every execution engine
// (software rasterizer or GPU) implements to replay a
// [github.com/gogpu/ink/recording.Recording] onto a target (spec §4.8).
package backend

import (
	"github.com/gogpu/ink"
	"github.com/gogpu/ink/recording"
	"github.com/gogpu/ink/text"
)

// Backend replays a sorted Recording onto whatever target it owns.
//
// All methods are infallible in normal use (spec §7): allocation or
// GPU-API errors are absorbed internally and surfaced only as degraded
// output (a snapshot of the pre-failure target) plus a log line, never a
// panic or returned error.
type Backend interface {
	// BeginFrame prepares the target and fills it with clearColor.
	BeginFrame(clearColor ink.Color)

	// EndFrame flushes any pending work. A no-op on the CPU backend; a
	// pipeline flush on the GPU backend.
	EndFrame()

	// Execute replays rec in the order given by pass.
	Execute(rec *recording.Recording, pass *recording.DrawPass)

	// Resize re-creates target storage at the given dimensions.
	Resize(width, height int)

	// SetGlyphAtlas installs the atlas used for Text ops. Passing nil
	// uninstalls it (subsequent Text ops are skipped with a logged
	// warning, per spec §7's GlyphAtlasMissing policy).
	SetGlyphAtlas(atlas *text.Atlas)

	// MakeSnapshot returns an immutable Image of the current target
	// contents, or nil if the target is invalid (spec §7: TargetInvalid).
	MakeSnapshot() *ink.Image

	// Close releases any backend-owned resources (GPU framebuffer,
	// pipelines, vertex buffers, texture cache). A no-op on the CPU
	// backend, which owns nothing beyond the caller-supplied Pixmap.
	Close()
}
