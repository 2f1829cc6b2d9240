// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface ties a [backend.Backend] and a [recording.Canvas] to a
// concrete render target, matching the lifecycle gogpu-gg/surface/surface.go
// defines for its own Surface interface (BeginFrame/Fill/Stroke/Flush/
// Snapshot/Close) but built around this module's record-sort-execute
// pipeline instead of immediate-mode painting.
package surface

import (
	"errors"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/backend"
	"github.com/gogpu/ink/backend/cpu"
	"github.com/gogpu/ink/backend/gpu"
	"github.com/gogpu/ink/recording"
	"github.com/gogpu/ink/text"
)

// PixelData is the raw view of a raster Surface's backing buffer returned
// by [Surface.GetPixelData] (spec §6). Go has no caller-visible pointer
// arithmetic, so the C-family `ptr` field becomes a byte slice aliasing
// the live buffer: mutating it mutates the surface directly.
type PixelData struct {
	Pixels      []byte
	Width       int
	Height      int
	StrideBytes int
	Format      ink.PixelFormat
}

// Surface is a render target: a backend, the Recorder/Canvas pair
// recording the in-progress frame, and (for raster surfaces) the pixmap
// the backend executes against.
//
// Surface is not safe for concurrent use (spec §5) — exactly like the
// teacher's own Surface implementations, which document themselves as
// single-goroutine-at-a-time.
type Surface struct {
	width, height int
	format        ink.PixelFormat

	backend backend.Backend
	pixmap  *ink.Pixmap // non-nil for raster surfaces, nil for GPU/recording-only

	rec    *recording.Recorder
	canvas *recording.Canvas

	recordingOnly bool
	closed        bool
}

// MakeRaster allocates an owned Pixmap of the given size/format and a
// CpuBackend over it (spec §4.12).
//
// Zero or negative dimensions are InvalidArgs (spec §7): MakeRaster
// returns a nil Surface and a non-nil error rather than panicking.
func MakeRaster(width, height int, format ink.PixelFormat) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("surface: MakeRaster requires positive width and height")
	}
	pm := ink.AllocPixmap(width, height, format)
	return newRasterSurface(pm, width, height, format), nil
}

// MakeRasterDirect builds a raster Surface over caller-owned pixels
// (spec §4.12). The caller must keep pixels alive and unmodified by
// others for the Surface's lifetime, matching [ink.WrapPixmap]'s
// borrowing contract.
func MakeRasterDirect(width, height, strideBytes int, format ink.PixelFormat, pixels []byte) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("surface: MakeRasterDirect requires positive width and height")
	}
	pm := ink.WrapPixmap(width, height, strideBytes, format, pixels)
	return newRasterSurface(pm, width, height, format), nil
}

func newRasterSurface(pm *ink.Pixmap, width, height int, format ink.PixelFormat) *Surface {
	rec := recording.NewRecorder()
	return &Surface{
		width:   width,
		height:  height,
		format:  format,
		backend: cpu.New(pm),
		pixmap:  pm,
		rec:     rec,
		canvas:  recording.NewCanvas(rec),
	}
}

// MakeGPU creates a GPU-backed Surface against provider, the same
// DeviceProvider handle the host application passes to gg renderers
// (render/device.go's DeviceHandle) rather than gg creating its own
// device. If provider is nil, provides a nil gpucontext.Device, or the
// GPU backend fails to initialize for any reason, MakeGPU falls back to
// [MakeRaster] of the same size — it never returns a nil Surface on its
// own account (spec §7: GpuInitFailure).
func MakeGPU(provider gpucontext.DeviceProvider, width, height int, format ink.PixelFormat) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("surface: MakeGPU requires positive width and height")
	}
	if provider == nil || provider.Device() == nil {
		ink.Logger().Info("surface: GPU context invalid or unavailable, falling back to CPU raster")
		return MakeRaster(width, height, format)
	}

	b, err := gpu.New(gpu.NewWGPUDevice(provider), width, height, format)
	if err != nil {
		ink.Logger().Info("surface: GPU backend init failed, falling back to CPU raster", "error", err)
		return MakeRaster(width, height, format)
	}

	rec := recording.NewRecorder()
	return &Surface{
		width:   width,
		height:  height,
		format:  format,
		backend: b,
		rec:     rec,
		canvas:  recording.NewCanvas(rec),
	}, nil
}

// MakeRecording creates a backend-less Surface that only captures draw
// commands (spec §4.12). BeginFrame/EndFrame/Flush still function
// (Flush finishes the Recording and builds a DrawPass, then discards
// both; neither is kept for a later Execute);
// MakeSnapshot always returns nil, matching spec §4.12's "recording-only
// surfaces return none."
func MakeRecording(width, height int) *Surface {
	rec := recording.NewRecorder()
	return &Surface{
		width:         width,
		height:        height,
		rec:           rec,
		canvas:        recording.NewCanvas(rec),
		recordingOnly: true,
	}
}

// Canvas returns the drawing API for the surface's in-progress frame.
func (s *Surface) Canvas() *recording.Canvas { return s.canvas }

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// BeginFrame resets the Recorder and, for backed surfaces, invokes the
// backend's BeginFrame with clear (spec §4.12).
func (s *Surface) BeginFrame(clear ink.Color) {
	s.rec = recording.NewRecorder()
	s.canvas = recording.NewCanvas(s.rec)
	if s.backend != nil {
		s.backend.BeginFrame(clear)
	}
}

// EndFrame calls the backend's EndFrame, if any (spec §4.12). It does not
// touch the Recorder; Flush is what finishes the Recording.
func (s *Surface) EndFrame() {
	if s.backend != nil {
		s.backend.EndFrame()
	}
}

// Flush builds a DrawPass for the current Recording and executes it
// against the backend (spec §4.12). A recording-only Surface still
// builds the DrawPass (exercising the same sort invariants any consumer
// of its Recording would rely on) but has nothing to execute it against.
func (s *Surface) Flush() error {
	rec := s.rec.Finish()
	pass := recording.Create(rec)
	if s.backend == nil {
		return nil
	}
	s.backend.Execute(rec, pass)
	return nil
}

// MakeSnapshot returns an immutable Image of the current target
// (spec §4.12): CPU surfaces copy pixels, GPU surfaces blit their
// texture, and recording-only surfaces return nil.
func (s *Surface) MakeSnapshot() *ink.Image {
	if s.backend == nil {
		return nil
	}
	return s.backend.MakeSnapshot()
}

// PeekPixels returns the backing Pixmap directly, without a copy, for
// raster surfaces only (spec §6). GPU and recording-only surfaces return
// nil.
func (s *Surface) PeekPixels() *ink.Pixmap { return s.pixmap }

// GetPixelData returns a [PixelData] view aliasing the raster surface's
// backing buffer (spec §6). GPU and recording-only surfaces return the
// zero value.
func (s *Surface) GetPixelData() PixelData {
	if s.pixmap == nil {
		return PixelData{}
	}
	return PixelData{
		Pixels:      s.pixmap.Pixels(),
		Width:       s.pixmap.Width(),
		Height:      s.pixmap.Height(),
		StrideBytes: s.pixmap.Stride(),
		Format:      s.pixmap.Format(),
	}
}

// Resize re-creates the surface's backing storage at the new dimensions
// (spec §6). Raster surfaces reallocate their Pixmap; backed surfaces
// also resize the backend's target. Existing content is not preserved,
// matching [ink.Pixmap.Reallocate]'s contract.
func (s *Surface) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	if s.backend != nil {
		// For raster surfaces, s.backend is a *cpu.Backend holding the
		// very *ink.Pixmap pointer in s.pixmap; its Resize already
		// reallocates it, so s.pixmap needs no reallocation of its own.
		s.backend.Resize(width, height)
	}
}

// Close releases the surface's backend resources (spec §6), mirroring
// the teacher's own Close() error lifecycle method. It is safe to call
// more than once; calls after the first are no-ops. A Surface must not
// be used for anything else once closed.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.backend != nil {
		s.backend.Close()
	}
	return nil
}

// SetGlyphCache installs the glyph atlas used for DrawText ops on this
// surface's backend (spec §6). A recording-only Surface stores nothing;
// text shaping is a backend-execution concern.
func (s *Surface) SetGlyphCache(atlas *text.Atlas) {
	if s.backend != nil {
		s.backend.SetGlyphAtlas(atlas)
	}
}
