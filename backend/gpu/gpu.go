package gpu

import (
	"math"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/backend"
	"github.com/gogpu/ink/recording"
	"github.com/gogpu/ink/text"
)

var (
	_ backend.Backend         = (*Backend)(nil)
	_ recording.DrawOpVisitor = (*Backend)(nil)
)

const uniformProjectionName = "projection"

// Backend is the hardware-batched rasterizer (spec §4.10): it expands
// every draw op into one of two growable CPU-side vertex streams and
// flushes them through [Device] whenever the active pipeline, bound
// texture, or clip state must change.
type Backend struct {
	device Device

	width, height int
	format        ink.PixelFormat
	fbo, colorTex TextureHandle

	colorPipeline, texPipeline PipelineHandle
	colorBuf, texBuf           BufferHandle

	tempTex            TextureHandle
	tempTexW, tempTexH int

	textures *TextureCache
	atlas    *text.Atlas

	hasClip bool
	clip    ink.Rect

	kind       PipelineKind
	boundTex   TextureHandle
	colorVerts []byte
	texVerts   []byte
}

// New creates a GpuBackend of size width×height over device, compiling
// the two portable pipelines and allocating the dynamic vertex buffers
// (spec §4.10).
func New(device Device, width, height int, format ink.PixelFormat) (*Backend, error) {
	fbo, colorTex, err := device.CreateFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	colorPipeline, err := device.CompilePipeline(PipelineDescriptor{
		Kind: PipelineColor, VSSource: colorVertexShader, FSSource: colorFragmentShader,
	})
	if err != nil {
		return nil, err
	}
	texPipeline, err := device.CompilePipeline(PipelineDescriptor{
		Kind: PipelineTexture, VSSource: textureVertexShader, FSSource: textureFragmentShader,
	})
	if err != nil {
		return nil, err
	}
	colorBuf, err := device.CreateVertexBuffer()
	if err != nil {
		return nil, err
	}
	texBuf, err := device.CreateVertexBuffer()
	if err != nil {
		return nil, err
	}

	return &Backend{
		device:        device,
		width:         width,
		height:        height,
		format:        format,
		fbo:           fbo,
		colorTex:      colorTex,
		colorPipeline: colorPipeline,
		texPipeline:   texPipeline,
		colorBuf:      colorBuf,
		texBuf:        texBuf,
		textures:      NewTextureCache(device),
	}, nil
}

// BeginFrame fills the target with clearColor via a full-viewport quad
// through the color pipeline, and resets batching/clip state.
func (b *Backend) BeginFrame(clearColor ink.Color) {
	b.hasClip = false
	b.kind = PipelineNone
	b.colorVerts = b.colorVerts[:0]
	b.texVerts = b.texVerts[:0]
	b.device.EnableScissor(false)

	b.ensureKind(PipelineColor)
	b.pushRectColor(ink.Rect{X: 0, Y: 0, W: float32(b.width), H: float32(b.height)}, clearColor)
	b.flushColor()
}

// EndFrame flushes any remaining batch and submits pending commands.
func (b *Backend) EndFrame() {
	b.flushColor()
	b.flushTex()
	b.device.Flush()
}

// Resize re-creates the target's backing storage.
func (b *Backend) Resize(width, height int) {
	newTex, err := b.device.ResizeFramebuffer(b.fbo, width, height)
	if err != nil {
		ink.Logger().Warn("gpu: resize failed", "error", err)
		return
	}
	b.colorTex = newTex
	b.width, b.height = width, height
}

// SetGlyphAtlas installs the atlas used for Text ops.
func (b *Backend) SetGlyphAtlas(atlas *text.Atlas) { b.atlas = atlas }

// Execute replays rec in the order given by pass.
func (b *Backend) Execute(rec *recording.Recording, pass *recording.DrawPass) {
	rec.Dispatch(b, pass)
	b.flushColor()
	b.flushTex()
}

// Close releases every GPU resource this Backend owns: the texture
// cache's uploaded textures, the framebuffer, both pipelines, the two
// vertex buffers, and the reusable glyph-scratch texture (spec §4.10,
// §4.11). Safe to call once per Backend; the Backend must not be used
// afterward.
func (b *Backend) Close() {
	b.textures.Destroy()
	if b.tempTex != 0 {
		b.device.DeleteTexture(b.tempTex)
		b.tempTex = 0
	}
	b.device.DestroyFramebuffer(b.fbo, b.colorTex)
	b.device.DeletePipeline(b.colorPipeline)
	b.device.DeletePipeline(b.texPipeline)
	b.device.DeleteBuffer(b.colorBuf)
	b.device.DeleteBuffer(b.texBuf)
}

// MakeSnapshot blits the current color attachment into a freshly
// allocated texture and wraps it in a GPU-variant Image whose release
// token deletes that texture (spec §4.10, §7 snapshot isolation).
func (b *Backend) MakeSnapshot() *ink.Image {
	snap, err := b.device.CreateTexture(b.width, b.height, b.format, nil)
	if err != nil {
		ink.Logger().Warn("gpu: snapshot texture allocation failed", "error", err)
		return nil
	}
	b.device.Blit(b.colorTex, snap, 0, 0, b.width, b.height)
	tex := snap
	token := ink.NewReleaseToken(func() { b.device.DeleteTexture(tex) })
	return ink.FromGPUTexture(uint64(tex), b.width, b.height, b.format, token)
}

// VisitFillRect implements recording.DrawOpVisitor.
func (b *Backend) VisitFillRect(r ink.Rect, c ink.Color) {
	b.ensureKind(PipelineColor)
	b.pushRectColor(r, c)
}

// VisitStrokeRect implements recording.DrawOpVisitor, pushing one thin
// rectangle per edge; corners overlap by one stroke width (spec §4.10).
func (b *Backend) VisitStrokeRect(r ink.Rect, c ink.Color, width float32) {
	if width <= 0 {
		width = 1
	}
	b.ensureKind(PipelineColor)
	b.pushRectColor(ink.Rect{X: r.X, Y: r.Y, W: r.W, H: width}, c)
	b.pushRectColor(ink.Rect{X: r.X, Y: r.Y + r.H - width, W: r.W, H: width}, c)
	b.pushRectColor(ink.Rect{X: r.X, Y: r.Y, W: width, H: r.H}, c)
	b.pushRectColor(ink.Rect{X: r.X + r.W - width, Y: r.Y, W: width, H: r.H}, c)
}

// VisitLine implements recording.DrawOpVisitor by expanding the segment
// into a quad along its perpendicular normal (spec §4.10).
func (b *Backend) VisitLine(p1, p2 ink.Point, c ink.Color, width float32) {
	b.ensureKind(PipelineColor)
	b.pushLine(p1, p2, c, width)
}

// VisitPolyline implements recording.DrawOpVisitor; caps/joins are not
// rendered (spec §4.10).
func (b *Backend) VisitPolyline(pts []ink.Point, c ink.Color, width float32) {
	b.ensureKind(PipelineColor)
	for i := 0; i+1 < len(pts); i++ {
		b.pushLine(pts[i], pts[i+1], c, width)
	}
}

// VisitText implements recording.DrawOpVisitor: rasterize the run into a
// RAM buffer via the glyph atlas, upload it into the reusable temp
// texture, and push a textured quad (spec §4.10).
func (b *Backend) VisitText(pos ink.Point, s string, c ink.Color) {
	b.flushColor()
	if b.atlas == nil {
		ink.Logger().Warn("gpu: text op with no glyph atlas installed")
		return
	}
	w := int(math.Ceil(float64(b.atlas.MeasureText(s))))
	h := int(math.Ceil(float64(b.atlas.LineHeight())))
	if w <= 0 || h <= 0 {
		return
	}

	stride := w * 4
	scratch := make([]byte, stride*h)
	b.atlas.DrawTextCPU(scratch, stride, h, 0, b.atlas.Ascent(), s, c, ink.RGBA8888)

	if err := b.ensureTempTexture(w, h, scratch); err != nil {
		ink.Logger().Warn("gpu: glyph scratch texture upload failed", "error", err)
		return
	}

	lineHeight := b.atlas.LineHeight()
	quad := ink.Rect{X: pos.X, Y: pos.Y - lineHeight, W: float32(w), H: float32(h)}
	b.ensureKind(PipelineTexture)
	b.bindTexture(b.tempTex)
	b.pushQuadTex(quad, 0, 0, 1, 1)
	b.flushTex()
}

// VisitDrawImage implements recording.DrawOpVisitor: resolve img to a
// GPU texture (its own handle if GPU-backed, or a TextureCache lookup
// for CPU-backed images) and push a full-image textured quad.
func (b *Backend) VisitDrawImage(img *ink.Image, x, y float32) {
	b.flushColor()
	if img == nil {
		return
	}

	var tex TextureHandle
	if img.IsGPU() {
		tex = TextureHandle(img.GPUHandle())
	} else {
		t, err := b.textures.Lookup(img)
		if err != nil {
			ink.Logger().Warn("gpu: texture upload failed", "error", err)
			return
		}
		tex = t
	}

	quad := ink.Rect{X: x, Y: y, W: float32(img.Width()), H: float32(img.Height())}
	b.ensureKind(PipelineTexture)
	b.bindTexture(tex)
	b.pushQuadTex(quad, 0, 0, 1, 1)
	b.flushTex()
}

// VisitSetClip implements recording.DrawOpVisitor, flushing the color
// batch and enabling the hardware scissor with the origin flipped from
// top-left to bottom-left conventions (spec §4.10).
func (b *Backend) VisitSetClip(r ink.Rect) {
	b.flushColor()
	b.hasClip = true
	b.clip = r
	b.device.SetScissor(int(r.X), b.height-int(r.Y+r.H), int(r.W), int(r.H))
	b.device.EnableScissor(true)
}

// VisitClearClip implements recording.DrawOpVisitor.
func (b *Backend) VisitClearClip() {
	b.flushColor()
	b.hasClip = false
	b.device.EnableScissor(false)
}

// ensureKind flushes both batches whenever the active pipeline kind
// changes (spec §4.10, batch-flush trigger (a)).
func (b *Backend) ensureKind(k PipelineKind) {
	if b.kind == k {
		return
	}
	b.flushColor()
	b.flushTex()
	b.kind = k
}

// bindTexture flushes the texture batch whenever a different texture
// must be bound (spec §4.10, batch-flush trigger (b)).
func (b *Backend) bindTexture(t TextureHandle) {
	if b.boundTex == t && len(b.texVerts) > 0 {
		return
	}
	b.flushTex()
	b.boundTex = t
}

func (b *Backend) flushColor() {
	if len(b.colorVerts) == 0 {
		return
	}
	if err := b.device.UploadBuffer(b.colorBuf, b.colorVerts); err != nil {
		ink.Logger().Warn("gpu: color batch upload failed, skipping draw", "error", err)
		b.colorVerts = b.colorVerts[:0]
		return
	}
	b.device.BindPipeline(b.colorPipeline)
	b.device.BindVertexBuffer(b.colorBuf)
	b.device.SetUniformMat4(uniformProjectionName, projectionMatrix(float32(b.width), float32(b.height)))
	b.device.DrawTriangles(0, len(b.colorVerts)/colorVertexSize)
	b.colorVerts = b.colorVerts[:0]
}

func (b *Backend) flushTex() {
	if len(b.texVerts) == 0 {
		return
	}
	if err := b.device.UploadBuffer(b.texBuf, b.texVerts); err != nil {
		ink.Logger().Warn("gpu: texture batch upload failed, skipping draw", "error", err)
		b.texVerts = b.texVerts[:0]
		return
	}
	b.device.BindPipeline(b.texPipeline)
	b.device.BindVertexBuffer(b.texBuf)
	b.device.BindTexture(0, b.boundTex)
	b.device.SetUniformMat4(uniformProjectionName, projectionMatrix(float32(b.width), float32(b.height)))
	b.device.DrawTriangles(0, len(b.texVerts)/texVertexSize)
	b.texVerts = b.texVerts[:0]
}

func (b *Backend) ensureTempTexture(w, h int, pixels []byte) error {
	if b.tempTex != 0 && b.tempTexW == w && b.tempTexH == h {
		return b.device.UpdateTexture(b.tempTex, w, h, pixels)
	}
	if b.tempTex != 0 {
		b.device.DeleteTexture(b.tempTex)
	}
	t, err := b.device.CreateTexture(w, h, ink.RGBA8888, pixels)
	if err != nil {
		return err
	}
	b.tempTex, b.tempTexW, b.tempTexH = t, w, h
	return nil
}
