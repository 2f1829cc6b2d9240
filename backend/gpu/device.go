// Package gpu implements the hardware-batched rasterizer backend (spec
// §4.10–§4.11): a [Backend] that expands draw ops into vertex batches,
// flushes them through a small GPU boundary trait ([Device]), and
// maintains a [TextureCache] bridging CPU-sourced Images onto GPU
// textures.
//
// The trait keeps this package portable across GPU APIs (Vulkan, Metal,
// D3D12 via WebGPU) the way render/device.go's DeviceHandle keeps the
// teacher's renderer independent of any one backend; see wgpudevice.go
// for the concrete adapter wired to github.com/gogpu/wgpu.
package gpu

import "github.com/gogpu/ink"

// TextureHandle, BufferHandle and PipelineHandle are opaque GPU resource
// identifiers, never interpreted by this package — only passed back to
// the Device that issued them (spec §6: handles are opaque by design).
type (
	TextureHandle  uint64
	BufferHandle   uint64
	PipelineHandle uint64
)

// PipelineKind distinguishes the two portable pipelines this backend
// drives (spec §4.10).
type PipelineKind uint8

const (
	// PipelineNone is the initial/idle state: no pipeline bound yet.
	PipelineNone PipelineKind = iota
	// PipelineColor is the 2D-position + RGBA-vertex-color pipeline.
	PipelineColor
	// PipelineTexture is the 2D-position + UV pipeline.
	PipelineTexture
)

// PipelineDescriptor describes one of the two portable pipelines to
// compile (spec §6, "Shader semantics (portable)").
type PipelineDescriptor struct {
	Kind     PipelineKind
	VSSource string
	FSSource string
}

// ReadbackOrigin reports which corner read_pixels returns data from,
// since this differs across native GPU APIs (spec §6).
type ReadbackOrigin uint8

const (
	// ReadbackBottomUp matches GL-family APIs.
	ReadbackBottomUp ReadbackOrigin = iota
	// ReadbackTopDown matches Metal/D3D-family APIs.
	ReadbackTopDown
)

// Device is the minimal GPU boundary trait an implementation must expose
// (spec §6). GpuBackend drives a Device to do all actual API work; it
// never touches a native GPU handle directly.
type Device interface {
	// CreateFramebuffer allocates an offscreen color target of size w×h.
	CreateFramebuffer(w, h int) (fbo, colorTexture TextureHandle, err error)
	// DestroyFramebuffer releases fbo and its color texture.
	DestroyFramebuffer(fbo, colorTexture TextureHandle)
	// ResizeFramebuffer re-creates fbo's storage at the new dimensions.
	ResizeFramebuffer(fbo TextureHandle, w, h int) (newColorTexture TextureHandle, err error)

	// CompilePipeline compiles one of the two portable pipelines.
	CompilePipeline(desc PipelineDescriptor) (PipelineHandle, error)
	// DeletePipeline releases a compiled pipeline's shader modules.
	DeletePipeline(p PipelineHandle)

	// CreateVertexBuffer allocates a dynamic vertex buffer.
	CreateVertexBuffer() (BufferHandle, error)
	// UploadBuffer replaces buf's contents with data.
	UploadBuffer(buf BufferHandle, data []byte) error
	// DeleteBuffer releases a vertex buffer's backing storage.
	DeleteBuffer(b BufferHandle)

	BindPipeline(p PipelineHandle)
	BindVertexBuffer(b BufferHandle)
	BindTexture(slot int, t TextureHandle)
	SetUniformMat4(name string, m [16]float32)

	// DrawTriangles issues a triangle-list draw of count vertices
	// starting at first, from the currently bound pipeline/buffer.
	DrawTriangles(first, count int)

	SetScissor(x, y, w, h int)
	EnableScissor(enable bool)

	// CreateTexture allocates a texture of size w×h and, if pixels is
	// non-nil, uploads it (channel order per format). Filtering is
	// nearest-neighbor, wrapping is clamp-to-edge (spec §4.11).
	CreateTexture(w, h int, format ink.PixelFormat, pixels []byte) (TextureHandle, error)
	// UpdateTexture re-uploads pixels into an existing texture of the
	// same size, used for the GpuBackend's reusable glyph-scratch
	// texture (spec §4.10's "temp texture").
	UpdateTexture(t TextureHandle, w, h int, pixels []byte) error
	DeleteTexture(t TextureHandle)

	// Blit copies rect from src into dst, used for snapshots.
	Blit(src, dst TextureHandle, x, y, w, h int)
	// ReadPixels reads an RGBA8 region of src into out (len(out) must be
	// at least w*h*4). Origin returns whether rows are bottom-up or
	// top-down so callers can normalize (spec §6).
	ReadPixels(src TextureHandle, x, y, w, h int, out []byte) error
	Origin() ReadbackOrigin

	// Flush submits any pending commands.
	Flush()
}
