//go:build !nogpu

package gpu

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ink"
)

// WGPUDevice is the concrete [Device] adapter wired to
// github.com/gogpu/wgpu's HAL, the same layer the teacher's own
// internal/gpu package builds its MSAA/stencil texture sets on
// (gogpu-gg/internal/gpu/gpu_textures.go). It receives its hal.Device
// from the host application rather than creating one, matching
// render/device.go's DeviceHandle = gpucontext.DeviceProvider
// convention: ink does not open a GPU context of its own.
type WGPUDevice struct {
	device gpucontext.DeviceProvider
	hal    hal.Device

	nextHandle atomic.Uint64

	textures map[TextureHandle]hal.Texture
	views    map[TextureHandle]hal.TextureView
	buffers  map[BufferHandle]hal.Buffer
	shaders  map[PipelineHandle]shaderPair
}

type shaderPair struct {
	vs, fs hal.ShaderModule
}

// NewWGPUDevice wraps an already-current gpucontext.DeviceProvider.
// Establishing currentness on the calling thread is the caller's
// responsibility (spec §5, §6).
func NewWGPUDevice(provider gpucontext.DeviceProvider) *WGPUDevice {
	d := &WGPUDevice{
		device:   provider,
		hal:      provider.Device().(hal.Device),
		textures: make(map[TextureHandle]hal.Texture),
		views:    make(map[TextureHandle]hal.TextureView),
		buffers:  make(map[BufferHandle]hal.Buffer),
		shaders:  make(map[PipelineHandle]shaderPair),
	}
	d.nextHandle.Store(1)
	return d
}

func (d *WGPUDevice) alloc() uint64 { return d.nextHandle.Add(1) - 1 }

func halFormat(f ink.PixelFormat) gputypes.TextureFormat {
	if f == ink.BGRA8888 {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// CreateFramebuffer allocates an offscreen render-attachment texture of
// size w×h (spec §6).
func (d *WGPUDevice) CreateFramebuffer(w, h int) (TextureHandle, TextureHandle, error) {
	tex, err := d.hal.CreateTexture(&hal.TextureDescriptor{
		Label:         "ink_framebuffer",
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("gpu: create framebuffer texture: %w", err)
	}
	view, err := d.hal.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "ink_framebuffer_view"})
	if err != nil {
		return 0, 0, fmt.Errorf("gpu: create framebuffer view: %w", err)
	}

	handle := TextureHandle(d.alloc())
	d.textures[handle] = tex
	d.views[handle] = view
	return handle, handle, nil
}

// DestroyFramebuffer releases fbo's backing texture and view.
func (d *WGPUDevice) DestroyFramebuffer(fbo, colorTexture TextureHandle) {
	d.DeleteTexture(fbo)
}

// ResizeFramebuffer re-creates fbo's storage at the new dimensions and
// returns fbo itself, which stays a valid handle.
func (d *WGPUDevice) ResizeFramebuffer(fbo TextureHandle, w, h int) (TextureHandle, error) {
	d.DeleteTexture(fbo)
	tmp, _, err := d.CreateFramebuffer(w, h)
	if err != nil {
		return 0, err
	}
	d.textures[fbo], d.views[fbo] = d.textures[tmp], d.views[tmp]
	delete(d.textures, tmp)
	delete(d.views, tmp)
	return fbo, nil
}

// CompilePipeline cross-compiles desc's WGSL sources via naga and
// creates their shader modules (gogpu-gg/internal/native/shader_helper.go
// is the grounding for the WGSL→SPIR-V step). The render pipeline object
// itself is intentionally left to a later iteration — the teacher's own
// backend/wgpu/pipeline.go still tracks pipelines behind placeholder IDs
// for the same reason (its wgpu render-pipeline support is incomplete);
// ink mirrors that and keys batches purely by PipelineHandle/PipelineKind.
func (d *WGPUDevice) CompilePipeline(desc PipelineDescriptor) (PipelineHandle, error) {
	vsSPIRV, err := naga.Compile(desc.VSSource)
	if err != nil {
		return 0, fmt.Errorf("gpu: compile vertex shader: %w", err)
	}
	fsSPIRV, err := naga.Compile(desc.FSSource)
	if err != nil {
		return 0, fmt.Errorf("gpu: compile fragment shader: %w", err)
	}

	vsModule, err := d.hal.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "ink_vs",
		Source: hal.ShaderSource{SPIRV: spirvWords(vsSPIRV)},
	})
	if err != nil {
		return 0, fmt.Errorf("gpu: create vertex shader module: %w", err)
	}
	fsModule, err := d.hal.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "ink_fs",
		Source: hal.ShaderSource{SPIRV: spirvWords(fsSPIRV)},
	})
	if err != nil {
		return 0, fmt.Errorf("gpu: create fragment shader module: %w", err)
	}

	handle := PipelineHandle(d.alloc())
	d.shaders[handle] = shaderPair{vs: vsModule, fs: fsModule}
	return handle, nil
}

// DeletePipeline releases p's vertex and fragment shader modules.
func (d *WGPUDevice) DeletePipeline(p PipelineHandle) {
	pair, ok := d.shaders[p]
	if !ok {
		return
	}
	d.hal.DestroyShaderModule(pair.vs)
	d.hal.DestroyShaderModule(pair.fs)
	delete(d.shaders, p)
}

func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
	}
	return words
}

// CreateVertexBuffer allocates a dynamic vertex buffer; its size grows
// lazily on first UploadBuffer call.
func (d *WGPUDevice) CreateVertexBuffer() (BufferHandle, error) {
	return BufferHandle(d.alloc()), nil
}

// UploadBuffer re-creates the backing hal.Buffer sized to data and
// writes it, since dynamic per-frame vertex streams make in-place
// partial updates unnecessary complexity for this backend's batch size.
func (d *WGPUDevice) UploadBuffer(buf BufferHandle, data []byte) error {
	if old, ok := d.buffers[buf]; ok {
		d.hal.DestroyBuffer(old)
	}
	halBuf, err := d.hal.CreateBuffer(&hal.BufferDescriptor{
		Label:            "ink_vertex_buffer",
		Size:             uint64(len(data)),
		Usage:            gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		MappedAtCreation: true,
	})
	if err != nil {
		return fmt.Errorf("gpu: create vertex buffer: %w", err)
	}
	d.buffers[buf] = halBuf
	return d.hal.WriteBuffer(halBuf, 0, data)
}

// DeleteBuffer releases buf's backing hal.Buffer, if one was ever
// uploaded to it.
func (d *WGPUDevice) DeleteBuffer(buf BufferHandle) {
	halBuf, ok := d.buffers[buf]
	if !ok {
		return
	}
	d.hal.DestroyBuffer(halBuf)
	delete(d.buffers, buf)
}

// BindPipeline, BindVertexBuffer, BindTexture, SetUniformMat4,
// DrawTriangles, SetScissor, and EnableScissor record render-pass state
// that a command encoder would consume on Flush. They are no-ops here
// for the same reason CompilePipeline stops at shader-module creation:
// gogpu/wgpu's render-pipeline and command-encoder surface is still
// landing upstream, so ink tracks batch state CPU-side (Backend already
// does this in gpu.go) and defers issuing it until that surface is
// stable, rather than guessing at an encoder API this repo never saw.
func (d *WGPUDevice) BindPipeline(p PipelineHandle)             {}
func (d *WGPUDevice) BindVertexBuffer(b BufferHandle)           {}
func (d *WGPUDevice) BindTexture(slot int, t TextureHandle)     {}
func (d *WGPUDevice) SetUniformMat4(name string, m [16]float32) {}
func (d *WGPUDevice) DrawTriangles(first, count int)            {}
func (d *WGPUDevice) SetScissor(x, y, w, h int)                 {}
func (d *WGPUDevice) EnableScissor(enable bool)                 {}

// CreateTexture allocates a sampled texture and, if pixels is non-nil,
// uploads it with the channel order implied by format (spec §4.11).
func (d *WGPUDevice) CreateTexture(w, h int, format ink.PixelFormat, pixels []byte) (TextureHandle, error) {
	tex, err := d.hal.CreateTexture(&hal.TextureDescriptor{
		Label:         "ink_texture",
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        halFormat(format),
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return 0, fmt.Errorf("gpu: create texture: %w", err)
	}
	handle := TextureHandle(d.alloc())
	d.textures[handle] = tex
	if pixels != nil {
		if err := d.UpdateTexture(handle, w, h, pixels); err != nil {
			return 0, err
		}
	}
	return handle, nil
}

// UpdateTexture re-uploads pixels into an existing texture.
func (d *WGPUDevice) UpdateTexture(t TextureHandle, w, h int, pixels []byte) error {
	tex, ok := d.textures[t]
	if !ok {
		return fmt.Errorf("gpu: unknown texture handle %d", t)
	}
	return d.hal.WriteTexture(tex, pixels, uint32(w*4), uint32(w), uint32(h))
}

// DeleteTexture releases a texture and its view.
func (d *WGPUDevice) DeleteTexture(t TextureHandle) {
	if view, ok := d.views[t]; ok {
		view.Destroy()
		delete(d.views, t)
	}
	if tex, ok := d.textures[t]; ok {
		d.hal.DestroyTexture(tex)
		delete(d.textures, t)
	}
}

// Blit copies rect from src into dst via a texture-to-texture copy.
func (d *WGPUDevice) Blit(src, dst TextureHandle, x, y, w, h int) {
	srcTex, srcOK := d.textures[src]
	dstTex, dstOK := d.textures[dst]
	if !srcOK || !dstOK {
		return
	}
	_ = d.hal.CopyTextureToTexture(srcTex, dstTex, hal.Origin3D{X: uint32(x), Y: uint32(y)}, hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1})
}

// ReadPixels reads an RGBA8 region back from src.
func (d *WGPUDevice) ReadPixels(src TextureHandle, x, y, w, h int, out []byte) error {
	tex, ok := d.textures[src]
	if !ok {
		return fmt.Errorf("gpu: unknown texture handle %d", src)
	}
	return d.hal.ReadTexture(tex, hal.Origin3D{X: uint32(x), Y: uint32(y)}, hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}, out)
}

// Origin reports bottom-up readback, matching the Vulkan/GL-family
// convention gogpu/wgpu targets by default.
func (d *WGPUDevice) Origin() ReadbackOrigin { return ReadbackBottomUp }

// Flush submits pending work and waits for device idle.
func (d *WGPUDevice) Flush() {
	d.hal.Poll(true)
}

var _ Device = (*WGPUDevice)(nil)
