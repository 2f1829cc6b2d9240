package ink

import "sync/atomic"

// nextImageID generates process-unique, monotonically increasing Image
// identifiers, grounded on the teacher's atomic.Uint64 id generator
// (gogpu-gg backend/gogpu/adapter.go's nextID field).
var nextImageID atomic.Uint64

func allocImageID() uint64 {
	return nextImageID.Add(1)
}

// ReleaseToken is a lifetime holder carrying a destructor for a GPU
// texture. The destructor runs on the first Release call from any holder;
// the token keeps no count of the Images sharing it, so it does not wait
// for the last of them. Release is idempotent.
type ReleaseToken struct {
	release func()
	done    atomic.Bool
}

// NewReleaseToken wraps a destructor in a ReleaseToken.
func NewReleaseToken(release func()) *ReleaseToken {
	return &ReleaseToken{release: release}
}

// Release invokes the destructor at most once.
func (t *ReleaseToken) Release() {
	if t == nil || t.release == nil {
		return
	}
	if t.done.CompareAndSwap(false, true) {
		t.release()
	}
}

// imageStorage is the discriminated backing store of an Image: either CPU
// pixels or an opaque GPU texture handle (spec §3).
type imageStorage struct {
	pixmap    *Pixmap // non-nil for the CPU variant
	gpuHandle uint64  // non-zero for the GPU variant
	release   *ReleaseToken
	isGPU     bool
}

// Image is an immutable snapshot of pixel data, shared by ordinary
// pointers and kept alive by the Go garbage collector rather than by a
// hand-kept count. Go has no destructors, so a GPU texture behind an Image
// is freed only when [Image.Release] runs its release token, which happens
// on the first call; nothing in this module calls Release on the caller's
// behalf.
type Image struct {
	id      uint64
	width   int
	height  int
	stride  int
	format  PixelFormat
	storage imageStorage
}

// FromPixmap deep-copies src into a fresh owned Pixmap and wraps it as an
// immutable Image.
func FromPixmap(src *Pixmap) *Image {
	copyPm := AllocPixmap(src.Width(), src.Height(), src.Format())
	rowBytes := 4 * max(0, min(src.Width(), copyPm.Width()))
	for y := 0; y < min(src.Height(), copyPm.Height()); y++ {
		s, d := y*src.Stride(), y*copyPm.Stride()
		if s >= len(src.pixels) {
			break
		}
		copy(copyPm.pixels[d:d+rowBytes], src.pixels[s:min(s+rowBytes, len(src.pixels))])
	}
	return &Image{
		id:     allocImageID(),
		width:  src.Width(),
		height: src.Height(),
		stride: copyPm.Stride(),
		format: src.Format(),
		storage: imageStorage{
			pixmap: copyPm,
		},
	}
}

// WrapPixmapImage records src's pixel pointer without copying. The caller
// must keep src alive for the lifetime of the returned Image (spec §4.6).
func WrapPixmapImage(src *Pixmap) *Image {
	return &Image{
		id:     allocImageID(),
		width:  src.Width(),
		height: src.Height(),
		stride: src.Stride(),
		format: src.Format(),
		storage: imageStorage{
			pixmap: src,
		},
	}
}

// FromGPUTexture adopts a GPU texture handle, releasing it via token when
// the Image is no longer needed (caller must call [Image.Release]).
func FromGPUTexture(handle uint64, width, height int, format PixelFormat, token *ReleaseToken) *Image {
	return &Image{
		id:     allocImageID(),
		width:  width,
		height: height,
		format: format,
		storage: imageStorage{
			gpuHandle: handle,
			release:   token,
			isGPU:     true,
		},
	}
}

// UniqueID returns the process-unique, stable identifier used as the
// TextureCache key (spec §4.10).
func (img *Image) UniqueID() uint64 { return img.id }

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// Format returns the pixel format.
func (img *Image) Format() PixelFormat { return img.format }

// IsGPU reports whether this Image is backed by a GPU texture rather than
// CPU pixels.
func (img *Image) IsGPU() bool { return img.storage.isGPU }

// Pixmap returns the backing Pixmap for a CPU-variant Image, or nil for a
// GPU-variant Image.
func (img *Image) Pixmap() *Pixmap {
	if img.storage.isGPU {
		return nil
	}
	return img.storage.pixmap
}

// GPUHandle returns the opaque GPU texture handle for a GPU-variant Image,
// or 0 for a CPU-variant Image.
func (img *Image) GPUHandle() uint64 {
	return img.storage.gpuHandle
}

// Valid reports whether the image satisfies the invariants of spec §3:
// positive dimensions, and a non-nil pixel pointer (CPU) or non-zero handle
// (GPU).
func (img *Image) Valid() bool {
	if img.width <= 0 || img.height <= 0 {
		return false
	}
	if img.storage.isGPU {
		return img.storage.gpuHandle != 0
	}
	return img.storage.pixmap != nil
}

// Release runs the GPU release token, if any. Safe to call on CPU-variant
// images (no-op) and safe to call more than once.
func (img *Image) Release() {
	if img.storage.release != nil {
		img.storage.release.Release()
	}
}
