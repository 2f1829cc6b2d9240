package gpu

import "github.com/gogpu/ink"

// TextureCache maps a CPU-backed Image's identity to the GPU texture it
// was last uploaded to (spec §4.11). It is owned by exactly one
// GpuBackend and never outlives it; eviction policy is intentionally
// none within that lifetime — compositing images tend to be few and
// small, so the simplicity of "never evict" outweighs the memory cost.
type TextureCache struct {
	device  Device
	entries map[uint64]TextureHandle
}

// NewTextureCache creates an empty cache backed by device.
func NewTextureCache(device Device) *TextureCache {
	return &TextureCache{device: device, entries: make(map[uint64]TextureHandle)}
}

// Lookup returns the GPU texture for img, uploading it on first use. img
// must be CPU-backed; callers resolve GPU-backed images via
// [ink.Image.GPUHandle] directly instead of through the cache.
func (c *TextureCache) Lookup(img *ink.Image) (TextureHandle, error) {
	if t, ok := c.entries[img.UniqueID()]; ok {
		return t, nil
	}
	src := img.Pixmap()
	t, err := c.device.CreateTexture(src.Width(), src.Height(), src.Format(), src.Pixels())
	if err != nil {
		return 0, err
	}
	c.entries[img.UniqueID()] = t
	return t, nil
}

// Destroy deletes every texture the cache has ever uploaded.
func (c *TextureCache) Destroy() {
	for _, t := range c.entries {
		c.device.DeleteTexture(t)
	}
	c.entries = make(map[uint64]TextureHandle)
}
