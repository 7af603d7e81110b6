package swapchain

import "github.com/gogpu/gputypes"

// ChainTexture is a texture owned by the chain. View returns the
// backend-specific view handle used for rendering.
type ChainTexture interface {
	// View returns the texture view handle.
	View() any

	// Destroy releases the texture and its view.
	Destroy()
}

// TextureSource creates the chain's presentable textures. Backends
// implement it against their device; tests implement it with stubs.
type TextureSource interface {
	// CreateTexture creates a renderable texture of the given size
	// and format.
	CreateTexture(width, height uint32, format gputypes.TextureFormat) (ChainTexture, error)
}

// FrameTexture is a handle to the chain texture acquired for the
// current frame. It stays valid until the frame is presented or
// discarded; after that View returns nil.
type FrameTexture struct {
	index int
	view  any
	valid bool
}

// View returns the texture view handle, or nil after invalidation.
func (f *FrameTexture) View() any {
	if !f.valid {
		return nil
	}
	return f.view
}

// Index returns the chain slot this frame texture came from.
func (f *FrameTexture) Index() int {
	return f.index
}

// Valid reports whether the handle still refers to a live acquisition.
func (f *FrameTexture) Valid() bool {
	return f.valid
}

func (f *FrameTexture) invalidate() {
	f.valid = false
	f.view = nil
}
