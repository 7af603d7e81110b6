package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/frame/swapchain"
)

// TextureSource creates presentable chain textures on the provider's
// device.
type TextureSource struct {
	device hal.Device
	serial int
}

// NewTextureSource returns a source creating textures on the
// provider's device.
func NewTextureSource(p *Provider) *TextureSource {
	return &TextureSource{device: p.device}
}

// CreateTexture creates a single-sampled renderable texture with a
// default view.
func (s *TextureSource) CreateTexture(width, height uint32, format gputypes.TextureFormat) (swapchain.ChainTexture, error) {
	label := fmt.Sprintf("chain_color_%d", s.serial)
	s.serial++

	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create chain texture: %w", err)
	}

	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		s.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create chain texture view: %w", err)
	}

	return &chainTexture{device: s.device, texture: tex, view: view}, nil
}

// chainTexture pairs a hal texture with its view.
type chainTexture struct {
	device  hal.Device
	texture hal.Texture
	view    hal.TextureView
}

// View returns the hal.TextureView handle.
func (t *chainTexture) View() any {
	if t.view == nil {
		return nil
	}
	return t.view
}

// Destroy releases the view and texture. Destroy is idempotent.
func (t *chainTexture) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
