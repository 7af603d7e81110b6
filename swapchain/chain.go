// Package swapchain manages a rotating set of presentable textures.
//
// A Chain owns a fixed number of textures created through a
// TextureSource. Each frame the caller acquires the current texture,
// renders into it, and presents; presentation advances the rotation so
// the next acquire returns the next texture. Acquire and present calls
// must strictly alternate.
package swapchain

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Chain errors.
var (
	// ErrUnavailable is returned when the current texture cannot be
	// acquired, for example after the chain is closed.
	ErrUnavailable = errors.New("swapchain: texture unavailable")

	// ErrAlreadyAcquired is returned when AcquireCurrent is called
	// while a previous acquisition is still outstanding.
	ErrAlreadyAcquired = errors.New("swapchain: texture already acquired")

	// ErrNotAcquired is returned when Present is called with no
	// outstanding acquisition.
	ErrNotAcquired = errors.New("swapchain: no texture acquired")

	// ErrPresentFailed is returned when the backend present hook
	// reports failure.
	ErrPresentFailed = errors.New("swapchain: present failed")
)

// DefaultFrameCount is the number of chain textures when Config does
// not specify one.
const DefaultFrameCount = 2

// Config describes a Chain.
type Config struct {
	// Width and Height are the texture dimensions in pixels.
	Width  uint32
	Height uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// FrameCount is the number of textures in the rotation.
	// Zero means DefaultFrameCount.
	FrameCount int

	// Present hands the given chain slot to the display. A nil hook
	// makes Present a rotation-only operation, which is what
	// headless rendering wants.
	Present func(index int) error
}

// Chain is a rotating set of presentable textures. It is not safe for
// concurrent use.
type Chain struct {
	source   TextureSource
	config   Config
	textures []ChainTexture
	current  int
	acquired *FrameTexture
	closed   bool
}

// NewChain creates all textures of the chain up front. On failure the
// already created textures are destroyed and the error returned.
func NewChain(source TextureSource, cfg Config) (*Chain, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: nil texture source", ErrUnavailable)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: zero dimensions (%dx%d)", ErrUnavailable, cfg.Width, cfg.Height)
	}
	if cfg.FrameCount <= 0 {
		cfg.FrameCount = DefaultFrameCount
	}

	textures := make([]ChainTexture, 0, cfg.FrameCount)
	for i := 0; i < cfg.FrameCount; i++ {
		tex, err := source.CreateTexture(cfg.Width, cfg.Height, cfg.Format)
		if err != nil {
			for _, t := range textures {
				t.Destroy()
			}
			return nil, fmt.Errorf("swapchain: create texture %d: %w", i, err)
		}
		textures = append(textures, tex)
	}
	return &Chain{source: source, config: cfg, textures: textures}, nil
}

// Width returns the chain texture width in pixels.
func (c *Chain) Width() uint32 { return c.config.Width }

// Height returns the chain texture height in pixels.
func (c *Chain) Height() uint32 { return c.config.Height }

// Format returns the chain texture format.
func (c *Chain) Format() gputypes.TextureFormat { return c.config.Format }

// FrameCount returns the number of textures in the rotation.
func (c *Chain) FrameCount() int { return len(c.textures) }

// AcquireCurrent returns a handle to the current chain texture. The
// handle stays valid until Present or Discard; acquiring again before
// then returns ErrAlreadyAcquired.
func (c *Chain) AcquireCurrent() (*FrameTexture, error) {
	if c.closed {
		return nil, fmt.Errorf("%w: chain closed", ErrUnavailable)
	}
	if c.acquired != nil {
		return nil, ErrAlreadyAcquired
	}
	tex := c.textures[c.current]
	view := tex.View()
	if view == nil {
		return nil, fmt.Errorf("%w: slot %d has no view", ErrUnavailable, c.current)
	}
	c.acquired = &FrameTexture{index: c.current, view: view, valid: true}
	return c.acquired, nil
}

// Present hands the acquired texture to the display and advances the
// rotation. The outstanding handle is invalidated whether or not the
// present hook succeeds; on failure the rotation does not advance, so
// the next acquire retries the same slot.
func (c *Chain) Present() error {
	if c.closed {
		return fmt.Errorf("%w: chain closed", ErrUnavailable)
	}
	if c.acquired == nil {
		return ErrNotAcquired
	}
	index := c.acquired.index
	c.acquired.invalidate()
	c.acquired = nil

	if c.config.Present != nil {
		if err := c.config.Present(index); err != nil {
			return fmt.Errorf("%w: %v", ErrPresentFailed, err)
		}
	}
	c.current = (c.current + 1) % len(c.textures)
	return nil
}

// Discard releases the outstanding acquisition without presenting.
// The rotation does not advance. Discard with nothing acquired is a
// no-op, so it is safe to call on every abort path.
func (c *Chain) Discard() {
	if c.acquired == nil {
		return
	}
	c.acquired.invalidate()
	c.acquired = nil
}

// Close destroys all chain textures. Any outstanding acquisition is
// invalidated. Close is idempotent.
func (c *Chain) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.Discard()
	for _, t := range c.textures {
		t.Destroy()
	}
	c.textures = nil
}
