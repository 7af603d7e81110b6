// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrInvalidTexture is returned when texture parameters cannot form a
// usable backend texture.
var ErrInvalidTexture = errors.New("render: invalid backend texture")

// TextureDescriptor describes the properties of a wrapped texture.
// It intentionally carries no dimensions; width and height travel with
// WrapTexture so the same descriptor can wrap every frame of a chain.
type TextureDescriptor struct {
	// SampleCount is the number of samples for multisampling.
	// Use 1 for no multisampling.
	SampleCount uint32

	// Mipmapped indicates the texture carries a full mip chain.
	Mipmapped bool

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage TextureUsage
}

// FrameDescriptor returns the descriptor used for presentable frame
// textures: single sampled, no mips, usable as a render attachment.
func FrameDescriptor(format gputypes.TextureFormat) TextureDescriptor {
	return TextureDescriptor{
		SampleCount: 1,
		Mipmapped:   false,
		Format:      format,
		Usage:       TextureUsageRenderAttachment,
	}
}

// BackendTexture is a lightweight, copyable reference to a texture
// owned by someone else, typically a presentation chain. Wrapping
// neither copies nor takes ownership of the underlying texture; the
// owner keeps full responsibility for its lifetime.
//
// The zero value is invalid.
type BackendTexture struct {
	width  uint32
	height uint32
	desc   TextureDescriptor
	raw    any
}

// WrapTexture wraps a raw backend texture view as a BackendTexture.
//
// The raw handle is backend specific and opaque to this package. The
// returned texture is only valid while the underlying texture stays
// alive; using it after the owner recycles the texture is undefined.
func WrapTexture(width, height uint32, desc TextureDescriptor, raw any) (BackendTexture, error) {
	if width == 0 || height == 0 {
		return BackendTexture{}, fmt.Errorf("%w: zero dimensions (%dx%d)", ErrInvalidTexture, width, height)
	}
	if raw == nil {
		return BackendTexture{}, fmt.Errorf("%w: nil texture handle", ErrInvalidTexture)
	}
	if desc.Format == gputypes.TextureFormatUndefined {
		return BackendTexture{}, fmt.Errorf("%w: undefined format", ErrInvalidTexture)
	}
	if desc.SampleCount == 0 {
		return BackendTexture{}, fmt.Errorf("%w: zero sample count", ErrInvalidTexture)
	}
	if desc.Usage&TextureUsageRenderAttachment == 0 {
		return BackendTexture{}, fmt.Errorf("%w: missing render attachment usage", ErrInvalidTexture)
	}
	return BackendTexture{width: width, height: height, desc: desc, raw: raw}, nil
}

// Valid reports whether the texture wraps a live handle.
func (t BackendTexture) Valid() bool {
	return t.raw != nil
}

// Width returns the texture width in pixels.
func (t BackendTexture) Width() uint32 { return t.width }

// Height returns the texture height in pixels.
func (t BackendTexture) Height() uint32 { return t.height }

// Format returns the texture pixel format.
func (t BackendTexture) Format() gputypes.TextureFormat { return t.desc.Format }

// SampleCount returns the sample count.
func (t BackendTexture) SampleCount() uint32 { return t.desc.SampleCount }

// Descriptor returns the wrap-time descriptor.
func (t BackendTexture) Descriptor() TextureDescriptor { return t.desc }

// Raw returns the backend-specific texture handle.
func (t BackendTexture) Raw() any { return t.raw }
