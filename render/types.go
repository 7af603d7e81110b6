// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// ColorType describes how color channels are laid out in a surface.
type ColorType uint8

const (
	// ColorTypeUnknown is an unspecified layout.
	ColorTypeUnknown ColorType = iota
	// ColorTypeRGBA8888 is 8-bit RGBA.
	ColorTypeRGBA8888
	// ColorTypeBGRA8888 is 8-bit BGRA, the common swapchain layout.
	ColorTypeBGRA8888
)

// colorTypeNames maps ColorType values to their string representation.
var colorTypeNames = [...]string{
	ColorTypeUnknown:  "Unknown",
	ColorTypeRGBA8888: "RGBA8888",
	ColorTypeBGRA8888: "BGRA8888",
}

// String returns the string representation of a ColorType.
func (c ColorType) String() string {
	if int(c) < len(colorTypeNames) {
		return colorTypeNames[c]
	}
	return "Unknown"
}

// ColorSpace describes the transfer function of surface colors.
type ColorSpace uint8

const (
	// ColorSpaceSRGB is the standard sRGB transfer function.
	ColorSpaceSRGB ColorSpace = iota
	// ColorSpaceLinear is linear light.
	ColorSpaceLinear
)

// String returns the string representation of a ColorSpace.
func (s ColorSpace) String() string {
	if s == ColorSpaceLinear {
		return "Linear"
	}
	return "SRGB"
}

// ColorTypeForFormat returns the color type matching a texture format,
// or ColorTypeUnknown if the format has no 8-bit RGBA/BGRA layout.
func ColorTypeForFormat(format gputypes.TextureFormat) ColorType {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
		return ColorTypeRGBA8888
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return ColorTypeBGRA8888
	default:
		return ColorTypeUnknown
	}
}

// Compatible reports whether a color type can view a texture format.
func (c ColorType) Compatible(format gputypes.TextureFormat) bool {
	ct := ColorTypeForFormat(format)
	return ct != ColorTypeUnknown && ct == c
}
