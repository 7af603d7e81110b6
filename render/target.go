// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/frame/recording"
)

// ErrCreationFailed is returned when a target surface cannot be
// created from the given recorder and texture.
var ErrCreationFailed = errors.New("render: target surface creation failed")

// TargetSurface binds a render pass of a Recorder to a backend
// texture. Drawing happens through its Canvas; the commands land in
// the recorder and reach the GPU when the recorder's recording is
// submitted.
//
// A TargetSurface is valid for a single frame. After the recorder
// snaps, the canvas is sealed and the surface should be dropped.
type TargetSurface struct {
	texture    BackendTexture
	colorType  ColorType
	colorSpace ColorSpace
	canvas     *recording.Canvas
}

// NewTargetSurface opens a render pass on rec targeting tex and
// returns a surface whose canvas records into that pass.
//
// The color type must match the texture format; a BGRA swapchain
// texture cannot be viewed as RGBA.
func NewTargetSurface(rec *recording.Recorder, tex BackendTexture, ct ColorType, cs ColorSpace) (*TargetSurface, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil recorder", ErrCreationFailed)
	}
	if !tex.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrCreationFailed, ErrInvalidTexture)
	}
	if !ct.Compatible(tex.Format()) {
		return nil, fmt.Errorf("%w: color type %v incompatible with format %v", ErrCreationFailed, ct, tex.Format())
	}
	canvas := rec.BeginTarget(recording.TargetInfo{
		View:   tex.Raw(),
		Width:  tex.Width(),
		Height: tex.Height(),
		Format: tex.Format(),
	})
	return &TargetSurface{
		texture:    tex,
		colorType:  ct,
		colorSpace: cs,
		canvas:     canvas,
	}, nil
}

// Canvas returns the recording canvas for this surface.
func (s *TargetSurface) Canvas() *recording.Canvas {
	return s.canvas
}

// Texture returns the backend texture the surface draws into.
func (s *TargetSurface) Texture() BackendTexture {
	return s.texture
}

// ColorType returns the surface color type.
func (s *TargetSurface) ColorType() ColorType {
	return s.colorType
}

// ColorSpace returns the surface color space.
func (s *TargetSurface) ColorSpace() ColorSpace {
	return s.colorSpace
}

// Width returns the surface width in pixels.
func (s *TargetSurface) Width() uint32 {
	return s.texture.Width()
}

// Height returns the surface height in pixels.
func (s *TargetSurface) Height() uint32 {
	return s.texture.Height()
}

// Discard seals the canvas so nothing further can be recorded into
// this surface's pass. Already recorded commands are still snapped by
// the recorder.
func (s *TargetSurface) Discard() {
	s.canvas.Seal()
}
