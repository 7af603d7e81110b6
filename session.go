package frame

import (
	"errors"

	"github.com/gogpu/frame/render"
	"github.com/gogpu/frame/submit"
	"github.com/gogpu/frame/swapchain"
)

// Session construction errors.
var (
	// ErrNilDeviceHandle is returned when NewSession receives a nil
	// device handle.
	ErrNilDeviceHandle = errors.New("frame: nil device handle")

	// ErrNilChain is returned when NewSession receives a nil chain.
	ErrNilChain = errors.New("frame: nil swapchain")
)

// SessionOptions configures a RenderSession.
type SessionOptions struct {
	// Executor runs submitted recordings on the device. Nil means
	// submit.NullExecutor.
	Executor submit.Executor

	// ColorType is the color layout used for target surfaces. Zero
	// selects the type matching the chain's texture format.
	ColorType render.ColorType

	// ColorSpace is the color space used for target surfaces.
	// The zero value is sRGB.
	ColorSpace render.ColorSpace
}

// RenderSession bundles the long-lived pieces a frame driver needs:
// the device handle, the presentation chain and the submission
// context. A session outlives many frames; per-frame state lives in
// the Driver.
type RenderSession struct {
	handle     render.DeviceHandle
	chain      *swapchain.Chain
	submission *submit.Context
	colorType  render.ColorType
	colorSpace render.ColorSpace
}

// NewSession creates a render session over an existing device handle
// and chain. The session does not own either; Close only releases the
// submission context.
func NewSession(handle render.DeviceHandle, chain *swapchain.Chain, opts SessionOptions) (*RenderSession, error) {
	if handle == nil {
		return nil, ErrNilDeviceHandle
	}
	if chain == nil {
		return nil, ErrNilChain
	}

	ct := opts.ColorType
	if ct == render.ColorTypeUnknown {
		ct = render.ColorTypeForFormat(chain.Format())
	}

	sub, err := submit.New(handle, submit.Options{Executor: opts.Executor})
	if err != nil {
		return nil, err
	}

	Logger().Info("frame: session open",
		"width", chain.Width(),
		"height", chain.Height(),
		"format", chain.Format(),
		"colorType", ct.String(),
	)
	return &RenderSession{
		handle:     handle,
		chain:      chain,
		submission: sub,
		colorType:  ct,
		colorSpace: opts.ColorSpace,
	}, nil
}

// Chain returns the presentation chain.
func (s *RenderSession) Chain() *swapchain.Chain {
	return s.chain
}

// Submission returns the submission context.
func (s *RenderSession) Submission() *submit.Context {
	return s.submission
}

// ColorType returns the color type used for target surfaces.
func (s *RenderSession) ColorType() render.ColorType {
	return s.colorType
}

// ColorSpace returns the color space used for target surfaces.
func (s *RenderSession) ColorSpace() render.ColorSpace {
	return s.colorSpace
}

// Close releases the submission context. The device handle and chain
// belong to the caller and are left alone.
func (s *RenderSession) Close() {
	s.submission.Close()
}
