package frame

import (
	"context"
	"errors"
	"time"

	"github.com/gogpu/frame/recording"
	"github.com/gogpu/frame/render"
	"github.com/gogpu/frame/submit"
)

// ErrHalted is returned by Tick once the driver has halted after a
// fatal error. The driver never recovers; tear down the session.
var ErrHalted = errors.New("frame: driver halted")

// State is the frame driver state. Between ticks the driver is Idle;
// during a tick it walks Acquiring, Recording, Submitting and
// Presenting in order. Halted is terminal.
type State uint8

const (
	// StateIdle means no frame is in flight.
	StateIdle State = iota
	// StateAcquiring means the driver is acquiring a chain texture.
	StateAcquiring
	// StateRecording means drawing commands are being recorded.
	StateRecording
	// StateSubmitting means the recording is being submitted.
	StateSubmitting
	// StatePresenting means the frame is being presented.
	StatePresenting
	// StateHalted means a fatal error stopped the driver.
	StateHalted
)

// stateNames maps State values to their string representation.
var stateNames = [...]string{
	StateIdle:       "Idle",
	StateAcquiring:  "Acquiring",
	StateRecording:  "Recording",
	StateSubmitting: "Submitting",
	StatePresenting: "Presenting",
	StateHalted:     "Halted",
}

// String returns the string representation of a State.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// DrawFunc records one frame's content. It receives the frame canvas
// and the current animation time in seconds.
type DrawFunc func(canvas *recording.Canvas, t float64)

// DriverConfig configures a Driver.
type DriverConfig struct {
	// Draw records the frame content. Nil produces empty frames,
	// which still present and advance the clock.
	Draw DrawFunc

	// ClockStep is the animation clock increment per presented
	// frame, in seconds. Zero selects DefaultClockStep.
	ClockStep float64

	// Sync is the synchronization mode passed to Submit.
	Sync submit.SyncMode
}

// Driver runs the per-frame pipeline over a RenderSession. Each Tick
// performs one full frame: acquire, record, submit, present, advance
// the clock.
//
// Recoverable errors abort the frame in isolation: the texture
// acquisition is released, nothing is presented, the clock does not
// advance, and the next Tick starts fresh. Fatal errors (device loss)
// halt the driver permanently.
//
// The Driver is not safe for concurrent use.
type Driver struct {
	session *RenderSession
	config  DriverConfig
	clock   *AnimationClock
	state   State
	frames  uint64
	aborts  uint64
}

// NewDriver creates a driver over an open session.
func NewDriver(session *RenderSession, cfg DriverConfig) *Driver {
	return &Driver{
		session: session,
		config:  cfg,
		clock:   NewAnimationClock(cfg.ClockStep),
	}
}

// State returns the current driver state.
func (d *Driver) State() State { return d.state }

// Frames returns the number of successfully presented frames.
func (d *Driver) Frames() uint64 { return d.frames }

// Aborts returns the number of frames dropped by recoverable errors.
func (d *Driver) Aborts() uint64 { return d.aborts }

// Now returns the current animation clock time in seconds.
func (d *Driver) Now() float64 { return d.clock.Now() }

// Tick runs one frame through the pipeline.
//
// A recoverable failure logs a warning, drops the frame and returns
// nil; the caller just keeps ticking. Tick returns an error only when
// the driver halts: submit.ErrDeviceLost on the tick that detected the
// loss, ErrHalted on every tick after.
func (d *Driver) Tick() error {
	if d.state == StateHalted {
		return ErrHalted
	}
	chain := d.session.Chain()

	d.state = StateAcquiring
	frameTex, err := chain.AcquireCurrent()
	if err != nil {
		return d.abort("acquire", err)
	}

	tex, err := render.WrapTexture(
		chain.Width(), chain.Height(),
		render.FrameDescriptor(chain.Format()),
		frameTex.View(),
	)
	if err != nil {
		return d.abort("wrap", err)
	}

	d.state = StateRecording
	surface, err := render.NewTargetSurface(
		d.session.Submission().Recorder(),
		tex,
		d.session.ColorType(),
		d.session.ColorSpace(),
	)
	if err != nil {
		return d.abort("surface", err)
	}
	if d.config.Draw != nil {
		d.config.Draw(surface.Canvas(), d.clock.Now())
	}
	surface.Discard()

	d.state = StateSubmitting
	rec := d.session.Submission().Recorder().Snap()
	if err := d.session.Submission().Insert(rec); err != nil {
		return d.abort("insert", err)
	}
	if err := d.session.Submission().Submit(d.config.Sync); err != nil {
		if errors.Is(err, submit.ErrDeviceLost) {
			return d.halt(err)
		}
		return d.abort("submit", err)
	}

	d.state = StatePresenting
	if err := chain.Present(); err != nil {
		return d.abort("present", err)
	}

	d.clock.Advance()
	d.frames++
	d.state = StateIdle
	Logger().Debug("frame: presented",
		"frame", d.frames,
		"t", d.clock.Now(),
		"sync", d.config.Sync.String(),
	)
	return nil
}

// abort drops the in-flight frame and returns the driver to Idle.
// The outstanding texture acquisition, if any, is released so the
// next frame can acquire again. Tick reports success; the frame is
// simply skipped.
func (d *Driver) abort(stage string, err error) error {
	Logger().Warn("frame: aborted",
		"stage", stage,
		"state", d.state.String(),
		"err", err,
	)
	d.session.Chain().Discard()
	d.aborts++
	d.state = StateIdle
	return nil
}

// halt stops the driver permanently after a fatal error.
func (d *Driver) halt(err error) error {
	Logger().Info("frame: halted", "err", err)
	d.session.Chain().Discard()
	d.state = StateHalted
	return err
}

// Run ticks the driver at the given interval until the context is
// canceled or the driver halts. An interval of zero or less ticks as
// fast as the pipeline allows.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := d.Tick(); err != nil {
				return err
			}
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.Tick(); err != nil {
				return err
			}
		}
	}
}
