package recording

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// ErrConsumed is returned when a Recording is inserted more than once.
var ErrConsumed = errors.New("recording: recording already consumed")

// TargetInfo identifies the texture a render pass draws into.
// View is the backend-specific texture view handle; the recorder never
// inspects it, it only threads it through to playback.
type TargetInfo struct {
	View   any
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
}

// Pass is one render pass of a recording: a target plus the commands
// recorded against it, in order.
type Pass struct {
	Target   TargetInfo
	Commands []Command
}

// Recorder accumulates render passes. BeginTarget opens a pass and
// returns its Canvas; Snap drains all open passes into an immutable
// Recording and leaves the recorder empty and reusable.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	passes []*pass
}

type pass struct {
	target TargetInfo
	canvas *Canvas
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// BeginTarget opens a render pass against the given target and returns
// the Canvas that records into it. Multiple passes may be open at once;
// Snap preserves their opening order.
func (r *Recorder) BeginTarget(info TargetInfo) *Canvas {
	p := &pass{target: info}
	p.canvas = newCanvas(p, float64(info.Width), float64(info.Height))
	r.passes = append(r.passes, p)
	return p.canvas
}

// Snap drains all open passes into an immutable Recording. Canvases
// handed out for those passes are sealed; further drawing on them is
// ignored. Snap returns nil when nothing was recorded, so callers can
// skip submission for idle frames.
func (r *Recorder) Snap() *Recording {
	passes := r.passes
	r.passes = nil

	total := 0
	out := make([]Pass, 0, len(passes))
	for _, p := range passes {
		p.canvas.Seal()
		out = append(out, Pass{Target: p.target, Commands: p.canvas.commands})
		total += len(p.canvas.commands)
	}
	if total == 0 {
		return nil
	}
	return &Recording{passes: out}
}

// PendingPasses returns the number of passes opened since the last Snap.
func (r *Recorder) PendingPasses() int {
	return len(r.passes)
}

// Recording is an immutable snapshot of recorded passes. It is produced
// by Recorder.Snap and consumed exactly once by a submission context.
type Recording struct {
	passes   []Pass
	consumed bool
}

// Passes returns the recorded passes in recording order.
func (r *Recording) Passes() []Pass {
	return r.passes
}

// Empty reports whether the recording holds no commands.
func (r *Recording) Empty() bool {
	for i := range r.passes {
		if len(r.passes[i].Commands) > 0 {
			return false
		}
	}
	return true
}

// CommandCount returns the total number of commands across all passes.
func (r *Recording) CommandCount() int {
	n := 0
	for i := range r.passes {
		n += len(r.passes[i].Commands)
	}
	return n
}

// Consume marks the recording as handed off. The second and later
// calls return ErrConsumed; submission contexts use this to reject
// double insertion.
func (r *Recording) Consume() error {
	if r.consumed {
		return ErrConsumed
	}
	r.consumed = true
	return nil
}

// Replay plays the recording back to a backend, pass by pass,
// preserving command order within each pass.
func (r *Recording) Replay(b Backend) error {
	for i := range r.passes {
		p := &r.passes[i]
		if err := b.BeginTarget(p.Target); err != nil {
			return err
		}
		for _, cmd := range p.Commands {
			if err := replayCommand(b, cmd); err != nil {
				return err
			}
		}
		if err := b.EndTarget(); err != nil {
			return err
		}
	}
	return nil
}

func replayCommand(b Backend, cmd Command) error {
	switch c := cmd.(type) {
	case ClearCommand:
		return b.Clear(c.Color)
	case FillPathCommand:
		return b.FillPath(c.Path, c.Paint)
	case StrokePathCommand:
		return b.StrokePath(c.Path, c.Paint)
	case FillRectCommand:
		return b.FillRect(c.Rect, c.Paint)
	case DrawTextCommand:
		return b.DrawText(c.Text, c.X, c.Y, c.Size, c.Paint)
	default:
		return nil
	}
}
