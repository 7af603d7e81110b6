// Package recording captures drawing operations as replayable commands.
//
// A Recorder owns one or more render passes. Each pass targets a single
// texture and exposes a Canvas with an immediate-mode drawing API; the
// canvas generates typed command structures instead of rasterizing
// pixels. Snap drains every open pass into an immutable Recording that
// can be handed to a submission backend for playback.
//
// Transforms are resolved at record time: every command stores points
// in device space, so playback needs no matrix state.
//
// # Example
//
//	rec := recording.NewRecorder()
//	canvas := rec.BeginTarget(recording.TargetInfo{Width: 800, Height: 600})
//	canvas.SetRGB(1, 0, 0)
//	canvas.DrawCircle(100, 100, 50)
//	canvas.Fill()
//	snapped := rec.Snap()
package recording

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// CmdClear fills the whole target with a color.
	CmdClear CommandType = iota
	// CmdFillPath fills a path.
	CmdFillPath
	// CmdStrokePath strokes a path outline.
	CmdStrokePath
	// CmdFillRect fills an axis-aligned rectangle.
	CmdFillRect
	// CmdDrawText draws a text run.
	CmdDrawText
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdClear:      "Clear",
	CmdFillPath:   "FillPath",
	CmdStrokePath: "StrokePath",
	CmdFillRect:   "FillRect",
	CmdDrawText:   "DrawText",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// NewRect returns a rectangle from an origin and a size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// ClearCommand fills the entire target with a color, discarding
// previous contents. It is only meaningful as the first command of
// a pass; backends may fold it into the render pass load operation.
type ClearCommand struct {
	Color Color
}

// Type returns CmdClear.
func (ClearCommand) Type() CommandType { return CmdClear }

// FillPathCommand fills a path with the captured paint.
type FillPathCommand struct {
	Path  *Path
	Paint Paint
}

// Type returns CmdFillPath.
func (FillPathCommand) Type() CommandType { return CmdFillPath }

// StrokePathCommand strokes a path outline with the captured paint.
type StrokePathCommand struct {
	Path  *Path
	Paint Paint
}

// Type returns CmdStrokePath.
func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// FillRectCommand fills an axis-aligned rectangle. Canvases emit it
// for rectangles drawn under an axis-preserving transform; everything
// else goes through FillPathCommand.
type FillRectCommand struct {
	Rect  Rect
	Paint Paint
}

// Type returns CmdFillRect.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// DrawTextCommand draws a text run anchored at a baseline position.
type DrawTextCommand struct {
	Text  string
	X, Y  float64
	Size  float64
	Paint Paint
}

// Type returns CmdDrawText.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }
