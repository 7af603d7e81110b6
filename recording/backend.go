package recording

// Backend replays recorded commands. Recording.Replay calls
// BeginTarget once per pass, the drawing methods once per command in
// recorded order, and EndTarget when the pass is done.
type Backend interface {
	// BeginTarget starts playback of a pass against a target.
	BeginTarget(info TargetInfo) error

	// Clear fills the target with a color.
	Clear(color Color) error

	// FillPath fills a path.
	FillPath(path *Path, paint Paint) error

	// StrokePath strokes a path outline.
	StrokePath(path *Path, paint Paint) error

	// FillRect fills an axis-aligned rectangle.
	FillRect(rect Rect, paint Paint) error

	// DrawText draws a text run at a baseline position.
	DrawText(text string, x, y, size float64, paint Paint) error

	// EndTarget finishes the current pass.
	EndTarget() error
}
