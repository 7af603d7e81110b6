// Package submit owns the recorder-to-queue half of a frame: it holds
// the Recorder drawing surfaces record into, accepts snapped
// recordings, and submits batches to the device through an Executor.
package submit

import (
	"errors"
	"fmt"

	"github.com/gogpu/frame/recording"
	"github.com/gogpu/frame/render"
)

// Context errors.
var (
	// ErrNilDevice is returned when the device handle or its device
	// is nil at construction.
	ErrNilDevice = errors.New("submit: nil device")

	// ErrDeviceLost is returned when the device disappears under a
	// live context. It is fatal; the context cannot recover.
	ErrDeviceLost = errors.New("submit: device lost")

	// ErrClosed is returned for operations on a closed context.
	ErrClosed = errors.New("submit: context closed")
)

// Options configures a Context.
type Options struct {
	// Executor runs submitted recordings on the device. Nil means
	// NullExecutor, which discards work.
	Executor Executor
}

// Context binds a Recorder to a device queue. Surfaces open render
// passes on its recorder; snapped recordings are inserted and then
// flushed to the executor by Submit.
//
// The Context is not safe for concurrent use.
type Context struct {
	handle   render.DeviceHandle
	recorder *recording.Recorder
	executor Executor
	pending  []*recording.Recording
	closed   bool
}

// New creates a submission context on the given device handle.
func New(handle render.DeviceHandle, opts Options) (*Context, error) {
	if handle == nil {
		return nil, fmt.Errorf("%w: nil handle", ErrNilDevice)
	}
	if handle.Device() == nil {
		return nil, fmt.Errorf("%w: handle has no device", ErrNilDevice)
	}
	exec := opts.Executor
	if exec == nil {
		exec = NullExecutor{}
	}
	return &Context{
		handle:   handle,
		recorder: recording.NewRecorder(),
		executor: exec,
	}, nil
}

// Recorder returns the context's recorder. Target surfaces open their
// render passes on it.
func (c *Context) Recorder() *recording.Recorder {
	return c.recorder
}

// Insert queues a recording for the next Submit. A nil recording is
// ignored, matching Recorder.Snap returning nil for idle frames. An
// explicitly empty recording is accepted and later skipped. Inserting
// the same recording twice returns recording.ErrConsumed.
func (c *Context) Insert(rec *recording.Recording) error {
	if c.closed {
		return ErrClosed
	}
	if rec == nil {
		return nil
	}
	if err := rec.Consume(); err != nil {
		return err
	}
	c.pending = append(c.pending, rec)
	return nil
}

// Submit flushes all pending recordings to the executor. With SyncCPU
// it returns only after the GPU has finished. The pending list is
// cleared before execution, so a failed batch is not resubmitted.
func (c *Context) Submit(mode SyncMode) error {
	if c.closed {
		return ErrClosed
	}
	if c.handle.Device() == nil {
		return ErrDeviceLost
	}
	if len(c.pending) == 0 {
		return nil
	}
	batch := c.pending
	c.pending = nil

	recs := batch[:0]
	for _, r := range batch {
		if r.Empty() {
			continue
		}
		recs = append(recs, r)
	}
	if len(recs) == 0 {
		return nil
	}
	return c.executor.Execute(recs, mode)
}

// Pending returns the number of recordings queued for the next Submit.
func (c *Context) Pending() int {
	return len(c.pending)
}

// Close drops pending recordings and marks the context unusable.
// Close is idempotent.
func (c *Context) Close() {
	c.closed = true
	c.pending = nil
}
