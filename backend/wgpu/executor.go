package wgpu

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/frame/recording"
	"github.com/gogpu/frame/submit"
)

// fenceWaitSlice is how long a single fence wait blocks before the
// executor gives the tick hook a chance to run.
const fenceWaitSlice = 2 * time.Millisecond

// fenceTimeout bounds the total wait for a synchronous submit.
const fenceTimeout = 5 * time.Second

// Executor plays recordings back as render passes on the device
// queue. It implements submit.Executor.
//
// The Executor is not safe for concurrent use.
type Executor struct {
	device    hal.Device
	queue     hal.Queue
	pipelines map[gputypes.TextureFormat]*coverPipeline
	inFlight  []*flightBatch
	textWarn  bool

	// Tick, when set, is invoked between fence wait slices during a
	// synchronous submit. Hosts that need to pump an event loop or
	// yield to a scheduler while the GPU works hang it here.
	Tick func()
}

// flightBatch tracks resources of an asynchronous submit until its
// fence signals.
type flightBatch struct {
	fence   hal.Fence
	cmdBufs []hal.CommandBuffer
	buffers []hal.Buffer
}

// NewExecutor creates an executor on the provider's device and queue.
func NewExecutor(p *Provider) *Executor {
	return &Executor{
		device:    p.device,
		queue:     p.queue,
		pipelines: make(map[gputypes.TextureFormat]*coverPipeline),
	}
}

// Execute encodes every pass of every recording into one command
// buffer, submits it, and with SyncCPU waits for the fence. With
// SyncNone the batch resources are reclaimed lazily on later calls.
func (e *Executor) Execute(recs []*recording.Recording, mode submit.SyncMode) error {
	e.reapInFlight(false)
	if len(recs) == 0 {
		return nil
	}

	encoder, err := e.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "frame_batch",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("frame_batch"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	var buffers []hal.Buffer
	for _, rec := range recs {
		for i := range rec.Passes() {
			buf, err := e.encodePass(encoder, &rec.Passes()[i])
			if err != nil {
				encoder.DiscardEncoding()
				e.destroyBuffers(buffers)
				return err
			}
			if buf != nil {
				buffers = append(buffers, buf)
			}
		}
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		e.destroyBuffers(buffers)
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}

	fence, err := e.device.CreateFence()
	if err != nil {
		e.device.FreeCommandBuffer(cmdBuf)
		e.destroyBuffers(buffers)
		return fmt.Errorf("wgpu: create fence: %w", err)
	}

	if err := e.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		e.device.DestroyFence(fence)
		e.device.FreeCommandBuffer(cmdBuf)
		e.destroyBuffers(buffers)
		return fmt.Errorf("%w: submit: %v", submit.ErrDeviceLost, err)
	}

	batch := &flightBatch{fence: fence, cmdBufs: []hal.CommandBuffer{cmdBuf}, buffers: buffers}
	if mode == submit.SyncNone {
		e.inFlight = append(e.inFlight, batch)
		return nil
	}

	err = e.waitFence(fence)
	e.releaseBatch(batch)
	return err
}

// encodePass tessellates one pass and records its render pass into
// the encoder. Returns the vertex buffer, or nil for a clear-only pass.
func (e *Executor) encodePass(encoder hal.CommandEncoder, pass *recording.Pass) (hal.Buffer, error) {
	view, ok := pass.Target.View.(hal.TextureView)
	if !ok || view == nil {
		return nil, fmt.Errorf("wgpu: pass target is not a hal.TextureView")
	}

	loadOp := gputypes.LoadOpLoad
	var clearColor gputypes.Color
	commands := pass.Commands
	if len(commands) > 0 {
		if clear, isClear := commands[0].(recording.ClearCommand); isClear {
			loadOp = gputypes.LoadOpClear
			p := clear.Color.Premultiply()
			clearColor = gputypes.Color{R: p.R, G: p.G, B: p.B, A: p.A}
			commands = commands[1:]
		}
	}

	writer := newVertexWriter(pass.Target.Width, pass.Target.Height)
	for _, cmd := range commands {
		switch c := cmd.(type) {
		case recording.FillPathCommand:
			writer.setColor(c.Paint.Color)
			writer.fillPath(c.Path)
		case recording.StrokePathCommand:
			writer.setColor(c.Paint.Color)
			writer.strokePath(c.Path, c.Paint.LineWidth)
		case recording.FillRectCommand:
			writer.setColor(c.Paint.Color)
			writer.fillRect(c.Rect)
		case recording.DrawTextCommand:
			if !e.textWarn {
				log.Printf("wgpu: text rendering not implemented, skipping %q", c.Text)
				e.textWarn = true
			}
		}
	}

	var vertBuf hal.Buffer
	vertCount := writer.vertexCount()
	if vertCount > 0 {
		data := floatBytes(writer.data)
		buf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "cover_vertices",
			Size:  uint64(len(data)),
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("wgpu: create vertex buffer: %w", err)
		}
		e.queue.WriteBuffer(buf, 0, data)
		vertBuf = buf
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     loadOp,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: clearColor,
			},
		},
	})

	if vertCount > 0 {
		pipeline, err := e.pipelineFor(pass.Target.Format)
		if err != nil {
			rp.End()
			e.device.DestroyBuffer(vertBuf)
			return nil, err
		}
		rp.SetPipeline(pipeline.pipeline)
		rp.SetVertexBuffer(0, vertBuf, 0)
		rp.Draw(uint32(vertCount), 1, 0, 0)
	}
	rp.End()
	return vertBuf, nil
}

// pipelineFor returns the cover pipeline for a target format,
// creating it on first use.
func (e *Executor) pipelineFor(format gputypes.TextureFormat) (*coverPipeline, error) {
	if p, ok := e.pipelines[format]; ok {
		return p, nil
	}
	p, err := newCoverPipeline(e.device, format)
	if err != nil {
		return nil, err
	}
	e.pipelines[format] = p
	return p, nil
}

// waitFence waits for the fence in short slices, invoking the tick
// hook between slices so the host can keep its loop alive.
func (e *Executor) waitFence(fence hal.Fence) error {
	deadline := time.Now().Add(fenceTimeout)
	for {
		ok, err := e.device.Wait(fence, 1, fenceWaitSlice)
		if err != nil {
			return fmt.Errorf("%w: fence wait: %v", submit.ErrDeviceLost, err)
		}
		if ok {
			return nil
		}
		if e.Tick != nil {
			e.Tick()
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: fence timeout after %v", submit.ErrDeviceLost, fenceTimeout)
		}
	}
}

// reapInFlight releases batches whose fences have signaled. With
// block set it waits for all of them.
func (e *Executor) reapInFlight(block bool) {
	remaining := e.inFlight[:0]
	for _, b := range e.inFlight {
		wait := time.Duration(0)
		if block {
			wait = fenceTimeout
		}
		ok, err := e.device.Wait(b.fence, 1, wait)
		if ok || err != nil {
			e.releaseBatch(b)
			continue
		}
		remaining = append(remaining, b)
	}
	e.inFlight = remaining
}

// releaseBatch frees all resources of a batch.
func (e *Executor) releaseBatch(b *flightBatch) {
	e.device.DestroyFence(b.fence)
	for _, cb := range b.cmdBufs {
		e.device.FreeCommandBuffer(cb)
	}
	e.destroyBuffers(b.buffers)
}

func (e *Executor) destroyBuffers(buffers []hal.Buffer) {
	for _, b := range buffers {
		e.device.DestroyBuffer(b)
	}
}

// Close waits for outstanding work and destroys cached pipelines.
func (e *Executor) Close() {
	e.reapInFlight(true)
	for _, p := range e.pipelines {
		p.destroy()
	}
	e.pipelines = nil
}

// Ensure Executor implements submit.Executor.
var _ submit.Executor = (*Executor)(nil)

// floatBytes converts float32 vertex data to little-endian bytes for
// a buffer upload.
func floatBytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}
