package frame

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/frame/recording"
	"github.com/gogpu/frame/submit"
	"github.com/gogpu/frame/swapchain"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockProvider implements render.DeviceHandle.
type mockProvider struct {
	device gpucontext.Device
}

func newMockProvider() *mockProvider {
	return &mockProvider{device: &mockDevice{}}
}

func (m *mockProvider) Device() gpucontext.Device   { return m.device }
func (m *mockProvider) Queue() gpucontext.Queue     { return nil }
func (m *mockProvider) Adapter() gpucontext.Adapter { return nil }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// stubTexture implements swapchain.ChainTexture.
type stubTexture struct {
	id        int
	destroyed bool
}

func (t *stubTexture) View() any {
	if t.destroyed {
		return nil
	}
	return t.id
}

func (t *stubTexture) Destroy() { t.destroyed = true }

// stubSource implements swapchain.TextureSource.
type stubSource struct {
	count int
}

func (s *stubSource) CreateTexture(width, height uint32, format gputypes.TextureFormat) (swapchain.ChainTexture, error) {
	tex := &stubTexture{id: s.count}
	s.count++
	return tex, nil
}

// captureExecutor records submitted batches. errs, when non-empty, is
// consumed one entry per Execute call.
type captureExecutor struct {
	batches [][]*recording.Recording
	modes   []submit.SyncMode
	errs    []error
}

func (e *captureExecutor) Execute(recs []*recording.Recording, mode submit.SyncMode) error {
	e.batches = append(e.batches, recs)
	e.modes = append(e.modes, mode)
	if len(e.errs) > 0 {
		err := e.errs[0]
		e.errs = e.errs[1:]
		return err
	}
	return nil
}

type testRig struct {
	provider *mockProvider
	chain    *swapchain.Chain
	session  *RenderSession
	executor *captureExecutor
}

func newTestRig(t *testing.T, cfg swapchain.Config) *testRig {
	t.Helper()
	if cfg.Width == 0 {
		cfg = swapchain.Config{Width: 800, Height: 600, Format: gputypes.TextureFormatBGRA8Unorm}
	}
	provider := newMockProvider()
	chain, err := swapchain.NewChain(&stubSource{}, cfg)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}
	executor := &captureExecutor{}
	session, err := NewSession(provider, chain, SessionOptions{Executor: executor})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(func() {
		session.Close()
		chain.Close()
	})
	return &testRig{provider: provider, chain: chain, session: session, executor: executor}
}

func TestNewSessionValidation(t *testing.T) {
	chain, err := swapchain.NewChain(&stubSource{}, swapchain.Config{
		Width: 8, Height: 8, Format: gputypes.TextureFormatBGRA8Unorm,
	})
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}
	defer chain.Close()

	if _, err := NewSession(nil, chain, SessionOptions{}); !errors.Is(err, ErrNilDeviceHandle) {
		t.Errorf("nil handle err = %v, want ErrNilDeviceHandle", err)
	}
	if _, err := NewSession(newMockProvider(), nil, SessionOptions{}); !errors.Is(err, ErrNilChain) {
		t.Errorf("nil chain err = %v, want ErrNilChain", err)
	}
}

func TestSessionColorTypeFromChainFormat(t *testing.T) {
	rig := newTestRig(t, swapchain.Config{})
	if got := rig.session.ColorType().String(); got != "BGRA8888" {
		t.Errorf("ColorType = %v, want BGRA8888", got)
	}
}

func TestTickRendersOneFrame(t *testing.T) {
	rig := newTestRig(t, swapchain.Config{})
	var drawTimes []float64
	driver := NewDriver(rig.session, DriverConfig{
		Draw: func(canvas *recording.Canvas, tm float64) {
			drawTimes = append(drawTimes, tm)
			canvas.Clear(recording.RGB(1, 1, 1))
			canvas.SetRGB(1, 0, 0)
			canvas.DrawCircle(400, 300, 30)
			canvas.Fill()
		},
		Sync: submit.SyncCPU,
	})

	if err := driver.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if driver.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", driver.Frames())
	}
	if driver.State() != StateIdle {
		t.Errorf("State = %v, want Idle", driver.State())
	}
	if len(drawTimes) != 1 || drawTimes[0] != 0 {
		t.Errorf("draw times = %v, want [0]", drawTimes)
	}
	if math.Abs(driver.Now()-DefaultClockStep) > 1e-12 {
		t.Errorf("Now after one frame = %v, want %v", driver.Now(), DefaultClockStep)
	}

	if len(rig.executor.batches) != 1 {
		t.Fatalf("executor saw %d batches, want 1", len(rig.executor.batches))
	}
	if rig.executor.modes[0] != submit.SyncCPU {
		t.Errorf("sync mode = %v, want SyncCPU", rig.executor.modes[0])
	}
	batch := rig.executor.batches[0]
	if len(batch) != 1 || batch[0].CommandCount() != 2 {
		t.Errorf("batch = %d recordings, %d commands, want 1 recording of 2 commands",
			len(batch), batch[0].CommandCount())
	}
	pass := batch[0].Passes()[0]
	if pass.Target.Width != 800 || pass.Target.Height != 600 {
		t.Errorf("pass target = %dx%d, want 800x600", pass.Target.Width, pass.Target.Height)
	}
	if pass.Target.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("pass format = %v, want BGRA8Unorm", pass.Target.Format)
	}
}

func TestTickAdvancesClockPerFrame(t *testing.T) {
	rig := newTestRig(t, swapchain.Config{})
	var drawTimes []float64
	driver := NewDriver(rig.session, DriverConfig{
		Draw: func(canvas *recording.Canvas, tm float64) {
			drawTimes = append(drawTimes, tm)
			canvas.Clear(recording.RGB(0, 0, 0))
		},
		ClockStep: 0.016,
	})

	for i := 0; i < 3; i++ {
		if err := driver.Tick(); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
	}
	want := []float64{0, 0.016, 0.032}
	for i := range want {
		if math.Abs(drawTimes[i]-want[i]) > 1e-12 {
			t.Errorf("draw time %d = %v, want %v", i, drawTimes[i], want[i])
		}
	}
}

func TestEmptyFrameStillPresents(t *testing.T) {
	rig := newTestRig(t, swapchain.Config{})
	driver := NewDriver(rig.session, DriverConfig{})

	if err := driver.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if driver.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", driver.Frames())
	}
	// Nothing recorded means nothing submitted.
	if len(rig.executor.batches) != 0 {
		t.Errorf("executor invoked for empty frame")
	}
	if driver.Now() == 0 {
		t.Error("clock did not advance for empty frame")
	}
}

func TestSubmitFailureAbortsFrame(t *testing.T) {
	rig := newTestRig(t, swapchain.Config{})
	rig.executor.errs = []error{fmt.Errorf("transient encode failure")}
	driver := NewDriver(rig.session, DriverConfig{
		Draw: func(canvas *recording.Canvas, tm float64) {
			canvas.Clear(recording.RGB(1, 1, 1))
		},
	})

	if err := driver.Tick(); err != nil {
		t.Fatalf("Tick with failing submit returned %v, want nil (frame aborted)", err)
	}
	if driver.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", driver.Frames())
	}
	if driver.Aborts() != 1 {
		t.Errorf("Aborts = %d, want 1", driver.Aborts())
	}
	if driver.Now() != 0 {
		t.Errorf("clock advanced on aborted frame: Now = %v", driver.Now())
	}

	// The next frame proceeds normally.
	if err := driver.Tick(); err != nil {
		t.Fatalf("Tick after abort: %v", err)
	}
	if driver.Frames() != 1 {
		t.Errorf("Frames after recovery = %d, want 1", driver.Frames())
	}
}

func TestPresentFailureAbortsFrame(t *testing.T) {
	presentErrs := []error{errors.New("surface busy")}
	cfg := swapchain.Config{
		Width: 800, Height: 600, Format: gputypes.TextureFormatBGRA8Unorm,
		Present: func(index int) error {
			if len(presentErrs) > 0 {
				err := presentErrs[0]
				presentErrs = presentErrs[1:]
				return err
			}
			return nil
		},
	}
	rig := newTestRig(t, cfg)
	driver := NewDriver(rig.session, DriverConfig{
		Draw: func(canvas *recording.Canvas, tm float64) {
			canvas.Clear(recording.RGB(1, 1, 1))
		},
	})

	if err := driver.Tick(); err != nil {
		t.Fatalf("Tick with failing present returned %v, want nil", err)
	}
	if driver.Aborts() != 1 || driver.Frames() != 0 {
		t.Errorf("Aborts = %d, Frames = %d, want 1, 0", driver.Aborts(), driver.Frames())
	}
	if driver.Now() != 0 {
		t.Errorf("clock advanced on failed present: Now = %v", driver.Now())
	}

	if err := driver.Tick(); err != nil {
		t.Fatalf("Tick after present failure: %v", err)
	}
	if driver.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", driver.Frames())
	}
}

func TestDeviceLostHaltsDriver(t *testing.T) {
	rig := newTestRig(t, swapchain.Config{})
	rig.executor.errs = []error{fmt.Errorf("%w: queue gone", submit.ErrDeviceLost)}
	driver := NewDriver(rig.session, DriverConfig{
		Draw: func(canvas *recording.Canvas, tm float64) {
			canvas.Clear(recording.RGB(1, 1, 1))
		},
	})

	err := driver.Tick()
	if !errors.Is(err, submit.ErrDeviceLost) {
		t.Fatalf("Tick = %v, want ErrDeviceLost", err)
	}
	if driver.State() != StateHalted {
		t.Errorf("State = %v, want Halted", driver.State())
	}

	// Every subsequent tick reports the halt without touching the chain.
	if err := driver.Tick(); !errors.Is(err, ErrHalted) {
		t.Errorf("Tick after halt = %v, want ErrHalted", err)
	}
	if driver.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", driver.Frames())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateIdle, "Idle"},
		{StateAcquiring, "Acquiring"},
		{StateRecording, "Recording"},
		{StateSubmitting, "Submitting"},
		{StatePresenting, "Presenting"},
		{StateHalted, "Halted"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
