package swapchain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/gputypes"
)

// stubTexture implements ChainTexture for testing.
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

// stubSource implements TextureSource, optionally failing after a
// number of successful creations.
type stubSource struct {
	created   []*stubTexture
	failAfter int // -1 means never fail
}

func newStubSource() *stubSource {
	return &stubSource{failAfter: -1}
}

func (s *stubSource) CreateTexture(width, height uint32, format gputypes.TextureFormat) (ChainTexture, error) {
	if s.failAfter >= 0 && len(s.created) >= s.failAfter {
		return nil, fmt.Errorf("out of memory")
	}
	tex := &stubTexture{id: len(s.created)}
	s.created = append(s.created, tex)
	return tex, nil
}

func testConfig() Config {
	return Config{Width: 800, Height: 600, Format: gputypes.TextureFormatBGRA8Unorm}
}

func newTestChain(t *testing.T) (*Chain, *stubSource) {
	t.Helper()
	source := newStubSource()
	chain, err := NewChain(source, testConfig())
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}
	return chain, source
}

func TestNewChainDefaults(t *testing.T) {
	chain, source := newTestChain(t)
	if chain.FrameCount() != DefaultFrameCount {
		t.Errorf("FrameCount = %d, want %d", chain.FrameCount(), DefaultFrameCount)
	}
	if len(source.created) != DefaultFrameCount {
		t.Errorf("created %d textures, want %d", len(source.created), DefaultFrameCount)
	}
	if chain.Width() != 800 || chain.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", chain.Width(), chain.Height())
	}
}

func TestNewChainValidation(t *testing.T) {
	if _, err := NewChain(nil, testConfig()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("nil source err = %v, want ErrUnavailable", err)
	}
	cfg := testConfig()
	cfg.Width = 0
	if _, err := NewChain(newStubSource(), cfg); !errors.Is(err, ErrUnavailable) {
		t.Errorf("zero width err = %v, want ErrUnavailable", err)
	}
}

func TestNewChainCleansUpOnFailure(t *testing.T) {
	source := newStubSource()
	source.failAfter = 1
	if _, err := NewChain(source, testConfig()); err == nil {
		t.Fatal("NewChain succeeded with failing source")
	}
	for i, tex := range source.created {
		if !tex.destroyed {
			t.Errorf("texture %d leaked after failed NewChain", i)
		}
	}
}

func TestAcquirePresentRotates(t *testing.T) {
	chain, _ := newTestChain(t)

	frame, err := chain.AcquireCurrent()
	if err != nil {
		t.Fatalf("AcquireCurrent: %v", err)
	}
	if frame.Index() != 0 {
		t.Errorf("first acquire index = %d, want 0", frame.Index())
	}
	if err := chain.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	frame2, err := chain.AcquireCurrent()
	if err != nil {
		t.Fatalf("second AcquireCurrent: %v", err)
	}
	if frame2.Index() != 1 {
		t.Errorf("second acquire index = %d, want 1", frame2.Index())
	}
	if err := chain.Present(); err != nil {
		t.Fatalf("second Present: %v", err)
	}

	// Rotation wraps back to slot 0.
	frame3, _ := chain.AcquireCurrent()
	if frame3.Index() != 0 {
		t.Errorf("third acquire index = %d, want 0", frame3.Index())
	}
}

func TestDoubleAcquireRejected(t *testing.T) {
	chain, _ := newTestChain(t)
	if _, err := chain.AcquireCurrent(); err != nil {
		t.Fatalf("AcquireCurrent: %v", err)
	}
	if _, err := chain.AcquireCurrent(); !errors.Is(err, ErrAlreadyAcquired) {
		t.Errorf("double acquire err = %v, want ErrAlreadyAcquired", err)
	}
}

func TestPresentWithoutAcquire(t *testing.T) {
	chain, _ := newTestChain(t)
	if err := chain.Present(); !errors.Is(err, ErrNotAcquired) {
		t.Errorf("Present without acquire = %v, want ErrNotAcquired", err)
	}
}

func TestPresentInvalidatesHandle(t *testing.T) {
	chain, _ := newTestChain(t)
	frame, _ := chain.AcquireCurrent()
	if frame.View() == nil {
		t.Fatal("acquired frame has nil view")
	}
	if err := chain.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if frame.Valid() || frame.View() != nil {
		t.Error("frame handle still valid after Present")
	}
}

func TestPresentHookFailure(t *testing.T) {
	source := newStubSource()
	cfg := testConfig()
	presentErr := errors.New("surface lost")
	cfg.Present = func(index int) error { return presentErr }
	chain, err := NewChain(source, cfg)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	frame, _ := chain.AcquireCurrent()
	err = chain.Present()
	if !errors.Is(err, ErrPresentFailed) {
		t.Errorf("Present err = %v, want ErrPresentFailed", err)
	}
	if frame.Valid() {
		t.Error("handle still valid after failed Present")
	}

	// Rotation did not advance; the same slot is retried.
	cfg.Present = nil
	frame2, err := chain.AcquireCurrent()
	if err != nil {
		t.Fatalf("acquire after failed present: %v", err)
	}
	if frame2.Index() != 0 {
		t.Errorf("retry index = %d, want 0 (no rotation on failed present)", frame2.Index())
	}
}

func TestDiscardReleasesWithoutRotation(t *testing.T) {
	chain, _ := newTestChain(t)
	frame, _ := chain.AcquireCurrent()
	chain.Discard()
	if frame.Valid() {
		t.Error("handle still valid after Discard")
	}

	frame2, err := chain.AcquireCurrent()
	if err != nil {
		t.Fatalf("acquire after Discard: %v", err)
	}
	if frame2.Index() != 0 {
		t.Errorf("index after Discard = %d, want 0", frame2.Index())
	}
}

func TestDiscardWithoutAcquireIsNoop(t *testing.T) {
	chain, _ := newTestChain(t)
	chain.Discard()
	if _, err := chain.AcquireCurrent(); err != nil {
		t.Errorf("acquire after idle Discard: %v", err)
	}
}

func TestCloseDestroysTextures(t *testing.T) {
	chain, source := newTestChain(t)
	chain.Close()
	for i, tex := range source.created {
		if !tex.destroyed {
			t.Errorf("texture %d not destroyed by Close", i)
		}
	}
	if _, err := chain.AcquireCurrent(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("acquire after Close = %v, want ErrUnavailable", err)
	}
	// Close is idempotent.
	chain.Close()
}

func TestPresentCallbackReceivesIndex(t *testing.T) {
	source := newStubSource()
	cfg := testConfig()
	var presented []int
	cfg.Present = func(index int) error {
		presented = append(presented, index)
		return nil
	}
	chain, err := NewChain(source, cfg)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := chain.AcquireCurrent(); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
		if err := chain.Present(); err != nil {
			t.Fatalf("present %d: %v", i, err)
		}
	}
	want := []int{0, 1, 0}
	for i := range want {
		if presented[i] != want[i] {
			t.Errorf("presented[%d] = %d, want %d", i, presented[i], want[i])
		}
	}
}
