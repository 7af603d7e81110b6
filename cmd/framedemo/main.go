// Command framedemo runs the frame pipeline headless on a real GPU,
// rendering an animated scene into a rotating texture chain.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/backend/wgpu"
	"github.com/gogpu/frame/recording"
	"github.com/gogpu/frame/submit"
	"github.com/gogpu/frame/swapchain"
)

func main() {
	var (
		width    = flag.Uint("width", 800, "target width")
		height   = flag.Uint("height", 600, "target height")
		frames   = flag.Uint64("frames", 300, "number of frames to render (0 = forever)")
		step     = flag.Float64("step", frame.DefaultClockStep, "animation clock step per frame")
		interval = flag.Duration("interval", 16*time.Millisecond, "tick interval")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	frame.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	provider, err := wgpu.NewProvider()
	if err != nil {
		log.Fatalf("open GPU: %v", err)
	}
	defer provider.Close()

	chain, err := swapchain.NewChain(wgpu.NewTextureSource(provider), swapchain.Config{
		Width:  uint32(*width),
		Height: uint32(*height),
		Format: provider.SurfaceFormat(),
	})
	if err != nil {
		log.Fatalf("create swapchain: %v", err)
	}
	defer chain.Close()

	executor := wgpu.NewExecutor(provider)
	defer executor.Close()

	session, err := frame.NewSession(provider, chain, frame.SessionOptions{
		Executor: executor,
	})
	if err != nil {
		log.Fatalf("open session: %v", err)
	}
	defer session.Close()

	w, h := float64(*width), float64(*height)
	driver := frame.NewDriver(session, frame.DriverConfig{
		Draw: func(canvas *recording.Canvas, t float64) {
			drawContent(canvas, w, h, t)
		},
		ClockStep: *step,
		Sync:      submit.SyncCPU,
	})

	ctx := context.Background()
	start := time.Now()
	for *frames == 0 || driver.Frames() < *frames {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := driver.Tick(); err != nil {
			if errors.Is(err, frame.ErrHalted) {
				log.Fatal("driver halted")
			}
			log.Fatalf("tick: %v", err)
		}
		time.Sleep(*interval)
	}
	elapsed := time.Since(start)
	log.Printf("rendered %d frames in %v (%.1f fps), %d aborted",
		driver.Frames(), elapsed.Round(time.Millisecond),
		float64(driver.Frames())/elapsed.Seconds(), driver.Aborts())
}

// drawContent records one frame of the animated scene: a slowly
// rotating tinted background, diamond shapes with drop shadows,
// pulsing circles and bobbing rounded rectangles.
func drawContent(canvas *recording.Canvas, w, h, t float64) {
	canvas.Clear(recording.RGB(1, 1, 1))

	// Rotating tinted background.
	canvas.Push()
	canvas.Translate(w/2, h/2)
	canvas.Rotate(t * 30 * math.Pi / 180)
	canvas.Translate(-w/2, -h/2)
	canvas.SetRGB(230/255.0, 235/255.0, 1)
	canvas.DrawRectangle(0, 0, w, h)
	canvas.Fill()
	canvas.Pop()

	// Diamond pairs with drop shadows.
	for i := 0; i < 3; i++ {
		fi := float64(i)
		offsetX := 100 + fi*200 + math.Sin(t+fi)*20
		offsetY := 150 + math.Cos(t*0.5+fi)*30

		canvas.Push()
		canvas.Translate(offsetX, offsetY)
		canvas.Scale(1.5, 1.5)

		canvas.Push()
		canvas.Translate(5, 5)
		canvas.SetRGBA(0, 0, 0, 60/255.0)
		drawDiamonds(canvas)
		canvas.Fill()
		canvas.Pop()

		canvas.SetRGB(66/255.0, 133/255.0, 244/255.0)
		drawDiamonds(canvas)
		canvas.Fill()
		canvas.Pop()
	}

	// Pulsing circles.
	for i := 0; i < 5; i++ {
		fi := float64(i)
		x := 100 + fi*150
		y := 450 + math.Sin(t*2+fi*0.5)*50
		radius := 30 + math.Sin(t*3+fi)*10
		canvas.SetRGBA(
			0.5+0.5*math.Sin(t+fi),
			0.5+0.5*math.Cos(t+fi*0.7),
			0.5+0.5*math.Sin(t*0.5+fi),
			180/255.0,
		)
		canvas.DrawCircle(x, y, radius)
		canvas.Fill()
	}

	// Bobbing rounded rectangles.
	for i := 0; i < 4; i++ {
		fi := float64(i)
		x := 50 + fi*180
		y := 300 + math.Cos(t+fi*0.8)*30
		canvas.SetRGBA(
			0.5+0.5*math.Cos(t*0.5+fi),
			200/255.0,
			0.5+0.5*math.Sin(t*0.3+fi),
			200/255.0,
		)
		canvas.DrawRoundedRectangle(x, y, 120, 60, 15)
		canvas.Fill()
	}

	// Title and clock readout.
	canvas.SetRGB(0, 0, 0)
	canvas.SetFontSize(24)
	canvas.DrawString("gogpu frame demo", 50, 50)
	canvas.DrawString(fmt.Sprintf("Time: %.1f", t), 50, 80)
}

// drawDiamonds builds the two-diamond contour the shape demo uses.
func drawDiamonds(canvas *recording.Canvas) {
	canvas.MoveTo(75, 0)
	canvas.LineTo(150, 50)
	canvas.LineTo(150, 100)
	canvas.LineTo(75, 50)
	canvas.ClosePath()

	canvas.MoveTo(75, 50)
	canvas.LineTo(150, 100)
	canvas.LineTo(150, 150)
	canvas.LineTo(75, 100)
	canvas.ClosePath()
}
