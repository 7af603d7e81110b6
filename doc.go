// Package frame drives a per-frame GPU rendering pipeline.
//
// # Overview
//
// frame coordinates one render loop iteration end to end: acquire a
// presentable texture from a swapchain, wrap it as a backend texture,
// open a recording surface on it, record drawing commands, snap the
// recording, submit it to the device queue, present, and advance the
// animation clock.
//
// # Quick Start
//
//	provider, err := wgpu.NewProvider()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	chain, err := swapchain.NewChain(wgpu.NewTextureSource(provider), swapchain.Config{
//	    Width: 800, Height: 600, Format: provider.SurfaceFormat(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer chain.Close()
//
//	session, err := frame.NewSession(provider, chain, frame.SessionOptions{
//	    Executor: wgpu.NewExecutor(provider),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	driver := frame.NewDriver(session, frame.DriverConfig{
//	    Draw: func(canvas *recording.Canvas, t float64) {
//	        canvas.SetRGB(1, 0, 0)
//	        canvas.DrawCircle(400, 300, 100+50*math.Sin(t))
//	        canvas.Fill()
//	    },
//	})
//	for running {
//	    if err := driver.Tick(); err != nil {
//	        break
//	    }
//	}
//
// # Structure
//
// The pipeline is split into focused packages:
//   - swapchain: rotating set of presentable textures
//   - render: backend texture wrapping and target surfaces
//   - recording: command capture and immutable recordings
//   - submit: submission context binding recorder to device queue
//   - backend/wgpu: device provider and executor on gogpu/wgpu
//
// This package ties them together with the Session, the Driver state
// machine and the animation clock.
package frame
