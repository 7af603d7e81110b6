// Package wgpu runs the frame pipeline on the gogpu/wgpu Pure Go
// WebGPU implementation.
//
// It provides the three backend pieces the pipeline needs:
//   - Provider: opens a hal instance, picks an adapter and exposes the
//     device through the gpucontext.DeviceProvider interface
//   - TextureSource: creates the swapchain's presentable textures
//   - Executor: plays recordings back as real render passes and
//     submits them to the device queue
//
// Shaders are written in WGSL and compiled to SPIR-V at pipeline
// creation time with gogpu/naga.
package wgpu
