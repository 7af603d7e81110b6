package wgpu

import (
	"fmt"
	"log"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Provider owns a standalone hal instance, adapter and device and
// exposes them through gpucontext.DeviceProvider. It is the headless
// counterpart of running inside a windowing host: the pipeline borrows
// the device exactly the same way, the provider just happens to have
// created it.
type Provider struct {
	instance hal.Instance
	adapter  hal.Adapter
	device   hal.Device
	queue    hal.Queue
	format   gputypes.TextureFormat
	name     string
	devType  gputypes.DeviceType
}

// NewProvider opens the Vulkan backend, picks the best available
// adapter (discrete before integrated before anything else) and opens
// a device on it.
func NewProvider() (*Provider, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	log.Printf("wgpu: using adapter %q (%v)", selected.Info.Name, selected.Info.DeviceType)
	return &Provider{
		instance: instance,
		adapter:  selected.Adapter,
		device:   openDev.Device,
		queue:    openDev.Queue,
		format:   gputypes.TextureFormatBGRA8Unorm,
		name:     selected.Info.Name,
		devType:  selected.Info.DeviceType,
	}, nil
}

// AdapterName returns the name of the selected adapter.
func (p *Provider) AdapterName() string { return p.name }

// Device returns the device as a gpucontext.Device.
func (p *Provider) Device() gpucontext.Device {
	if p.device == nil {
		return nil
	}
	return &contextDevice{hal: p.device}
}

// Queue returns the device queue.
func (p *Provider) Queue() gpucontext.Queue { return p.queue }

// Adapter returns the selected adapter.
func (p *Provider) Adapter() gpucontext.Adapter { return p.adapter }

// AdapterInfo returns the selected adapter's name and type.
func (p *Provider) AdapterInfo() gpucontext.AdapterInfo {
	info := gpucontext.AdapterInfo{Name: p.name}
	switch p.devType {
	case gputypes.DeviceTypeDiscreteGPU:
		info.Type = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		info.Type = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		info.Type = gpucontext.AdapterTypeSoftware
	default:
		info.Type = gpucontext.AdapterTypeUnknown
	}
	return info
}

// SurfaceFormat returns the format presentable textures use.
func (p *Provider) SurfaceFormat() gputypes.TextureFormat { return p.format }

// HalDevice returns the underlying hal.Device.
func (p *Provider) HalDevice() any { return p.device }

// HalQueue returns the underlying hal.Queue.
func (p *Provider) HalQueue() any { return p.queue }

// Close destroys the device and instance. The provider is unusable
// afterwards; Device returns nil.
func (p *Provider) Close() {
	if p.device != nil {
		p.device.Destroy()
		p.device = nil
		p.queue = nil
	}
	if p.instance != nil {
		p.instance.Destroy()
		p.instance = nil
	}
}

// Ensure Provider implements the provider interface.
var _ gpucontext.DeviceProvider = (*Provider)(nil)

// contextDevice adapts hal.Device to gpucontext.Device.
type contextDevice struct {
	hal hal.Device
}

// Poll is a no-op; the hal device has no incremental poll, work is
// driven by fence waits at submit time.
func (d *contextDevice) Poll(wait bool) {}

// Destroy releases the underlying device.
func (d *contextDevice) Destroy() {
	d.hal.Destroy()
}
