package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// NewBrushPipelineFromProvider creates a BrushPipeline on a shared GPU
// device owned by a host context. The provider must expose HalDevice()
// any and HalQueue() any returning wgpu/hal types; the host's surface
// format becomes the pipeline's target format unless config overrides
// it.
func NewBrushPipelineFromProvider(provider gpucontext.DeviceProvider, config Config) (*BrushPipeline, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("shade: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("shade: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("shade: provider HalQueue is not hal.Queue")
	}

	if config.TargetFormat == 0 {
		config.TargetFormat = provider.SurfaceFormat()
	}
	return NewBrushPipeline(device, queue, config), nil
}
