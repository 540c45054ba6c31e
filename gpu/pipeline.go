package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shade"
)

// DefaultSampleCount is the MSAA sample count used when Config leaves
// SampleCount zero. Matches the host's default render target setup.
const DefaultSampleCount = 4

// Config configures a BrushPipeline.
type Config struct {
	// TargetFormat is the color target format.
	// If zero, defaults to BGRA8Unorm.
	TargetFormat gputypes.TextureFormat

	// SampleCount is the MSAA sample count of the render target.
	// If 0, defaults to DefaultSampleCount.
	SampleCount uint32
}

// PipelineKey identifies one pipeline variant: which fragment stage to
// run and whether the brush is textured.
type PipelineKey struct {
	Variant  shade.Variant
	Textured bool
}

// BrushPipeline builds and owns the render pipelines for the brush
// shading stages. One shader module holds every entry point; each
// PipelineKey gets its own bind group layout (containing only the
// texture bindings its fragment stage reads) and render pipeline.
//
// Pipelines are created lazily by EnsurePipeline. BrushPipeline is not
// safe for concurrent use; the host serializes pipeline setup.
type BrushPipeline struct {
	device hal.Device
	queue  hal.Queue
	config Config

	shader        hal.ShaderModule
	sampler       hal.Sampler
	uniformLayout hal.BindGroupLayout

	textureLayouts map[PipelineKey]hal.BindGroupLayout
	pipeLayouts    map[PipelineKey]hal.PipelineLayout
	pipelines      map[PipelineKey]hal.RenderPipeline
}

// NewBrushPipeline creates a brush pipeline builder for the given
// device and queue. No GPU objects are created until EnsurePipeline.
func NewBrushPipeline(device hal.Device, queue hal.Queue, config Config) *BrushPipeline {
	if config.TargetFormat == 0 {
		config.TargetFormat = gputypes.TextureFormatBGRA8Unorm
	}
	if config.SampleCount == 0 {
		config.SampleCount = DefaultSampleCount
	}
	return &BrushPipeline{
		device:         device,
		queue:          queue,
		config:         config,
		textureLayouts: make(map[PipelineKey]hal.BindGroupLayout),
		pipeLayouts:    make(map[PipelineKey]hal.PipelineLayout),
		pipelines:      make(map[PipelineKey]hal.RenderPipeline),
	}
}

// Config returns the pipeline configuration with defaults applied.
func (p *BrushPipeline) Config() Config {
	return p.config
}

// Pipeline returns the render pipeline for a key, or nil if
// EnsurePipeline has not been called for it.
func (p *BrushPipeline) Pipeline(key PipelineKey) hal.RenderPipeline {
	return p.pipelines[key]
}

// EnsurePipeline creates the shader module, layouts, and render
// pipeline for the given key if they don't already exist.
func (p *BrushPipeline) EnsurePipeline(key PipelineKey) error {
	if p.pipelines[key] != nil {
		return nil
	}
	if err := p.ensureShared(); err != nil {
		return err
	}
	return p.createPipeline(key)
}

// ensureShared creates the resources every pipeline variant shares:
// the shader module, the brush sampler, and the uniform layout.
func (p *BrushPipeline) ensureShared() error {
	if p.shader != nil {
		return nil
	}
	if brushShaderSource == "" {
		return fmt.Errorf("shade: brush shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "brush_shader",
		Source: hal.ShaderSource{WGSL: brushShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile brush shader: %w", err)
	}
	p.shader = shader

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "brush_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("create brush sampler: %w", err)
	}
	p.sampler = sampler

	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "brush_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    BindingUniforms,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create brush uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	return nil
}

// textureLayoutEntries returns the GroupTextures layout entries a
// pipeline key needs. Binding indices are fixed by the ABI; a variant
// that doesn't read a texture simply omits its binding.
func textureLayoutEntries(key PipelineKey) []gputypes.BindGroupLayoutEntry {
	var entries []gputypes.BindGroupLayoutEntry
	if key.Textured {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    BindingBrushTexture,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    BindingBrushSampler,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	if key.Variant.UsesEraser() {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    BindingEraserTexture,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
				Multisampled:  true,
			},
		})
	}
	if key.Variant.UsesClipMask() {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    BindingClipMaskTexture,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
				Multisampled:  true,
			},
		})
	}
	return entries
}

// createPipeline creates the bind group layout, pipeline layout, and
// render pipeline for one key.
func (p *BrushPipeline) createPipeline(key PipelineKey) error {
	label := pipelineLabel(key)

	groupLayouts := []hal.BindGroupLayout{p.uniformLayout}
	if entries := textureLayoutEntries(key); len(entries) > 0 {
		texLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   label + "_texture_layout",
			Entries: entries,
		})
		if err != nil {
			return fmt.Errorf("create %s texture layout: %w", label, err)
		}
		p.textureLayouts[key] = texLayout
		groupLayouts = append(groupLayouts, texLayout)
	}

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: groupLayouts,
	})
	if err != nil {
		return fmt.Errorf("create %s pipeline layout: %w", label, err)
	}
	p.pipeLayouts[key] = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: VertexEntryPoint,
			Buffers:    brushVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: FragmentEntryPoint(key.Variant, key.Textured),
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.config.TargetFormat,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: p.config.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", label, err)
	}
	p.pipelines[key] = pipeline

	shade.Logger().Debug("brush pipeline created",
		"variant", key.Variant.String(),
		"textured", key.Textured,
		"entry_point", FragmentEntryPoint(key.Variant, key.Textured))

	return nil
}

// pipelineLabel returns the debug label for a pipeline key.
func pipelineLabel(key PipelineKey) string {
	if key.Textured {
		return "brush_pipeline_texture_" + key.Variant.String()
	}
	return "brush_pipeline_" + key.Variant.String()
}

// Destroy releases all GPU resources held by the pipeline builder.
// Safe to call multiple times or on a builder with no resources.
func (p *BrushPipeline) Destroy() {
	if p.device == nil {
		return
	}
	for key, pipeline := range p.pipelines {
		p.device.DestroyRenderPipeline(pipeline)
		delete(p.pipelines, key)
	}
	for key, layout := range p.pipeLayouts {
		p.device.DestroyPipelineLayout(layout)
		delete(p.pipeLayouts, key)
	}
	for key, layout := range p.textureLayouts {
		p.device.DestroyBindGroupLayout(layout)
		delete(p.textureLayouts, key)
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
