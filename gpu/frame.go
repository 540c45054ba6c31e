package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shade"
)

// Textures holds the texture views a draw call binds. Views the
// pipeline key does not use may be nil; views the key uses must be set
// or BuildFrameResources fails.
type Textures struct {
	// Brush is the brush texture view (textured keys only).
	Brush hal.TextureView

	// Eraser is the multisampled eraser texture view.
	Eraser hal.TextureView

	// ClipMask is the multisampled clip mask texture view.
	ClipMask hal.TextureView
}

// FrameResources holds the per-frame GPU resources for one brush draw
// call: the vertex buffer, the uniform buffer, and the bind groups.
// Build them once per frame with BuildFrameResources and release them
// with Destroy after the frame's command buffer has been submitted.
type FrameResources struct {
	key PipelineKey

	vertBuf    hal.Buffer
	uniformBuf hal.Buffer

	uniformGroup hal.BindGroup
	textureGroup hal.BindGroup // nil for the untextured plain key

	vertCount uint32
}

// BuildFrameResources creates the vertex buffer, uniform buffer, and
// bind groups for one draw call. The pipeline for the key must have
// been created with EnsurePipeline first.
func (p *BrushPipeline) BuildFrameResources(key PipelineKey, verts []shade.Vertex, uniforms Uniforms, textures Textures) (*FrameResources, error) {
	if p.pipelines[key] == nil {
		return nil, fmt.Errorf("shade: pipeline %s not created", pipelineLabel(key))
	}
	if len(verts) == 0 {
		return nil, nil //nolint:nilnil // empty vertex data is a valid no-op, not an error
	}

	vertBuf, err := p.createAndUploadBuffer("brush_verts", shade.EncodeVertices(verts),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	uniformBuf, err := p.createAndUploadBuffer("brush_uniforms", uniforms.Encode(),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		p.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}

	uniformGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "brush_uniform_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: BindingUniforms, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: UniformsSize,
			}},
		},
	})
	if err != nil {
		p.device.DestroyBuffer(uniformBuf)
		p.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create uniform bind group: %w", err)
	}

	res := &FrameResources{
		key:          key,
		vertBuf:      vertBuf,
		uniformBuf:   uniformBuf,
		uniformGroup: uniformGroup,
		vertCount:    uint32(len(verts)), //nolint:gosec // vertex count fits uint32
	}

	if texLayout := p.textureLayouts[key]; texLayout != nil {
		entries, err := p.textureBindEntries(key, textures)
		if err != nil {
			res.Destroy(p.device)
			return nil, err
		}
		textureGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:   "brush_texture_bind",
			Layout:  texLayout,
			Entries: entries,
		})
		if err != nil {
			res.Destroy(p.device)
			return nil, fmt.Errorf("create texture bind group: %w", err)
		}
		res.textureGroup = textureGroup
	}

	return res, nil
}

// textureBindEntries builds the GroupTextures bind entries for a key,
// validating that every view the key's fragment stage reads is set.
func (p *BrushPipeline) textureBindEntries(key PipelineKey, textures Textures) ([]gputypes.BindGroupEntry, error) {
	var entries []gputypes.BindGroupEntry
	if key.Textured {
		if textures.Brush == nil {
			return nil, fmt.Errorf("shade: %s requires a brush texture", pipelineLabel(key))
		}
		entries = append(entries,
			gputypes.BindGroupEntry{Binding: BindingBrushTexture, Resource: gputypes.TextureViewBinding{
				TextureView: textures.Brush.NativeHandle(),
			}},
			gputypes.BindGroupEntry{Binding: BindingBrushSampler, Resource: gputypes.SamplerBinding{
				Sampler: p.sampler.NativeHandle(),
			}},
		)
	}
	if key.Variant.UsesEraser() {
		if textures.Eraser == nil {
			return nil, fmt.Errorf("shade: %s requires an eraser texture", pipelineLabel(key))
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: BindingEraserTexture,
			Resource: gputypes.TextureViewBinding{
				TextureView: textures.Eraser.NativeHandle(),
			},
		})
	}
	if key.Variant.UsesClipMask() {
		if textures.ClipMask == nil {
			return nil, fmt.Errorf("shade: %s requires a clip mask texture", pipelineLabel(key))
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: BindingClipMaskTexture,
			Resource: gputypes.TextureViewBinding{
				TextureView: textures.ClipMask.NativeHandle(),
			},
		})
	}
	return entries, nil
}

// RecordDraws records the draw call into an existing render pass. The
// render pass is owned by the host. This is a no-op if resources is
// nil (empty vertex data).
func (p *BrushPipeline) RecordDraws(rp hal.RenderPassEncoder, resources *FrameResources) {
	if resources == nil || resources.vertCount == 0 {
		return
	}
	rp.SetPipeline(p.pipelines[resources.key])
	rp.SetBindGroup(GroupUniforms, resources.uniformGroup, nil)
	if resources.textureGroup != nil {
		rp.SetBindGroup(GroupTextures, resources.textureGroup, nil)
	}
	rp.SetVertexBuffer(0, resources.vertBuf, 0)
	rp.Draw(resources.vertCount, 1, 0, 0)
}

// Destroy releases the frame resources. Safe to call on partially
// built resources.
func (r *FrameResources) Destroy(device hal.Device) {
	if r == nil {
		return
	}
	if r.textureGroup != nil {
		device.DestroyBindGroup(r.textureGroup)
		r.textureGroup = nil
	}
	if r.uniformGroup != nil {
		device.DestroyBindGroup(r.uniformGroup)
		r.uniformGroup = nil
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
	}
}

// createAndUploadBuffer creates a GPU buffer and writes data into it
// through the queue.
func (p *BrushPipeline) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	p.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
