package gpu

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// MaskTarget is a multisampled single-channel texture the host renders
// eraser or clip mask coverage into, plus the view the brush pipeline
// binds.
type MaskTarget struct {
	Texture hal.Texture
	View    hal.TextureView

	Width       uint32
	Height      uint32
	SampleCount uint32
}

// CreateMaskTarget creates a multisampled R8Unorm texture usable both
// as a render attachment (the host draws mask coverage into it) and as
// a fragment stage binding. sampleCount 0 means DefaultSampleCount.
func (p *BrushPipeline) CreateMaskTarget(label string, width, height, sampleCount uint32) (*MaskTarget, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("shade: mask target dimensions must be positive")
	}
	if sampleCount == 0 {
		sampleCount = DefaultSampleCount
	}

	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}

	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatR8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create %s view: %w", label, err)
	}

	return &MaskTarget{
		Texture:     tex,
		View:        view,
		Width:       width,
		Height:      height,
		SampleCount: sampleCount,
	}, nil
}

// Destroy releases the mask target's texture and view.
func (m *MaskTarget) Destroy(device hal.Device) {
	if m == nil {
		return
	}
	if m.View != nil {
		device.DestroyTextureView(m.View)
		m.View = nil
	}
	if m.Texture != nil {
		device.DestroyTexture(m.Texture)
		m.Texture = nil
	}
}

// BrushTexture is an RGBA brush image uploaded to the GPU, plus the
// view the textured pipelines sample from.
type BrushTexture struct {
	Texture hal.Texture
	View    hal.TextureView

	Width  uint32
	Height uint32
}

// CreateBrushTexture uploads an image as an RGBA8 brush texture. The
// image is converted to RGBA if it isn't already.
func (p *BrushPipeline) CreateBrushTexture(label string, img image.Image) (*BrushTexture, error) {
	if img == nil {
		return nil, fmt.Errorf("shade: brush image is nil")
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("shade: brush image is empty")
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != w*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	width := uint32(w)  //nolint:gosec // bounds checked above
	height := uint32(h) //nolint:gosec // bounds checked above

	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}

	p.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		rgba.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)

	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create %s view: %w", label, err)
	}

	return &BrushTexture{
		Texture: tex,
		View:    view,
		Width:   width,
		Height:  height,
	}, nil
}

// Destroy releases the brush texture and view.
func (b *BrushTexture) Destroy(device hal.Device) {
	if b == nil {
		return
	}
	if b.View != nil {
		device.DestroyTextureView(b.View)
		b.View = nil
	}
	if b.Texture != nil {
		device.DestroyTexture(b.Texture)
		b.Texture = nil
	}
}
