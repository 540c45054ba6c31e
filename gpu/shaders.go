package gpu

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shade"
)

//go:embed shaders/brush.wgsl
var brushShaderSource string

// GetBrushShaderSource returns the WGSL source for the brush shader.
func GetBrushShaderSource() string {
	return brushShaderSource
}

// Bind group indices. These form the ABI between the shader module and
// the host pipeline setup; renumbering breaks drop-in compatibility.
const (
	// GroupUniforms holds the vertex stage uniforms (bind group 0).
	GroupUniforms = 0

	// GroupTextures holds the fragment stage textures (bind group 1).
	GroupTextures = 1
)

// Bindings within GroupUniforms.
const (
	// BindingUniforms is the shading uniform buffer (transform matrices).
	BindingUniforms = 0
)

// Bindings within GroupTextures. The brush, eraser and clip mask slots
// mirror the texture input indices of the original host engine and
// must stay distinct and fixed.
const (
	// BindingBrushTexture is the brush texture to render.
	BindingBrushTexture = 0

	// BindingEraserTexture is the multisampled eraser texture.
	BindingEraserTexture = 1

	// BindingClipMaskTexture is the multisampled clip mask texture.
	BindingClipMaskTexture = 2

	// BindingBrushSampler is the sampler for the brush texture.
	BindingBrushSampler = 3
)

// VertexEntryPoint is the vertex stage entry point in brush.wgsl.
const VertexEntryPoint = "vs_main"

// Fragment entry points in brush.wgsl, one per variant and texturing mode.
const (
	FragmentPlain          = "fs_plain"
	FragmentEraser         = "fs_eraser"
	FragmentClipMask       = "fs_clip_mask"
	FragmentEraserClipMask = "fs_eraser_clip_mask"

	FragmentTexture               = "fs_texture"
	FragmentTextureEraser         = "fs_texture_eraser"
	FragmentTextureClipMask       = "fs_texture_clip_mask"
	FragmentTextureEraserClipMask = "fs_texture_eraser_clip_mask"
)

// FragmentEntryPoint returns the fragment entry point for a variant,
// optionally in its textured form.
func FragmentEntryPoint(variant shade.Variant, textured bool) string {
	if textured {
		switch variant {
		case shade.VariantEraser:
			return FragmentTextureEraser
		case shade.VariantClipMask:
			return FragmentTextureClipMask
		case shade.VariantEraserClipMask:
			return FragmentTextureEraserClipMask
		default:
			return FragmentTexture
		}
	}
	switch variant {
	case shade.VariantEraser:
		return FragmentEraser
	case shade.VariantClipMask:
		return FragmentClipMask
	case shade.VariantEraserClipMask:
		return FragmentEraserClipMask
	default:
		return FragmentPlain
	}
}

// UniformsSize is the byte size of the Uniforms block: two mat4x4<f32>.
const UniformsSize = 128

// Uniforms mirrors the Uniforms struct in brush.wgsl. Both matrices
// use the row-vector convention of shade.Mat4.
type Uniforms struct {
	// Transform maps vertex positions to clip space.
	Transform shade.Mat4

	// TextureTransform remaps brush texture coordinates. Use
	// shade.Identity() for untextured or untiled draws.
	TextureTransform shade.Mat4
}

// Encode serializes the uniforms into the little-endian layout of the
// WGSL uniform block, suitable for queue.WriteBuffer.
func (u *Uniforms) Encode() []byte {
	buf := make([]byte, UniformsSize)
	for i, v := range u.Transform {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range u.TextureTransform {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}

// brushVertexLayout returns the vertex buffer layout for the brush
// pipeline. Matches VertexInput in brush.wgsl and the wire layout of
// shade.EncodeVertices:
//
//	location 0: position (vec2<f32>)
//	location 1: tex_coord (vec2<f32>)
//	location 2: color (4 x uint8, normalized in the shader)
func brushVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: shade.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: shade.VertexOffsetPosition, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: shade.VertexOffsetTexCoord, ShaderLocation: 1},
				{Format: gputypes.VertexFormatUint8x4, Offset: shade.VertexOffsetColor, ShaderLocation: 2},
			},
		},
	}
}
