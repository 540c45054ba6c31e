package gpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/shade"
)

// TestBrushShaderSourceNonEmpty verifies the shader source is embedded
// correctly.
func TestBrushShaderSourceNonEmpty(t *testing.T) {
	source := GetBrushShaderSource()
	if source == "" {
		t.Fatal("brush shader source is empty")
	}
	if len(source) < 100 {
		t.Errorf("brush shader source suspiciously short: %d bytes", len(source))
	}
}

// TestBrushShaderContainsExpectedContent verifies the shader source
// contains the vertex stage, every fragment entry point, and the mask
// resolve helpers.
func TestBrushShaderContainsExpectedContent(t *testing.T) {
	source := GetBrushShaderSource()
	required := []string{
		"@vertex",
		"@fragment",
		VertexEntryPoint,
		FragmentPlain,
		FragmentEraser,
		FragmentClipMask,
		FragmentEraserClipMask,
		FragmentTexture,
		FragmentTextureEraser,
		FragmentTextureClipMask,
		FragmentTextureEraserClipMask,
		"texture_multisampled_2d<f32>",
		"texture_2d<f32>",
		"textureLoad",
		"textureNumSamples",
		"textureSample",
		"resolve_mask",
		"apply_eraser",
		"apply_clip_mask",
		"paper_coord",
	}
	for _, req := range required {
		if !strings.Contains(source, req) {
			t.Errorf("brush shader missing required element: %q", req)
		}
	}
}

// TestBrushShaderBindings verifies the shader declares the exact group
// and binding numbers the Go constants promise.
func TestBrushShaderBindings(t *testing.T) {
	source := GetBrushShaderSource()
	tests := []struct {
		name    string
		group   int
		binding int
		decl    string
	}{
		{"uniforms", GroupUniforms, BindingUniforms, "var<uniform> uniforms"},
		{"brush texture", GroupTextures, BindingBrushTexture, "var brush_texture"},
		{"eraser texture", GroupTextures, BindingEraserTexture, "var eraser_texture"},
		{"clip mask texture", GroupTextures, BindingClipMaskTexture, "var clip_mask_texture"},
		{"brush sampler", GroupTextures, BindingBrushSampler, "var brush_sampler"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := fmt.Sprintf("@group(%d) @binding(%d) %s", tt.group, tt.binding, tt.decl)
			if !strings.Contains(source, want) {
				t.Errorf("brush shader missing binding declaration %q", want)
			}
		})
	}
}

func TestFragmentEntryPoint(t *testing.T) {
	tests := []struct {
		variant  shade.Variant
		textured bool
		want     string
	}{
		{shade.VariantPlain, false, "fs_plain"},
		{shade.VariantEraser, false, "fs_eraser"},
		{shade.VariantClipMask, false, "fs_clip_mask"},
		{shade.VariantEraserClipMask, false, "fs_eraser_clip_mask"},
		{shade.VariantPlain, true, "fs_texture"},
		{shade.VariantEraser, true, "fs_texture_eraser"},
		{shade.VariantClipMask, true, "fs_texture_clip_mask"},
		{shade.VariantEraserClipMask, true, "fs_texture_eraser_clip_mask"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FragmentEntryPoint(tt.variant, tt.textured)
			if got != tt.want {
				t.Errorf("FragmentEntryPoint(%v, %v) = %q, want %q", tt.variant, tt.textured, got, tt.want)
			}
		})
	}
}

// TestFragmentEntryPointsUnique verifies each variant and texturing
// mode maps to a distinct entry point.
func TestFragmentEntryPointsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, variant := range shade.Variants() {
		for _, textured := range []bool{false, true} {
			ep := FragmentEntryPoint(variant, textured)
			if seen[ep] {
				t.Errorf("entry point %q mapped twice", ep)
			}
			seen[ep] = true
		}
	}
	if len(seen) != 8 {
		t.Errorf("got %d distinct entry points, want 8", len(seen))
	}
}

func TestUniformsEncode(t *testing.T) {
	u := Uniforms{
		Transform:        shade.Translate(3, 4).Mat4(),
		TextureTransform: shade.Identity(),
	}

	buf := u.Encode()
	if len(buf) != UniformsSize {
		t.Fatalf("Encode() length = %d, want %d", len(buf), UniformsSize)
	}

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}

	// Transform occupies the first 64 bytes, element i at offset i*4.
	for i, want := range u.Transform {
		if got := readF32(i * 4); got != want {
			t.Errorf("transform[%d] = %v, want %v", i, got, want)
		}
	}
	// TextureTransform follows at offset 64.
	for i, want := range u.TextureTransform {
		if got := readF32(64 + i*4); got != want {
			t.Errorf("texture_transform[%d] = %v, want %v", i, got, want)
		}
	}
}

// TestBrushVertexLayout verifies the GPU vertex layout matches the
// wire format of shade.EncodeVertices.
func TestBrushVertexLayout(t *testing.T) {
	layouts := brushVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("brushVertexLayout() returned %d buffers, want 1", len(layouts))
	}

	layout := layouts[0]
	if layout.ArrayStride != shade.VertexStride {
		t.Errorf("ArrayStride = %d, want %d", layout.ArrayStride, shade.VertexStride)
	}
	if len(layout.Attributes) != 3 {
		t.Fatalf("got %d attributes, want 3", len(layout.Attributes))
	}

	wantOffsets := []uint64{shade.VertexOffsetPosition, shade.VertexOffsetTexCoord, shade.VertexOffsetColor}
	for i, attr := range layout.Attributes {
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, attr.Offset, wantOffsets[i])
		}
		if attr.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d shader location = %d, want %d", i, attr.ShaderLocation, i)
		}
	}
}

func TestPipelineLabel(t *testing.T) {
	tests := []struct {
		key  PipelineKey
		want string
	}{
		{PipelineKey{Variant: shade.VariantPlain}, "brush_pipeline_plain"},
		{PipelineKey{Variant: shade.VariantEraserClipMask}, "brush_pipeline_eraser_clip_mask"},
		{PipelineKey{Variant: shade.VariantClipMask, Textured: true}, "brush_pipeline_texture_clip_mask"},
	}
	for _, tt := range tests {
		if got := pipelineLabel(tt.key); got != tt.want {
			t.Errorf("pipelineLabel(%+v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// TestTextureLayoutEntries verifies each pipeline key's bind group
// layout contains exactly the bindings its fragment stage reads.
func TestTextureLayoutEntries(t *testing.T) {
	tests := []struct {
		name         string
		key          PipelineKey
		wantBindings []uint32
	}{
		{"plain", PipelineKey{Variant: shade.VariantPlain}, nil},
		{"eraser", PipelineKey{Variant: shade.VariantEraser}, []uint32{BindingEraserTexture}},
		{"clip mask", PipelineKey{Variant: shade.VariantClipMask}, []uint32{BindingClipMaskTexture}},
		{
			"eraser clip mask",
			PipelineKey{Variant: shade.VariantEraserClipMask},
			[]uint32{BindingEraserTexture, BindingClipMaskTexture},
		},
		{
			"textured plain",
			PipelineKey{Variant: shade.VariantPlain, Textured: true},
			[]uint32{BindingBrushTexture, BindingBrushSampler},
		},
		{
			"textured eraser clip mask",
			PipelineKey{Variant: shade.VariantEraserClipMask, Textured: true},
			[]uint32{BindingBrushTexture, BindingBrushSampler, BindingEraserTexture, BindingClipMaskTexture},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := textureLayoutEntries(tt.key)
			if len(entries) != len(tt.wantBindings) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.wantBindings))
			}
			got := map[uint32]bool{}
			for _, e := range entries {
				got[e.Binding] = true
			}
			for _, b := range tt.wantBindings {
				if !got[b] {
					t.Errorf("missing binding %d", b)
				}
			}
		})
	}
}
