package shade

import (
	"fmt"
	"image"
)

// Variant selects which fragment stage shades a draw call.
//
// The eraser and clip mask are applied in a fixed order: the combined
// variant erases first and clips the already-erased color.
type Variant uint8

const (
	// VariantPlain passes the interpolated color through unchanged.
	VariantPlain Variant = iota

	// VariantEraser attenuates the color by the eraser texture.
	VariantEraser

	// VariantClipMask multiplies the color by the clip mask texture.
	VariantClipMask

	// VariantEraserClipMask applies the eraser first, then the clip mask.
	VariantEraserClipMask
)

// String returns a human-readable name for the variant.
func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantEraser:
		return "eraser"
	case VariantClipMask:
		return "clip_mask"
	case VariantEraserClipMask:
		return "eraser_clip_mask"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(v))
	}
}

// UsesEraser returns true if the variant reads the eraser texture.
func (v Variant) UsesEraser() bool {
	return v == VariantEraser || v == VariantEraserClipMask
}

// UsesClipMask returns true if the variant reads the clip mask texture.
func (v Variant) UsesClipMask() bool {
	return v == VariantClipMask || v == VariantEraserClipMask
}

// Variants lists all fragment stage variants, for pipeline setup and tests.
func Variants() []Variant {
	return []Variant{VariantPlain, VariantEraser, VariantClipMask, VariantEraserClipMask}
}

// FragmentInput is the interpolated vertex output a single fragment
// invocation receives from the rasterizer.
type FragmentInput struct {
	// Color is the interpolated normalized color.
	Color [4]float32

	// TexCoord is the interpolated brush texture coordinate.
	TexCoord [2]float32

	// PaperCoord is the interpolated paper-space coordinate used to
	// sample the eraser and clip mask textures.
	PaperCoord [2]float32
}

// ApplyEraser attenuates a color by the eraser texture resolved at the
// paper coordinate: every channel is scaled by 1-eraseValue, so a
// fully erased texel (value 1) yields transparent black and an
// untouched texel (value 0) leaves the color unchanged. Colors are
// premultiplied, so scaling all channels keeps them consistent.
//
// A nil eraser texture is treated as untouched paper.
func ApplyEraser(color [4]float32, paper [2]float32, eraser *MaskTexture) [4]float32 {
	if eraser == nil {
		return color
	}
	return scaleColor(color, 1-eraser.ResolvePaper(paper))
}

// ApplyClipMask multiplies a color by the clip mask texture resolved
// at the paper coordinate: texels outside the clipped region (value 0)
// discard the color, texels inside (value 1) keep it.
//
// A nil clip mask texture is treated as fully inside the region.
func ApplyClipMask(color [4]float32, paper [2]float32, clip *MaskTexture) [4]float32 {
	if clip == nil {
		return color
	}
	return scaleColor(color, clip.ResolvePaper(paper))
}

// Shade runs the fragment stage for one fragment. Mask textures the
// variant does not use may be nil; nil textures for used stages make
// that stage an identity.
func (v Variant) Shade(frag FragmentInput, eraser, clip *MaskTexture) [4]float32 {
	color := frag.Color
	if v.UsesEraser() {
		color = ApplyEraser(color, frag.PaperCoord, eraser)
	}
	if v.UsesClipMask() {
		color = ApplyClipMask(color, frag.PaperCoord, clip)
	}
	return color
}

// ApplyBrushTexture samples a brush texture at the interpolated
// texture coordinate (nearest texel, coordinate in [0,1]^2) and
// modulates it by the interpolated color. This is the textured
// counterpart of the plain variant; eraser and clip masking compose
// with it the same way they compose with a plain color.
func ApplyBrushTexture(color [4]float32, coord [2]float32, brush image.Image) [4]float32 {
	if brush == nil {
		return color
	}
	b := brush.Bounds()
	x := b.Min.X + clampTexel(int(coord[0]*float32(b.Dx())), b.Dx())
	y := b.Min.Y + clampTexel(int(coord[1]*float32(b.Dy())), b.Dy())
	texel := PackColor(brush.At(x, y)).Normalize()
	return [4]float32{
		texel[0] * color[0],
		texel[1] * color[1],
		texel[2] * color[2],
		texel[3] * color[3],
	}
}

// scaleColor scales all four channels by a factor.
func scaleColor(c [4]float32, f float32) [4]float32 {
	return [4]float32{c[0] * f, c[1] * f, c[2] * f, c[3] * f}
}
