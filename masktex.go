package shade

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// MaskTexture is a CPU-side multisampled single-channel texture, the
// reference counterpart of the GPU eraser and clip mask textures. Each
// texel stores Samples independent coverage values in [0, 1]; the
// fragment stage resolves them by averaging, the way a multisample
// read loop does on the GPU.
//
// MaskTexture is read-only during shading; the host fills it when
// generating mask content.
type MaskTexture struct {
	width   int
	height  int
	samples int
	data    []float32
}

// NewMaskTexture creates an empty mask texture with the given
// dimensions and sample count. All values are initialized to 0.
// A sample count below 1 is treated as 1.
func NewMaskTexture(width, height, samples int) *MaskTexture {
	if samples < 1 {
		samples = 1
	}
	return &MaskTexture{
		width:   width,
		height:  height,
		samples: samples,
		data:    make([]float32, width*height*samples),
	}
}

// NewMaskTextureFromAlpha creates a mask texture from an image's alpha
// channel. Every sample of a texel receives the same value.
func NewMaskTextureFromAlpha(img image.Image, samples int) *MaskTexture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	m := NewMaskTexture(w, h, samples)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// a is 0-65535.
			v := float32(a) / 65535.0
			for s := 0; s < m.samples; s++ {
				m.data[(y*w+x)*m.samples+s] = v
			}
		}
	}

	return m
}

// NewMaskTextureFromImage resamples an arbitrarily sized image to the
// given mask dimensions (bilinear) and builds a mask texture from the
// result's alpha channel.
func NewMaskTextureFromImage(img image.Image, width, height, samples int) *MaskTexture {
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		scaled := image.NewNRGBA(image.Rect(0, 0, width, height))
		xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)
		img = scaled
	}
	return NewMaskTextureFromAlpha(img, samples)
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *MaskTexture) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width in texels.
func (m *MaskTexture) Width() int { return m.width }

// Height returns the mask height in texels.
func (m *MaskTexture) Height() int { return m.height }

// Samples returns the number of samples per texel.
func (m *MaskTexture) Samples() int { return m.samples }

// SampleAt returns sample s of the texel at (x, y).
// Returns 0 for coordinates or sample indices outside the texture.
func (m *MaskTexture) SampleAt(x, y, s int) float32 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height || s < 0 || s >= m.samples {
		return 0
	}
	return m.data[(y*m.width+x)*m.samples+s]
}

// SetSample sets sample s of the texel at (x, y).
// Coordinates or sample indices outside the texture are ignored.
func (m *MaskTexture) SetSample(x, y, s int, value float32) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height || s < 0 || s >= m.samples {
		return
	}
	m.data[(y*m.width+x)*m.samples+s] = value
}

// SetTexel sets every sample of the texel at (x, y) to the same value.
func (m *MaskTexture) SetTexel(x, y int, value float32) {
	for s := 0; s < m.samples; s++ {
		m.SetSample(x, y, s, value)
	}
}

// Fill sets every sample of every texel to the given value.
func (m *MaskTexture) Fill(value float32) {
	for i := range m.data {
		m.data[i] = value
	}
}

// Resolve averages all samples of the texel at (x, y).
// Returns 0 for coordinates outside the texture.
func (m *MaskTexture) Resolve(x, y int) float32 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	base := (y*m.width + x) * m.samples
	var total float32
	for s := 0; s < m.samples; s++ {
		total += m.data[base+s]
	}
	return total / float32(m.samples)
}

// ResolvePaper resolves the texel covering a paper-space coordinate.
// The coordinate is scaled to texel space and truncated (nearest-texel
// fetch, not a filtered sample), then clamped to the texture bounds.
func (m *MaskTexture) ResolvePaper(paper [2]float32) float32 {
	x := clampTexel(int(paper[0]*float32(m.width)), m.width)
	y := clampTexel(int(paper[1]*float32(m.height)), m.height)
	return m.Resolve(x, y)
}

// clampTexel clamps a texel index to [0, extent-1].
func clampTexel(v, extent int) int {
	if v < 0 {
		return 0
	}
	if v >= extent {
		return extent - 1
	}
	return v
}
