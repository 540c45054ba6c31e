package shade

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestEncodeVertices(t *testing.T) {
	verts := []Vertex{
		{
			Pos:      [2]float32{1.5, -2},
			TexCoord: [2]float32{0.25, 0.75},
			Color:    PackedColor{R: 10, G: 20, B: 30, A: 40},
		},
		{
			Pos:   [2]float32{0, 0},
			Color: PackedColor{R: 255, G: 255, B: 255, A: 255},
		},
	}

	buf := EncodeVertices(verts)
	if len(buf) != 2*VertexStride {
		t.Fatalf("EncodeVertices() length = %d, want %d", len(buf), 2*VertexStride)
	}

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}

	if got := readF32(VertexOffsetPosition); got != 1.5 {
		t.Errorf("pos.x = %v, want 1.5", got)
	}
	if got := readF32(VertexOffsetPosition + 4); got != -2 {
		t.Errorf("pos.y = %v, want -2", got)
	}
	if got := readF32(VertexOffsetTexCoord); got != 0.25 {
		t.Errorf("tex.u = %v, want 0.25", got)
	}
	if got := readF32(VertexOffsetTexCoord + 4); got != 0.75 {
		t.Errorf("tex.v = %v, want 0.75", got)
	}
	if buf[VertexOffsetColor] != 10 || buf[VertexOffsetColor+1] != 20 ||
		buf[VertexOffsetColor+2] != 30 || buf[VertexOffsetColor+3] != 40 {
		t.Errorf("color bytes = %v, want [10 20 30 40]", buf[VertexOffsetColor:VertexOffsetColor+4])
	}

	// Second vertex starts at the stride boundary.
	second := buf[VertexStride:]
	if second[VertexOffsetColor] != 255 {
		t.Errorf("second vertex color.R = %d, want 255", second[VertexOffsetColor])
	}
}

func TestEncodeVerticesEmpty(t *testing.T) {
	if got := EncodeVertices(nil); len(got) != 0 {
		t.Errorf("EncodeVertices(nil) length = %d, want 0", len(got))
	}
}

func TestVertexOffsets(t *testing.T) {
	// The attribute offsets must tile the stride without gaps.
	if VertexOffsetTexCoord != VertexOffsetPosition+8 {
		t.Errorf("tex coord offset = %d, want %d", VertexOffsetTexCoord, VertexOffsetPosition+8)
	}
	if VertexOffsetColor != VertexOffsetTexCoord+8 {
		t.Errorf("color offset = %d, want %d", VertexOffsetColor, VertexOffsetTexCoord+8)
	}
	if VertexStride != VertexOffsetColor+4 {
		t.Errorf("stride = %d, want %d", VertexStride, VertexOffsetColor+4)
	}
}
