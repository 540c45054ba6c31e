package shade

import (
	"encoding/binary"
	"math"
)

// VertexStride is the byte stride per vertex in the brush vertex
// buffer. Layout per vertex:
//
//	position  (vec2<f32>)  =  8 bytes (location 0)
//	tex coord (vec2<f32>)  =  8 bytes (location 1)
//	color     (4 x uint8)  =  4 bytes (location 2)
//
// Total = 20 bytes per vertex.
const VertexStride = 20

// Byte offsets of the vertex attributes within a vertex record.
const (
	VertexOffsetPosition = 0
	VertexOffsetTexCoord = 8
	VertexOffsetColor    = 16
)

// Vertex is one brush vertex as supplied by the host per draw call.
// Position is in the host's canvas space (the transform matrix maps it
// to clip space); the color is packed RGBA bytes.
type Vertex struct {
	Pos      [2]float32
	TexCoord [2]float32
	Color    PackedColor
}

// EncodeVertices serializes vertices into the little-endian wire layout
// the GPU vertex buffer expects (see VertexStride).
func EncodeVertices(verts []Vertex) []byte {
	buf := make([]byte, len(verts)*VertexStride)
	for i := range verts {
		encodeVertex(buf[i*VertexStride:], &verts[i])
	}
	return buf
}

// encodeVertex writes a single vertex into the buffer.
func encodeVertex(buf []byte, v *Vertex) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Pos[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Pos[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.TexCoord[1]))
	buf[16] = v.Color.R
	buf[17] = v.Color.G
	buf[18] = v.Color.B
	buf[19] = v.Color.A
}
