package shade

// VertexOutput is what the vertex stage hands to the rasterizer for
// interpolation: the clip-space position used for primitive assembly,
// plus the per-vertex attributes interpolated across the triangle.
type VertexOutput struct {
	// Position is the clip-space position (x, y, z, w).
	Position [4]float32

	// Color is the normalized vertex color, each channel in [0, 1].
	Color [4]float32

	// TexCoord is the brush texture coordinate.
	TexCoord [2]float32

	// PaperCoord is the paper-space coordinate derived from Position,
	// in [0, 1]^2 with a top-left origin.
	PaperCoord [2]float32
}

// PaperCoord maps a clip-space position to paper space: [-1,1] to
// [0,1] on both axes, with the vertical axis flipped so that paper
// (0,0) is the top-left corner of the canvas.
func PaperCoord(clipX, clipY float32) [2]float32 {
	return [2]float32{
		(clipX + 1) * 0.5,
		1 - (clipY+1)*0.5,
	}
}

// TransformVertex runs the vertex stage for a single vertex:
// normalize the packed color, lift the position to homogeneous form
// (x, y, 0, 1) and right-multiply by the transform, then derive the
// paper-space coordinate from the resulting clip position. The texture
// coordinate passes through unchanged.
//
// Pure per-invocation computation; no error conditions.
func TransformVertex(transform Mat4, v Vertex) VertexOutput {
	pos := transform.TransformPoint(v.Pos[0], v.Pos[1])
	return VertexOutput{
		Position:   pos,
		Color:      v.Color.Normalize(),
		TexCoord:   v.TexCoord,
		PaperCoord: PaperCoord(pos[0], pos[1]),
	}
}

// TransformVertexUV is TransformVertex for textured brushes: the
// texture coordinate is additionally mapped through a texture
// transform matrix, the way the host remaps brush texture tiles.
// An identity uvTransform makes this equivalent to TransformVertex.
func TransformVertexUV(transform, uvTransform Mat4, v Vertex) VertexOutput {
	out := TransformVertex(transform, v)
	uv := uvTransform.TransformVec4([4]float32{v.TexCoord[0], v.TexCoord[1], 0, 1})
	out.TexCoord = [2]float32{uv[0], uv[1]}
	return out
}
