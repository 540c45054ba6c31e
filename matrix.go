package shade

import "math"

// Affine represents the 2D affine transformation a host canvas
// produces. It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Only the constructors needed to build shading transforms are
// provided; hosts with a richer transform type can convert through
// the six coefficients directly. The vertex stage consumes the 4x4
// form returned by Mat4.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// IdentityAffine returns the identity affine transformation.
func IdentityAffine() Affine {
	return Affine{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation transform.
func Translate(x, y float64) Affine {
	return Affine{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling transform.
func Scale(x, y float64) Affine {
	return Affine{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation transform (angle in radians).
func Rotate(angle float64) Affine {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Affine{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply multiplies two affine transforms (m * other).
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Mat4 returns the 4x4 row-vector form of the transform, suitable for
// the vertex stage. Translation ends up in the fourth row so that
// (x, y, 0, 1) * M applies it.
func (m Affine) Mat4() Mat4 {
	var out Mat4
	out[0] = float32(m.A)
	out[1] = float32(m.D)
	out[4] = float32(m.B)
	out[5] = float32(m.E)
	out[10] = 1
	out[12] = float32(m.C)
	out[13] = float32(m.F)
	out[15] = 1
	return out
}

// Mat4 is a 4x4 transform matrix in row-major order, applied to row
// vectors by right-multiplication: v' = v * M. This is the convention
// the vertex stage and the WGSL shader share; element (row, col) is
// at index row*4+col.
type Mat4 [16]float32

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two matrices (m * other), so that transforming by the
// product equals transforming by m first and other second:
// v * (m.Mul(other)) == (v * m) * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// TransformVec4 applies the transform to a row vector: v * m.
func (m Mat4) TransformVec4(v [4]float32) [4]float32 {
	var out [4]float32
	for col := 0; col < 4; col++ {
		out[col] = v[0]*m[col] + v[1]*m[4+col] + v[2]*m[8+col] + v[3]*m[12+col]
	}
	return out
}

// TransformPoint applies the transform to a 2D point as the vertex
// stage does: the homogeneous form (x, y, 0, 1) right-multiplied by m.
func (m Mat4) TransformPoint(x, y float32) [4]float32 {
	return m.TransformVec4([4]float32{x, y, 0, 1})
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity()
}
