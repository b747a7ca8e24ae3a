package sprig

import "math"

// Mat4 is a 4x4 float32 matrix in row-major order. Points are column vectors,
// so a.Mul(b) applies b first, then a.
//
//	| m0  m1  m2  m3  |
//	| m4  m5  m6  m7  |
//	| m8  m9  m10 m11 |
//	| m12 m13 m14 m15 |
type Mat4 [16]float32

// invertEpsilon is the determinant magnitude below which a matrix is treated
// as singular.
const invertEpsilon = 1e-12

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[row*4+col] = m[row*4]*o[col] +
				m[row*4+1]*o[4+col] +
				m[row*4+2]*o[8+col] +
				m[row*4+3]*o[12+col]
		}
	}
	return r
}

// TransformPoint applies m to the point (x, y, 0, 1) and returns the
// resulting x and y.
func (m Mat4) TransformPoint(x, y float32) (float32, float32) {
	return m[0]*x + m[1]*y + m[3], m[4]*x + m[5]*y + m[7]
}

// Invert returns the inverse of m. The second result is false when m is
// singular or contains non-finite values; the returned matrix is then the
// identity and must not be used.
func (m Mat4) Invert() (Mat4, bool) {
	var a [16]float64
	for i, v := range m {
		a[i] = float64(v)
	}

	var inv [16]float64
	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] + a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] - a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] + a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] - a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]
	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] - a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] + a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] - a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] + a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]
	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] + a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] - a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] + a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] - a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]
	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] - a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] + a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] - a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] + a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	det := a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12]
	if math.IsNaN(det) || math.IsInf(det, 0) || math.Abs(det) < invertEpsilon {
		return Identity(), false
	}

	invDet := 1.0 / det
	var r Mat4
	for i := range inv {
		v := inv[i] * invDet
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Identity(), false
		}
		r[i] = float32(v)
	}
	return r, true
}

// MaxAbs returns the largest absolute component of m (the infinity norm
// used for convergence checks).
func (m Mat4) MaxAbs() float32 {
	var max float32
	for _, v := range m {
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}

// MaxAbsDiff returns the largest absolute component of m - o.
func (m Mat4) MaxAbsDiff(o Mat4) float32 {
	var max float32
	for i := range m {
		d := m[i] - o[i]
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}

// IsZero reports whether every component of m is zero. Layouts skipped for
// degenerate geometry upload a zero matrix.
func (m Mat4) IsZero() bool {
	return m == Mat4{}
}

// Translation returns the x and y translation components.
func (m Mat4) Translation() (float32, float32) {
	return m[3], m[7]
}

// axisTranslate returns a translation of v along a single axis (0 = x, 1 = y).
func axisTranslate(axis int, v float32) Mat4 {
	if axis == 0 {
		return Translate(v, 0, 0)
	}
	return Translate(0, v, 0)
}

// axisScale returns a scale of s along a single axis (0 = x, 1 = y).
func axisScale(axis int, s float32) Mat4 {
	if axis == 0 {
		return Scale(s, 1, 1)
	}
	return Scale(1, s, 1)
}
