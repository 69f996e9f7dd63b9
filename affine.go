package pixmap

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transformation stored as the first two rows of a
// 3x3 matrix, in the same layout as f64.Aff3:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
type Affine f64.Aff3

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{1, 0, 0, 0, 1, 0}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{1, 0, tx, 0, 1, ty}
}

// Scale returns a scaling by (sx, sy) around the origin.
func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, 0, sy, 0}
}

// Rotate returns a rotation by angle radians around the origin.
// With y pointing down, positive angles rotate clockwise on screen.
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{cos, -sin, 0, sin, cos, 0}
}

// Multiply returns a*b: the result applies b first, then a.
func (a Affine) Multiply(b Affine) Affine {
	return Affine{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Invert returns the inverse transformation, or false if a is singular.
func (a Affine) Invert() (Affine, bool) {
	det := a[0]*a[4] - a[1]*a[3]
	if math.Abs(det) < 1e-12 {
		return Affine{}, false
	}
	inv := 1 / det
	return Affine{
		a[4] * inv,
		-a[1] * inv,
		(a[1]*a[5] - a[2]*a[4]) * inv,
		-a[3] * inv,
		a[0] * inv,
		(a[2]*a[3] - a[0]*a[5]) * inv,
	}, true
}

// Transform applies the transformation to (x, y).
func (a Affine) Transform(x, y float64) (float64, float64) {
	return a[0]*x + a[1]*y + a[2], a[3]*x + a[4]*y + a[5]
}
