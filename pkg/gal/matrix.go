package gal

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
	"gonum.org/v1/gonum/mat"
)

// Matrix3x3 is a homogeneous 2D affine transform backed by a gonum matrix.
// Values are never mutated after construction.
type Matrix3x3 struct {
	m *mat.Dense
}

// IdentityMatrix returns the 3x3 identity.
func IdentityMatrix() Matrix3x3 {
	return Matrix3x3{m: mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})}
}

// TranslationMatrix returns a translation by v.
func TranslationMatrix(v geom.Vector2D) Matrix3x3 {
	return Matrix3x3{m: mat.NewDense(3, 3, []float64{
		1, 0, v.X,
		0, 1, v.Y,
		0, 0, 1,
	})}
}

// ScaleMatrix returns an axis-aligned scale by (v.X, v.Y).
func ScaleMatrix(v geom.Vector2D) Matrix3x3 {
	return Matrix3x3{m: mat.NewDense(3, 3, []float64{
		v.X, 0, 0,
		0, v.Y, 0,
		0, 0, 1,
	})}
}

// Mul returns a·b (b is applied first).
func (a Matrix3x3) Mul(b Matrix3x3) Matrix3x3 {
	var r mat.Dense
	r.Mul(a.m, b.m)
	return Matrix3x3{m: &r}
}

// Inverse returns the matrix inverse. Ill-conditioning is tolerated; only a
// singular matrix is an error.
func (a Matrix3x3) Inverse() (Matrix3x3, error) {
	var r mat.Dense
	if err := r.Inverse(a.m); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return Matrix3x3{}, fmt.Errorf("invert transform: %w", err)
		}
	}
	return Matrix3x3{m: &r}, nil
}

// Transform applies the matrix to a point.
func (a Matrix3x3) Transform(v geom.Vector2D) geom.Vector2D {
	m := a.m
	return geom.Vector2D{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2),
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2),
	}
}

// At returns element (i, j).
func (a Matrix3x3) At(i, j int) float64 {
	return a.m.At(i, j)
}

// Dense returns a copy of the underlying gonum matrix.
func (a Matrix3x3) Dense() *mat.Dense {
	return mat.DenseCopyOf(a.m)
}

// IsZero reports whether the matrix has not been computed yet.
func (a Matrix3x3) IsZero() bool {
	return a.m == nil
}
