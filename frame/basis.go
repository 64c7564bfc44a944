// Package frame converts points between world space and arbitrary affine
// coordinate frames.
package frame

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrSingularBasis is returned when the basis vectors are linearly dependent.
	ErrSingularBasis = errors.New("frame: singular basis")
	// ErrInvalidAxis is returned for axis indices outside 0, 1 and 2.
	ErrInvalidAxis = errors.New("frame: invalid axis")
)

// singularTolerance is the smallest accepted |det| relative to the product
// of the basis vector lengths.
const singularTolerance = 1e-12

// Basis is a 3D affine frame. Its axes may be scaled independently and need
// not be orthogonal. The zero Basis is the identity frame.
//
// A Basis is not safe for concurrent use.
type Basis struct {
	localization  *mat.Dense // world -> local
	globalization *mat.Dense // local -> world, always the inverse of localization
}

// New returns a basis set up from the given axes and origin.
func New(b0, b1, b2, origin r3.Vec) (*Basis, error) {
	b := &Basis{}
	if err := b.Setup(b0, b1, b2, origin); err != nil {
		return nil, err
	}
	return b, nil
}

// Identity returns the world frame.
func Identity() *Basis {
	b, _ := New(r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}, r3.Vec{})
	return b
}

// Setup rebuilds the frame from three axes and an origin, all in world
// space. On error the previous frame is left unchanged. Axes with very
// different lengths are accepted as long as they are independent; only the
// relative determinant decides singularity.
func (b *Basis) Setup(b0, b1, b2, origin r3.Vec) error {
	loc, err := localizationMatrix(b0, b1, b2, origin)
	if err != nil {
		return err
	}

	var glob mat.Dense
	if err := glob.Inverse(loc); err != nil {
		// A finite condition number is only a precision warning; the
		// inverse has been computed.
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 0) {
			return fmt.Errorf("%w: %w", ErrSingularBasis, err)
		}
	}

	b.localization, b.globalization = loc, &glob
	return nil
}

// SetupFromFrame builds the frame from unit direction vectors scaled per
// axis, the way a transform with a local scale describes its space.
func (b *Basis) SetupFromFrame(right, up, forward, scale, position r3.Vec) error {
	return b.Setup(
		r3.Scale(scale.X, right),
		r3.Scale(scale.Y, up),
		r3.Scale(scale.Z, forward),
		position,
	)
}

// Localize converts a world position to frame coordinates.
func (b *Basis) Localize(p r3.Vec) r3.Vec {
	if b.localization == nil {
		return p
	}
	return transformPoint(b.localization, p)
}

// Globalize converts a position in frame coordinates to world space.
func (b *Basis) Globalize(p r3.Vec) r3.Vec {
	if b.globalization == nil {
		return p
	}
	return transformPoint(b.globalization, p)
}

// Origin returns the world position of the frame origin.
func (b *Basis) Origin() r3.Vec {
	if b.globalization == nil {
		return r3.Vec{}
	}
	g := b.globalization
	return r3.Vec{X: g.At(0, 3), Y: g.At(1, 3), Z: g.At(2, 3)}
}

// Axis returns the world direction of the frame's local right (0), up (1)
// or forward (2) axis, including its scale.
func (b *Basis) Axis(index int) (r3.Vec, error) {
	if index < 0 || index > 2 {
		return r3.Vec{}, fmt.Errorf("axis %d: %w", index, ErrInvalidAxis)
	}
	if b.globalization == nil {
		var unit [3]float64
		unit[index] = 1
		return r3.Vec{X: unit[0], Y: unit[1], Z: unit[2]}, nil
	}
	return column(b.globalization, index), nil
}

// Scale returns the length of each axis. A mirrored frame reports a
// negative X scale.
func (b *Basis) Scale() r3.Vec {
	if b.globalization == nil {
		return r3.Vec{X: 1, Y: 1, Z: 1}
	}
	c0, c1, c2 := column(b.globalization, 0), column(b.globalization, 1), column(b.globalization, 2)
	s := r3.Vec{X: r3.Norm(c0), Y: r3.Norm(c1), Z: r3.Norm(c2)}
	if r3.Dot(c0, r3.Cross(c1, c2)) < 0 {
		s.X = -s.X
	}
	return s
}

// Rotation returns the orientation of the frame. The forward axis is kept
// exactly and up is used as the secondary hint, so skew and scale are
// discarded.
func (b *Basis) Rotation() r3.Rotation {
	if b.globalization == nil {
		return r3.Rotation{Real: 1}
	}
	up := column(b.globalization, 1)
	z := r3.Unit(column(b.globalization, 2))
	x := r3.Unit(r3.Cross(up, z))
	y := r3.Cross(z, x)
	return quatFromColumns(x, y, z)
}

// localizationMatrix builds the world->local transform from the reciprocal
// basis: row i dotted with axis j is 1 when i == j and 0 otherwise.
func localizationMatrix(b0, b1, b2, origin r3.Vec) (*mat.Dense, error) {
	det := r3.Dot(b0, r3.Cross(b1, b2))
	size := r3.Norm(b0) * r3.Norm(b1) * r3.Norm(b2)
	if size == 0 || math.IsNaN(det) || math.IsInf(det, 0) || math.Abs(det) <= singularTolerance*size {
		return nil, fmt.Errorf("determinant %g: %w", det, ErrSingularBasis)
	}

	r0 := r3.Scale(1/det, r3.Cross(b1, b2))
	r1 := r3.Scale(1/det, r3.Cross(b2, b0))
	r2 := r3.Scale(1/det, r3.Cross(b0, b1))

	return mat.NewDense(4, 4, []float64{
		r0.X, r0.Y, r0.Z, -r3.Dot(r0, origin),
		r1.X, r1.Y, r1.Z, -r3.Dot(r1, origin),
		r2.X, r2.Y, r2.Z, -r3.Dot(r2, origin),
		0, 0, 0, 1,
	}), nil
}

// transformPoint applies the affine part of m to p (w = 1).
func transformPoint(m *mat.Dense, p r3.Vec) r3.Vec {
	return r3.Vec{
		X: m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z + m.At(0, 3),
		Y: m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z + m.At(1, 3),
		Z: m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z + m.At(2, 3),
	}
}

func column(m *mat.Dense, j int) r3.Vec {
	return r3.Vec{X: m.At(0, j), Y: m.At(1, j), Z: m.At(2, j)}
}

// quatFromColumns converts the orthonormal matrix [x y z] to a quaternion.
func quatFromColumns(x, y, z r3.Vec) r3.Rotation {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	var q r3.Rotation
	switch tr := m00 + m11 + m22; {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q.Real = 0.25 * s
		q.Imag = (m21 - m12) / s
		q.Jmag = (m02 - m20) / s
		q.Kmag = (m10 - m01) / s
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q.Real = (m21 - m12) / s
		q.Imag = 0.25 * s
		q.Jmag = (m01 + m10) / s
		q.Kmag = (m02 + m20) / s
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q.Real = (m02 - m20) / s
		q.Imag = (m01 + m10) / s
		q.Jmag = 0.25 * s
		q.Kmag = (m12 + m21) / s
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q.Real = (m10 - m01) / s
		q.Imag = (m02 + m20) / s
		q.Jmag = (m12 + m21) / s
		q.Kmag = 0.25 * s
	}
	return q
}
