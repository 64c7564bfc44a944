package frame

import "gonum.org/v1/gonum/spatial/r3"

// ProjectOnPlaneX drops the X component of v.
func ProjectOnPlaneX(v r3.Vec) r3.Vec { return r3.Vec{Y: v.Y, Z: v.Z} }

// ProjectOnPlaneY drops the Y component of v.
func ProjectOnPlaneY(v r3.Vec) r3.Vec { return r3.Vec{X: v.X, Z: v.Z} }

// ProjectOnPlaneZ drops the Z component of v.
func ProjectOnPlaneZ(v r3.Vec) r3.Vec { return r3.Vec{X: v.X, Y: v.Y} }

// Project projects v onto the line spanned by the unit vector n.
func Project(v, n r3.Vec) r3.Vec {
	return r3.Scale(r3.Dot(v, n), n)
}

// ProjectOnPlane projects v onto the plane with unit normal n.
func ProjectOnPlane(v, n r3.Vec) r3.Vec {
	return r3.Sub(v, Project(v, n))
}

// CrossRight returns v × (1, 0, 0).
func CrossRight(v r3.Vec) r3.Vec { return r3.Vec{Y: v.Z, Z: -v.Y} }

// CrossUp returns v × (0, 1, 0).
func CrossUp(v r3.Vec) r3.Vec { return r3.Vec{X: -v.Z, Z: v.X} }

// CrossForward returns v × (0, 0, 1).
func CrossForward(v r3.Vec) r3.Vec { return r3.Vec{X: v.Y, Y: -v.X} }

// GroundIntersection returns where the line through point along dir meets
// the y = 0 plane. It reports false when dir is parallel to the ground.
func GroundIntersection(point, dir r3.Vec) (r3.Vec, bool) {
	if dir.Y == 0 {
		return r3.Vec{}, false
	}
	t := -point.Y / dir.Y
	return r3.Add(point, r3.Scale(t, dir)), true
}

// PlaneIntersection returns where the line through point along dir meets
// the plane through planeOrigin with normal planeNormal. It reports false
// when the line is parallel to the plane.
func PlaneIntersection(point, dir, planeOrigin, planeNormal r3.Vec) (r3.Vec, bool) {
	denom := r3.Dot(planeNormal, dir)
	if denom == 0 {
		return r3.Vec{}, false
	}
	t := (r3.Dot(planeNormal, planeOrigin) - r3.Dot(planeNormal, point)) / denom
	return r3.Add(point, r3.Scale(t, dir)), true
}
