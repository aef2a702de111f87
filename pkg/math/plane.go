package math

// NormalizePlane scales a plane equation so its normal has unit length.
// A plane with a zero normal is returned unchanged.
func NormalizePlane(p Vec4) Vec4 {
	l := p.XYZ().Length()
	if l == 0 {
		return p
	}
	return p.Scale(1 / l)
}

// PlaneDistance returns the signed distance of point from the plane.
// The plane must be normalized for the result to be in world units.
func PlaneDistance(p Vec4, point Vec3) float32 {
	return p.Dot(point.Vec4(1))
}

// TransformPlane maps a plane through the same transform that maps points by m.
// Planes are covariant, so the inverse-transpose of m is applied.
func TransformPlane(p Vec4, m Mat4) Vec4 {
	return m.Inverse().Transpose().MulVec4(p)
}

// Reflection returns the matrix that mirrors points across plane p.
// p is normalized first; reflecting twice yields the identity.
func Reflection(p Vec4) Mat4 {
	p = NormalizePlane(p)
	a, b, c, d := p[0], p[1], p[2], p[3]

	return Mat4{
		1 - 2*a*a, -2 * a * b, -2 * a * c, 0,
		-2 * a * b, 1 - 2*b*b, -2 * b * c, 0,
		-2 * a * c, -2 * b * c, 1 - 2*c*c, 0,
		-2 * a * d, -2 * b * d, -2 * c * d, 1,
	}
}
