package core

// Point3 is a position in world space. Points and vectors share a layout
// but not an algebra: a point plus a vector is a point, and the difference
// of two points is a vector. Use Vec and Point3(v) to convert explicitly.
type Point3 Vec3

// NewPoint3 creates a new Point3
func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Add translates the point by a vector
func (p Point3) Add(offset Vec3) Point3 {
	return Point3{p.X + offset.X, p.Y + offset.Y, p.Z + offset.Z}
}

// Subtract returns the vector from other to p
func (p Point3) Subtract(other Point3) Vec3 {
	return Vec3{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// Distance returns the euclidean distance between two points
func (p Point3) Distance(other Point3) float64 {
	return p.Subtract(other).Length()
}

// Vec returns the position vector of the point (its offset from the origin)
func (p Point3) Vec() Vec3 {
	return Vec3(p)
}
