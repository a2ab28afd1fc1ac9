package model

import "math"

// Point is a position in the hall, in meters.
// Value type, passed by value (immutable).
type Point struct {
	X float64
	Y float64
	Z float64
}

// NewPoint creates Point with the given coordinates.
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y, Z: p.Z + other.Z}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y, Z: p.Z - other.Z}
}

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k, Z: p.Z * k}
}

// Len returns vector length.
func (p Point) Len() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Normalize returns unit vector with the same direction.
// Vectors shorter than 0.1 have no usable direction and are returned as zero.
func (p Point) Normalize() Point {
	l := p.Len()
	if l < 0.1 {
		return Point{}
	}
	return p.Scale(1 / l)
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt).
func (p Point) DistanceSquared(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns euclidean distance to other point.
func (p Point) Distance(other Point) float64 {
	return math.Sqrt(p.DistanceSquared(other))
}

// IsZero reports whether the point is the origin.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}
