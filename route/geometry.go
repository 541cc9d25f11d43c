package route

import "math"

// Point is a position in normalized device space, both axes in [-1, 1].
type Point struct {
	X, Y float32
}

func NewPoint(x, y float32) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Length() float32 {
	return float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y)))
}

// Lerp returns a + (b-a)*t. t is not clamped.
func Lerp(a, b Point, t float32) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// QuadraticBezier evaluates the curve through p0 and p2 pulled toward p1.
func QuadraticBezier(p0, p1, p2 Point, t float32) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
