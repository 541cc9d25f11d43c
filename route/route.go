package route

import "math"

const (
	NUM_STATIONS     = 10
	SUBDIVISIONS     = 30
	DEGENERATE_EPS   = 0.0001
	BASE_CURVATURE   = 0.12
	CURVATURE_SWING  = 0.08
	CURVATURE_PERIOD = 0.7
)

type Station struct {
	Number   int
	Position Point
}

// Segment is the curve from station From to station To, bent through Control.
type Segment struct {
	Index   int
	From    Point
	Control Point
	To      Point
}

// Route is a closed loop of stations. The last station connects back to the first.
type Route struct {
	stations []Station
}

var defaultPositions = [NUM_STATIONS]Point{
	{X: -0.65, Y: 0.55},
	{X: -0.25, Y: 0.65},
	{X: 0.35, Y: 0.60},
	{X: 0.70, Y: 0.25},
	{X: 0.75, Y: -0.15},
	{X: 0.45, Y: -0.55},
	{X: 0.0, Y: -0.65},
	{X: -0.50, Y: -0.50},
	{X: -0.75, Y: -0.10},
	{X: -0.70, Y: 0.20},
}

// Default returns the city loop of ten stations.
func Default() *Route {
	return New(defaultPositions[:])
}

// New builds a loop through positions in order. It panics on an empty table.
func New(positions []Point) *Route {
	if len(positions) == 0 {
		panic("route: no stations")
	}
	stations := make([]Station, len(positions))
	for i, p := range positions {
		stations[i] = Station{Number: i, Position: p}
	}
	return &Route{stations: stations}
}

func (r *Route) Len() int {
	return len(r.stations)
}

// Stations returns a copy of the station table.
func (r *Route) Stations() []Station {
	out := make([]Station, len(r.stations))
	copy(out, r.stations)
	return out
}

func (r *Route) Station(i int) Station {
	return r.stations[r.wrap(i)]
}

func (r *Route) Next(i int) int {
	return r.wrap(i + 1)
}

func (r *Route) wrap(i int) int {
	n := len(r.stations)
	return ((i % n) + n) % n
}

// ControlPoint returns the bend point of segment i. The curve bulges along the
// segment normal by an amount that varies smoothly with i and flips side on
// every third segment. Coincident endpoints give the plain midpoint.
func (r *Route) ControlPoint(i int) Point {
	i = r.wrap(i)
	p0 := r.stations[i].Position
	p2 := r.stations[r.Next(i)].Position

	dir := p2.Sub(p0)
	dist := dir.Length()
	var normal Point
	if dist > DEGENERATE_EPS {
		normal = Point{X: -dir.Y / dist, Y: dir.X / dist}
	}

	curvature := float32(BASE_CURVATURE + CURVATURE_SWING*math.Sin(float64(i)*CURVATURE_PERIOD))
	var curveDir float32 = 1
	if i%3 == 0 {
		curveDir = -1
	}

	return Midpoint(p0, p2).Add(normal.Scale(curvature * curveDir))
}

func (r *Route) Segment(i int) Segment {
	i = r.wrap(i)
	return Segment{
		Index:   i,
		From:    r.stations[i].Position,
		Control: r.ControlPoint(i),
		To:      r.stations[r.Next(i)].Position,
	}
}

func (s Segment) At(t float32) Point {
	return QuadraticBezier(s.From, s.Control, s.To, t)
}

// PointAt places a vehicle at fraction t of segment i.
func (r *Route) PointAt(i int, t float32) Point {
	return r.Segment(i).At(t)
}

// Polyline samples segment i into subdivisions+1 points, both ends included.
func (r *Route) Polyline(i, subdivisions int) []Point {
	if subdivisions < 1 {
		subdivisions = 1
	}
	seg := r.Segment(i)
	points := make([]Point, 0, subdivisions+1)
	for j := 0; j <= subdivisions; j++ {
		t := float32(j) / float32(subdivisions)
		points = append(points, seg.At(t))
	}
	return points
}

// Path samples every segment of the loop with SUBDIVISIONS steps each.
func (r *Route) Path() [][]Point {
	path := make([][]Point, len(r.stations))
	for i := range r.stations {
		path[i] = r.Polyline(i, SUBDIVISIONS)
	}
	return path
}
