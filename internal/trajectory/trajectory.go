package trajectory

import "math"

// Point is a 2D coordinate, serialized as [x, y].
type Point [2]float64

// Curve is a cubic Bézier.
type Curve struct {
	P0, P1, P2, P3 Point
}

// ForMisconception builds the governance curve. Higher misconception bows
// the control points into a wider detour; the endpoints never move.
func ForMisconception(m float64) Curve {
	return Curve{
		P0: Point{0, 0},
		P1: Point{0.1 + 0.4*m, 0.5 + 0.8*m},
		P2: Point{0.9 - 0.4*m, 0.5 - 0.2*m},
		P3: Point{1, 1},
	}
}

// Evaluate returns the curve point at parameter t.
func (c Curve) Evaluate(t float64) Point {
	u := 1 - t
	w0 := u * u * u
	w1 := 3 * u * u * t
	w2 := 3 * u * t * t
	w3 := t * t * t
	return Point{
		w0*c.P0[0] + w1*c.P1[0] + w2*c.P2[0] + w3*c.P3[0],
		w0*c.P0[1] + w1*c.P1[1] + w2*c.P2[1] + w3*c.P3[1],
	}
}

// Sample returns n+1 points at evenly spaced parameters from 0 to 1.
// n < 1 is treated as 1.
func (c Curve) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, c.Evaluate(float64(i)/float64(n)))
	}
	return pts
}

// CheckClosure reports whether Evaluate(1) lands on P3 within tol.
// A false result means Evaluate is broken.
func (c Curve) CheckClosure(tol float64) bool {
	end := c.Evaluate(1)
	return math.Abs(end[0]-c.P3[0]) <= tol && math.Abs(end[1]-c.P3[1]) <= tol
}
