package primitives

import "fmt"

// Point is a grid coordinate. X is the column and Y the row, growing downward.
type Point struct {
	X, Y int
}

// Add returns the point offset by other.
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Delta returns the difference between p and other, so other.Add(p.Delta(other)) == p.
func (p Point) Delta(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Scale multiplies both axes by n.
func (p Point) Scale(n int) Point {
	return Point{p.X * n, p.Y * n}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
