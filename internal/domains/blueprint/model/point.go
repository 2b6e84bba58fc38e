package model

// Point is an immutable 2D integer coordinate. Equality is by value.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPoint builds a point from its coordinates
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}
