// internals/features/epapers/areamaps/service/polygon.go
package service

// Point is one polygon vertex in page-image pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointInPolygon runs the standard ray-casting (even-odd) test.
// A point exactly on an edge has undefined inclusion — inherent to the
// algorithm and deliberately left as-is; the result is deterministic
// for a fixed vertex order.
func PointInPolygon(x, y float64, polygon []Point) bool {
	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		intersect := (yi > y) != (yj > y) &&
			x < (xj-xi)*(y-yi)/(yj-yi)+xi
		if intersect {
			inside = !inside
		}
	}
	return inside
}
