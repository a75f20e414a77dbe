package shapes

import (
	"fmt"
	"math"
)

// Point is a viewer-space vertex in [row, col] order. COCO coordinates
// are x-then-y; viewers address pixels row-then-col, so conversion
// swaps every pair.
type Point [2]float64

// PolygonToViewer converts a flat COCO coordinate list
// [x1, y1, x2, y2, ...] into viewer [row, col] points.
//
// A usable ring needs at least 3 vertices (6 coordinates) and an even
// coordinate count; anything else is an error. Callers treat conversion
// errors as recoverable: log and skip the ring.
func PolygonToViewer(ring []float64) ([]Point, error) {
	if len(ring) < 6 {
		return nil, fmt.Errorf("polygon ring has %d coordinates, need at least 6", len(ring))
	}
	if len(ring)%2 != 0 {
		return nil, fmt.Errorf("polygon ring has odd coordinate count %d", len(ring))
	}

	points := make([]Point, len(ring)/2)
	for i := range points {
		x, y := ring[2*i], ring[2*i+1]
		if !finite(x) || !finite(y) {
			return nil, fmt.Errorf("polygon vertex %d is not finite", i)
		}
		points[i] = Point{y, x}
	}
	return points, nil
}

// PolygonToSource is the exact inverse of PolygonToViewer: it flattens
// viewer [row, col] points back into COCO [x1, y1, x2, y2, ...] order.
func PolygonToSource(points []Point) []float64 {
	if len(points) == 0 {
		return nil
	}
	ring := make([]float64, 0, len(points)*2)
	for _, p := range points {
		ring = append(ring, p[1], p[0])
	}
	return ring
}

// BBoxToViewer converts a COCO bounding box [x, y, width, height] into
// its four corners in viewer space, ordered top-left, top-right,
// bottom-right, bottom-left:
//
//	[[y, x], [y, x+w], [y+h, x+w], [y+h, x]]
func BBoxToViewer(bbox []float64) ([]Point, error) {
	if len(bbox) != 4 {
		return nil, fmt.Errorf("bounding box has %d values, need 4", len(bbox))
	}
	for i, v := range bbox {
		if !finite(v) {
			return nil, fmt.Errorf("bounding box value %d is not finite", i)
		}
	}

	x, y, w, h := bbox[0], bbox[1], bbox[2], bbox[3]
	return []Point{
		{y, x},
		{y, x + w},
		{y + h, x + w},
		{y + h, x},
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
