package shapes

import (
	"math"
	"reflect"
	"testing"
)

func TestPolygonToViewer(t *testing.T) {
	tests := []struct {
		name string
		ring []float64
		want []Point
	}{
		{
			"triangle",
			[]float64{10, 20, 40, 20, 40, 60},
			[]Point{{20, 10}, {20, 40}, {60, 40}},
		},
		{
			"square",
			[]float64{0, 0, 10, 0, 10, 10, 0, 10},
			[]Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}},
		},
		{
			"fractional coordinates",
			[]float64{1.5, 2.25, 3.5, 2.25, 3.5, 9.75},
			[]Point{{2.25, 1.5}, {2.25, 3.5}, {9.75, 3.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PolygonToViewer(tt.ring)
			if err != nil {
				t.Fatalf("PolygonToViewer: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PolygonToViewer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygonToViewer_Malformed(t *testing.T) {
	tests := []struct {
		name string
		ring []float64
	}{
		{"nil ring", nil},
		{"empty ring", []float64{}},
		{"two points only", []float64{1, 2, 3, 4}},
		{"odd coordinate count", []float64{1, 2, 3, 4, 5, 6, 7}},
		{"NaN vertex", []float64{1, 2, 3, math.NaN(), 5, 6}},
		{"infinite vertex", []float64{1, 2, 3, 4, math.Inf(1), 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PolygonToViewer(tt.ring); err == nil {
				t.Errorf("PolygonToViewer(%v) succeeded, want error", tt.ring)
			}
		})
	}
}

func TestPolygonRoundTrip(t *testing.T) {
	rings := [][]float64{
		{10, 20, 40, 20, 40, 60},
		{0, 0, 10, 0, 10, 10, 0, 10},
		{1.5, -2.25, 3.125, 4.5, -5, 6.875, 7, 8},
		{100.001, 200.002, 300.003, 400.004, 500.005, 600.006},
	}

	for _, ring := range rings {
		pts, err := PolygonToViewer(ring)
		if err != nil {
			t.Fatalf("PolygonToViewer(%v): %v", ring, err)
		}
		back := PolygonToSource(pts)
		if !reflect.DeepEqual(back, ring) {
			t.Errorf("round trip of %v gave %v", ring, back)
		}
	}
}

func TestPolygonToSource_Empty(t *testing.T) {
	if got := PolygonToSource(nil); got != nil {
		t.Errorf("PolygonToSource(nil) = %v, want nil", got)
	}
}

func TestBBoxToViewer(t *testing.T) {
	got, err := BBoxToViewer([]float64{10, 20, 30, 40})
	if err != nil {
		t.Fatalf("BBoxToViewer: %v", err)
	}
	want := []Point{{20, 10}, {20, 40}, {60, 40}, {60, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BBoxToViewer([10 20 30 40]) = %v, want %v", got, want)
	}
}

func TestBBoxToViewer_CornerOrder(t *testing.T) {
	// Top-left, top-right, bottom-right, bottom-left.
	got, err := BBoxToViewer([]float64{0, 0, 5, 3})
	if err != nil {
		t.Fatalf("BBoxToViewer: %v", err)
	}
	want := []Point{{0, 0}, {0, 5}, {3, 5}, {3, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("corner order: got %v, want %v", got, want)
	}
}

func TestBBoxToViewer_Malformed(t *testing.T) {
	tests := []struct {
		name string
		bbox []float64
	}{
		{"nil", nil},
		{"short", []float64{1, 2, 3}},
		{"long", []float64{1, 2, 3, 4, 5}},
		{"NaN", []float64{1, math.NaN(), 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BBoxToViewer(tt.bbox); err == nil {
				t.Errorf("BBoxToViewer(%v) succeeded, want error", tt.bbox)
			}
		})
	}
}
