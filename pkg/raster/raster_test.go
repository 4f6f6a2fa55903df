package raster

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
)

func contains(points []geometry.Point, p geometry.Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}

func TestLineVertical(t *testing.T) {
	points := Line(geometry.Pt(2, 2), geometry.Pt(2, 97))

	if len(points) != 96 {
		t.Fatalf("Expected 96 points, got %d", len(points))
	}
	if points[0] != geometry.Pt(2, 2) {
		t.Errorf("Expected first point (2,2), got %s", points[0])
	}
	if points[len(points)-1] != geometry.Pt(2, 97) {
		t.Errorf("Expected last point (2,97), got %s", points[len(points)-1])
	}
	for i := 1; i < len(points); i++ {
		if !points[i-1].Adjacent(points[i]) {
			t.Errorf("points %d and %d are not 8-adjacent: %s %s", i-1, i, points[i-1], points[i])
		}
	}
}

func TestLineOctants(t *testing.T) {
	center := geometry.Pt(50, 50)
	ends := []geometry.Point{
		{X: 80, Y: 57}, {X: 57, Y: 80}, {X: 43, Y: 80}, {X: 20, Y: 57},
		{X: 20, Y: 43}, {X: 43, Y: 20}, {X: 57, Y: 20}, {X: 80, Y: 43},
		{X: 50, Y: 10}, {X: 10, Y: 50}, {X: 90, Y: 90}, {X: 10, Y: 90},
	}

	for _, end := range ends {
		t.Run(end.String(), func(t *testing.T) {
			points := Line(center, end)

			dx, dy := abs(end.X-center.X), abs(end.Y-center.Y)
			want := max(dx, dy) + 1
			if len(points) != want {
				t.Errorf("Expected %d points, got %d", want, len(points))
			}
			if points[0] != center || points[len(points)-1] != end {
				t.Errorf("endpoints not included: first %s last %s", points[0], points[len(points)-1])
			}

			for i := 1; i < len(points); i++ {
				prev, cur := points[i-1], points[i]
				if !prev.Adjacent(cur) || prev == cur {
					t.Fatalf("gap between %s and %s", prev, cur)
				}
				// Every step advances exactly one cell along the dominant axis
				if dx >= dy && abs(cur.X-prev.X) != 1 {
					t.Fatalf("x walk not monotonic at %d: %s -> %s", i, prev, cur)
				}
				if dy > dx && abs(cur.Y-prev.Y) != 1 {
					t.Fatalf("y walk not monotonic at %d: %s -> %s", i, prev, cur)
				}
			}
		})
	}
}

func TestLineSinglePoint(t *testing.T) {
	points := Line(geometry.Pt(7, 7), geometry.Pt(7, 7))
	if diff := cmp.Diff([]geometry.Point{{X: 7, Y: 7}}, points); diff != "" {
		t.Errorf("unexpected points (-want +got):\n%s", diff)
	}
}

func TestLineReversedCoversSameLength(t *testing.T) {
	a := Line(geometry.Pt(0, 0), geometry.Pt(99, 37))
	b := Line(geometry.Pt(99, 37), geometry.Pt(0, 0))
	if len(a) != len(b) {
		t.Errorf("Expected equal lengths, got %d and %d", len(a), len(b))
	}
}

func TestCircleSymmetry(t *testing.T) {
	origin := geometry.Pt(30, 10)
	points := Circle(origin, 5)

	if len(points) == 0 {
		t.Fatal("circle produced no points")
	}

	for _, p := range points {
		d := p.Sub(origin)
		reflections := []geometry.Point{
			{X: d.X, Y: d.Y}, {X: -d.X, Y: d.Y}, {X: d.X, Y: -d.Y}, {X: -d.X, Y: -d.Y},
			{X: d.Y, Y: d.X}, {X: -d.Y, Y: d.X}, {X: d.Y, Y: -d.X}, {X: -d.Y, Y: -d.X},
		}
		for _, r := range reflections {
			if !contains(points, origin.Add(r)) {
				t.Errorf("reflection %s of offset %s missing", origin.Add(r), d)
			}
		}
	}
}

func TestCircleRadius(t *testing.T) {
	origin := geometry.Pt(50, 50)
	for _, radius := range []uint{1, 2, 5, 13, 40} {
		points := Circle(origin, radius)
		for _, p := range points {
			dist := p.Distance(origin)
			if dist < float64(radius)-1 || dist > float64(radius)+1 {
				t.Errorf("radius %d: point %s at distance %.2f", radius, p, dist)
			}
		}
		if len(points)%8 != 0 {
			t.Errorf("radius %d: expected a multiple of 8 points, got %d", radius, len(points))
		}
	}
}

func TestCircleZeroRadius(t *testing.T) {
	points := Circle(geometry.Pt(3, 4), 0)
	if diff := cmp.Diff([]geometry.Point{{X: 3, Y: 4}}, points); diff != "" {
		t.Errorf("unexpected points (-want +got):\n%s", diff)
	}
}

func TestCircleRadiusOne(t *testing.T) {
	origin := geometry.Pt(3, 3)
	points := Circle(origin, 1)
	for _, want := range []geometry.Point{{X: 4, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 4}, {X: 3, Y: 2}} {
		if !contains(points, want) {
			t.Errorf("Expected %s in radius-1 circle", want)
		}
	}
	if contains(points, origin) {
		t.Errorf("radius-1 circle should not contain its origin")
	}
}

func TestRasterize(t *testing.T) {
	tests := []struct {
		name    string
		shape   geometry.Shape
		wantLen int
		wantErr bool
	}{
		{"line", geometry.Line{P1: geometry.Pt(0, 0), P2: geometry.Pt(9, 0)}, 10, false},
		{"circle", geometry.Circle{Origin: geometry.Pt(10, 10), Radius: 0}, 1, false},
		{"halfcircle", geometry.HalfCircle{Origin: geometry.Pt(10, 10), Radius: 3, Angle: 90}, 0, true},
		{"square", geometry.Square{P1: geometry.Pt(0, 0), P2: geometry.Pt(0, 4), P3: geometry.Pt(4, 4), P4: geometry.Pt(4, 0)}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := Rasterize(tt.shape)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedShape) {
					t.Fatalf("Expected ErrUnsupportedShape, got %v", err)
				}
				var use *UnsupportedShapeError
				if !errors.As(err, &use) || use.Kind != tt.shape.Kind() {
					t.Errorf("Expected UnsupportedShapeError for %s, got %v", tt.shape.Kind(), err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(points) != tt.wantLen {
				t.Errorf("Expected %d points, got %d", tt.wantLen, len(points))
			}
		})
	}
}
