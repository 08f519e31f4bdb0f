package geom

import (
	"math"
	"testing"
)

func TestDistanceToSegment(t *testing.T) {
	tests := []struct {
		name string
		p    Vector2D
		a, b Vector2D
		want float64
	}{
		{"perpendicular to middle", Vector2D{5, 3}, Vector2D{0, 0}, Vector2D{10, 0}, 3},
		{"beyond end", Vector2D{13, 4}, Vector2D{0, 0}, Vector2D{10, 0}, 5},
		{"before start", Vector2D{-3, 0}, Vector2D{0, 0}, Vector2D{10, 0}, 3},
		{"degenerate segment", Vector2D{3, 4}, Vector2D{0, 0}, Vector2D{0, 0}, 5},
		{"on segment", Vector2D{2, 2}, Vector2D{0, 0}, Vector2D{4, 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToSegment(tt.p, tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("DistanceToSegment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVectorRotate(t *testing.T) {
	got := Vector2D{1, 0}.Rotate(math.Pi / 2)
	if !got.ApproxEqual(Vector2D{0, 1}, 1e-12) {
		t.Errorf("Rotate(90°) = %v, want (0, 1)", got)
	}
}

func TestContours(t *testing.T) {
	buf := []PolyPoint{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1, EndContour: true},
		{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6, EndContour: true},
	}
	got := Contours(buf)
	if len(got) != 2 {
		t.Fatalf("Contours() returned %d contours, want 2", len(got))
	}
	if len(got[0]) != 3 || len(got[1]) != 4 {
		t.Errorf("contour sizes = %d, %d; want 3, 4", len(got[0]), len(got[1]))
	}
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox()
	if !bb.IsEmpty() {
		t.Fatal("new bounding box should be empty")
	}

	bb.Expand(Vector2D{1, 2})
	bb.Expand(Vector2D{-3, 5})
	if bb.Width() != 4 || bb.Height() != 3 {
		t.Errorf("size = %v x %v, want 4 x 3", bb.Width(), bb.Height())
	}
	if c := bb.Center(); c != (Vector2D{-1, 3.5}) {
		t.Errorf("Center() = %v", c)
	}

	inverted := BoundingBox{Min: Vector2D{4, 4}, Max: Vector2D{0, 0}}.Normalize()
	if inverted.Min != (Vector2D{0, 0}) || inverted.Max != (Vector2D{4, 4}) {
		t.Errorf("Normalize() = %+v", inverted)
	}

	if !inverted.Inflate(1).ContainsBox(inverted) {
		t.Error("inflated box should contain the original")
	}
	if inverted.Intersects(BoundingBox{Min: Vector2D{5, 5}, Max: Vector2D{6, 6}}) {
		t.Error("disjoint boxes should not intersect")
	}
}
