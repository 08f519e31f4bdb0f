package geom

// BoundingBox represents a rectangular boundary
type BoundingBox struct {
	Min Vector2D // Minimum corner
	Max Vector2D // Maximum corner
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector2D{X: 1e9, Y: 1e9},
		Max: Vector2D{X: -1e9, Y: -1e9},
	}
}

// BoxFromPoints returns the normalized box spanned by two corners.
func BoxFromPoints(a, b Vector2D) BoundingBox {
	return BoundingBox{Min: a, Max: b}.Normalize()
}

// Normalize swaps corners so that Min <= Max on both axes.
func (bb BoundingBox) Normalize() BoundingBox {
	if bb.Min.X > bb.Max.X {
		bb.Min.X, bb.Max.X = bb.Max.X, bb.Min.X
	}
	if bb.Min.Y > bb.Max.Y {
		bb.Min.Y, bb.Max.Y = bb.Max.Y, bb.Min.Y
	}
	return bb
}

// IsEmpty checks if the bounding box is empty
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Expand expands the bounding box to include a position
func (bb *BoundingBox) Expand(pos Vector2D) {
	if pos.X < bb.Min.X {
		bb.Min.X = pos.X
	}
	if pos.Y < bb.Min.Y {
		bb.Min.Y = pos.Y
	}
	if pos.X > bb.Max.X {
		bb.Max.X = pos.X
	}
	if pos.Y > bb.Max.Y {
		bb.Max.Y = pos.Y
	}
}

// ExpandBox expands to include another bounding box
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Inflate grows the box by d on every side.
func (bb BoundingBox) Inflate(d float64) BoundingBox {
	return BoundingBox{
		Min: Vector2D{X: bb.Min.X - d, Y: bb.Min.Y - d},
		Max: Vector2D{X: bb.Max.X + d, Y: bb.Max.Y + d},
	}
}

// Contains checks if a position is within the bounding box
func (bb BoundingBox) Contains(pos Vector2D) bool {
	return pos.X >= bb.Min.X && pos.X <= bb.Max.X &&
		pos.Y >= bb.Min.Y && pos.Y <= bb.Max.Y
}

// ContainsBox reports whether other lies entirely inside bb.
func (bb BoundingBox) ContainsBox(other BoundingBox) bool {
	return bb.Contains(other.Min) && bb.Contains(other.Max)
}

// Intersects checks if two bounding boxes intersect
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	return bb.Min.X <= other.Max.X && bb.Max.X >= other.Min.X &&
		bb.Min.Y <= other.Max.Y && bb.Max.Y >= other.Min.Y
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box
func (bb BoundingBox) Center() Vector2D {
	return Vector2D{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}
