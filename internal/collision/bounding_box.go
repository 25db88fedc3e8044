package collision

// Point represents a 2D coordinate in world units
type Point struct {
	X, Y float64
}

// BoundingBox is the square footprint of a moving body, centered on its
// position.
type BoundingBox struct {
	X    float64
	Y    float64
	Half float64 // half extent, the body "radius"
}

// NewSquareBox creates a box centered at (x, y) with the given half extent.
func NewSquareBox(x, y, half float64) BoundingBox {
	return BoundingBox{X: x, Y: y, Half: max(half, 0)}
}

// GetBounds returns the min/max coordinates of the box
func (bb BoundingBox) GetBounds() (minX, minY, maxX, maxY float64) {
	return bb.X - bb.Half, bb.Y - bb.Half, bb.X + bb.Half, bb.Y + bb.Half
}

// GetCorners returns the four corners in row order (TL, TR, BL, BR).
func (bb BoundingBox) GetCorners() [4]Point {
	minX, minY, maxX, maxY := bb.GetBounds()
	return [4]Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: minX, Y: maxY},
		{X: maxX, Y: maxY},
	}
}

// Translated returns the box moved by (dx, dy).
func (bb BoundingBox) Translated(dx, dy float64) BoundingBox {
	bb.X += dx
	bb.Y += dy
	return bb
}
