package entity

// Rect is an axis-aligned box. (X, Y) is the bottom-left corner in Y-up world space.
type Rect struct {
	X, Y float64
	W, H float64
}

// Overlaps reports whether two rects intersect. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Right returns the X coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the Y coordinate of the top edge
func (r Rect) Top() float64 { return r.Y + r.H }

// CenterX returns the horizontal center
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Expand grows the rect by margin on every side
func (r Rect) Expand(margin float64) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Overlap holds the four penetration depths between a moving box and a static one.
// Left is how far the mover's right edge went past the other's left edge, and so on.
type Overlap struct {
	Left, Right float64
	Bottom, Top float64
}

// OverlapOf computes penetration depths of a into b.
func OverlapOf(a, b Rect) Overlap {
	return Overlap{
		Left:   a.Right() - b.X,
		Right:  b.Right() - a.X,
		Bottom: b.Top() - a.Y,
		Top:    a.Top() - b.Y,
	}
}

// MinX returns the smaller horizontal penetration
func (o Overlap) MinX() float64 { return min(o.Left, o.Right) }

// MinY returns the smaller vertical penetration
func (o Overlap) MinY() float64 { return min(o.Bottom, o.Top) }

// Body is the physical state shared by every simulated object.
// The bounding box is derived from position and size on demand, so it can
// never drift from the position.
type Body struct {
	X, Y   float64
	VX, VY float64
	W, H   float64

	Active bool
}

// NewBody creates an active body
func NewBody(x, y, w, h float64) Body {
	return Body{X: x, Y: y, W: w, H: h, Active: true}
}

// Bounds returns the current bounding box
func (b *Body) Bounds() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// SetPosition moves the body without touching velocity
func (b *Body) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
}

// SetVelocity sets both velocity components
func (b *Body) SetVelocity(vx, vy float64) {
	b.VX = vx
	b.VY = vy
}

// Integrate advances the position by the current velocity
func (b *Body) Integrate(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// IsActive returns true while the body takes part in the simulation
func (b *Body) IsActive() bool {
	return b.Active
}
