package entity

// Obstacle is static level geometry
type Obstacle struct {
	Body

	Kind         ObstacleKind
	Solid        bool
	Destructible bool
}

// NewObstacle creates a solid obstacle. Bricks are destructible by default.
func NewObstacle(x, y, w, h float64, kind ObstacleKind) *Obstacle {
	return &Obstacle{
		Body:         NewBody(x, y, w, h),
		Kind:         kind,
		Solid:        true,
		Destructible: kind == BlockBrick,
	}
}

// Destroy deactivates a destructible obstacle. Returns false if it cannot break.
func (o *Obstacle) Destroy() bool {
	if !o.Destructible {
		return false
	}
	o.Active = false
	return true
}

// Blocks returns true if the obstacle stops movement
func (o *Obstacle) Blocks() bool {
	return o.Active && o.Solid
}

// Flag geometry
const (
	FlagWidth         = 32
	DefaultPoleHeight = 160.0

	// Distance from the flag back to the castle; enemies never walk past it
	CastleOffset = 150.0
)

// GoalFlag marks the end of a level
type GoalFlag struct {
	Body

	PoleHeight    float64
	Touched       bool
	AnimationTime float64
}

// NewGoalFlag creates a flag; non-positive heights use the default pole
func NewGoalFlag(x, y, poleHeight float64) *GoalFlag {
	if poleHeight <= 0 {
		poleHeight = DefaultPoleHeight
	}
	return &GoalFlag{
		Body:       NewBody(x, y, FlagWidth, poleHeight),
		PoleHeight: poleHeight,
	}
}

// Update advances the touch animation
func (f *GoalFlag) Update(dt float64) {
	if f.Touched {
		f.AnimationTime += dt
	}
}

// Touch marks the flag. Returns true only on the first touch.
func (f *GoalFlag) Touch() bool {
	if f.Touched {
		return false
	}
	f.Touched = true
	f.AnimationTime = 0
	return true
}

// Reset clears the touched state
func (f *GoalFlag) Reset() {
	f.Touched = false
	f.AnimationTime = 0
}

// CastleLimit returns the rightmost X enemies may reach
func (f *GoalFlag) CastleLimit() float64 {
	return f.X - CastleOffset
}
