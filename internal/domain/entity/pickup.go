package entity

// Pickup sizes and values
const (
	PickupSize       = 24
	DefaultCoinValue = 10

	PowerUpSize         = 32
	PowerUpSpeed        = 80.0
	PowerUpGravity      = -800.0
	PowerUpEmergeTime   = 0.5
	PowerUpEmergeHeight = 32.0
	PowerUpSafetyFloor  = 32.0
)

// Pickup is a collectible such as a coin
type Pickup struct {
	Body

	Kind      PickupKind
	Value     int
	Collected bool
}

// NewPickup creates a pickup; non-positive values fall back to the coin value
func NewPickup(x, y float64, kind PickupKind, value int) *Pickup {
	if value <= 0 {
		value = DefaultCoinValue
	}
	return &Pickup{
		Body:  NewBody(x, y, PickupSize, PickupSize),
		Kind:  kind,
		Value: value,
	}
}

// Collect marks the pickup as taken
func (p *Pickup) Collect() {
	p.Collected = true
	p.Active = false
}

// CanCollect returns true if pickup can be collected
func (p *Pickup) CanCollect() bool {
	return p.Active && !p.Collected
}

// PowerUp is an item that changes the player's transformation or stats
type PowerUp struct {
	Body

	Kind      PowerUpKind
	Collected bool

	Emerging    bool
	EmergeTimer float64
}

// NewPowerUp creates a power-up. Mushrooms start sliding right.
func NewPowerUp(x, y float64, kind PowerUpKind) *PowerUp {
	p := &PowerUp{
		Body: NewBody(x, y, PowerUpSize, PowerUpSize),
		Kind: kind,
	}
	if kind.Moves() {
		p.VX = PowerUpSpeed
	}
	return p
}

// StartEmerging begins the rise out of a block
func (p *PowerUp) StartEmerging() {
	p.Emerging = true
	p.EmergeTimer = 0
}

// Update advances emergence or ground physics
func (p *PowerUp) Update(dt float64) {
	if !p.Active || p.Collected {
		return
	}

	if p.Emerging {
		p.EmergeTimer += dt
		if p.EmergeTimer < PowerUpEmergeTime {
			p.Y += (PowerUpEmergeHeight / PowerUpEmergeTime) * dt
			return
		}
		p.Emerging = false
	}

	if !p.Kind.Moves() {
		return
	}

	p.VY += PowerUpGravity * dt
	p.Integrate(dt)
	if p.Y <= PowerUpSafetyFloor {
		p.Y = PowerUpSafetyFloor
		p.VY = 0
	}
}

// Collect marks the power-up as taken
func (p *PowerUp) Collect() {
	p.Collected = true
	p.Active = false
}

// CanCollect returns true once the power-up has fully emerged
func (p *PowerUp) CanCollect() bool {
	return p.Active && !p.Collected && !p.Emerging
}

// ReverseDirection flips horizontal velocity
func (p *PowerUp) ReverseDirection() {
	p.VX = -p.VX
}

// Land places the power-up on a surface at height y
func (p *PowerUp) Land(y float64) {
	p.Y = y
	p.VY = 0
}
