package progression

// Progress is a player's position on the leveling curve.
type Progress struct {
	Level  int64
	XP     int64
	XPNext int64
}

// Curve grows the next-level threshold geometrically.
type Curve struct {
	Growth float64
}

// Apply adds amount experience. It returns the new progress and whether at
// least one level was gained. Thresholds change per level, so levels are
// consumed one at a time.
func (c Curve) Apply(p Progress, amount int64) (Progress, bool) {
	if amount > 0 {
		p.XP += amount
	}
	if p.XPNext < 1 {
		p.XPNext = 1
	}
	if p.Level < 1 {
		p.Level = 1
	}

	leveled := false
	for p.XP >= p.XPNext {
		p.XP -= p.XPNext
		p.Level++
		p.XPNext = c.next(p.XPNext)
		leveled = true
	}
	return p, leveled
}

func (c Curve) next(threshold int64) int64 {
	growth := c.Growth
	if growth < 1 {
		growth = 1
	}
	n := int64(float64(threshold) * growth)
	if n < 1 {
		n = 1
	}
	return n
}
