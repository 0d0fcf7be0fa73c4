// Package stats resolves effective combat stats for cards.
package stats

const DefaultLevelDivisor = 100

// Stats is an effective combat stat block.
type Stats struct {
	Health int64 `json:"health" yaml:"health" toml:"health"`
	Attack int64 `json:"attack" yaml:"attack" toml:"attack"`
	Speed  int64 `json:"speed" yaml:"speed" toml:"speed"`
}

// Sub returns s - o field by field.
func (s Stats) Sub(o Stats) Stats {
	return Stats{
		Health: s.Health - o.Health,
		Attack: s.Attack - o.Attack,
		Speed:  s.Speed - o.Speed,
	}
}

func (s Stats) Add(o Stats) Stats {
	return Stats{
		Health: s.Health + o.Health,
		Attack: s.Attack + o.Attack,
		Speed:  s.Speed + o.Speed,
	}
}

// Scale multiplies every field by n.
func (s Stats) Scale(n int64) Stats {
	return Stats{Health: s.Health * n, Attack: s.Attack * n, Speed: s.Speed * n}
}

// Overrides holds optional stat values. A nil field means "not set here".
type Overrides struct {
	Health *int64
	Attack *int64
	Speed  *int64
}

// Defaults maps a tier name to its default stat block.
type Defaults map[string]Stats

// Fallback is used when a tier is unknown to a Defaults table.
const Fallback = "common"

// For returns the defaults of tier, falling back to the common tier.
func (d Defaults) For(tier string) Stats {
	if s, ok := d[tier]; ok {
		return s
	}
	return d[Fallback]
}

// Resolve picks every field independently: the instance value when set,
// otherwise the template value, otherwise the tier default.
func Resolve(tier string, template, instance Overrides, defaults Defaults) Stats {
	base := defaults.For(tier)
	return Stats{
		Health: pick(instance.Health, template.Health, base.Health),
		Attack: pick(instance.Attack, template.Attack, base.Attack),
		Speed:  pick(instance.Speed, template.Speed, base.Speed),
	}
}

func pick(instance, template *int64, def int64) int64 {
	if instance != nil {
		return *instance
	}
	if template != nil {
		return *template
	}
	return def
}

// Level derives a display level from accumulated experience.
func Level(exp, divisor int64) int64 {
	if divisor <= 0 {
		divisor = DefaultLevelDivisor
	}
	if exp < 0 {
		exp = 0
	}
	return exp/divisor + 1
}

// Grow adds per-level growth for every level above the first.
func Grow(base Stats, level int64, perLevel Stats) Stats {
	if level <= 1 {
		return base
	}
	return base.Add(perLevel.Scale(level - 1))
}

// Int64 is a helper for building Overrides literals.
func Int64(v int64) *int64 {
	return &v
}
