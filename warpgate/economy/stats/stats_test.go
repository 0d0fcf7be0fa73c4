package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testDefaults = Defaults{
	"common": {Health: 100, Attack: 10, Speed: 10},
	"rare":   {Health: 150, Attack: 20, Speed: 15},
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		tier     string
		template Overrides
		instance Overrides
		want     Stats
	}{
		{
			name: "tier defaults only",
			tier: "rare",
			want: Stats{Health: 150, Attack: 20, Speed: 15},
		},
		{
			name:     "template health with default attack and speed",
			tier:     "common",
			template: Overrides{Health: Int64(130)},
			want:     Stats{Health: 130, Attack: 10, Speed: 10},
		},
		{
			name:     "instance beats template per field",
			tier:     "common",
			template: Overrides{Health: Int64(130), Attack: Int64(12)},
			instance: Overrides{Attack: Int64(40)},
			want:     Stats{Health: 130, Attack: 40, Speed: 10},
		},
		{
			name:     "zero override is still an override",
			tier:     "rare",
			instance: Overrides{Speed: Int64(0)},
			want:     Stats{Health: 150, Attack: 20, Speed: 0},
		},
		{
			name: "unknown tier uses common defaults",
			tier: "mythic",
			want: Stats{Health: 100, Attack: 10, Speed: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.tier, tt.template, tt.instance, testDefaults)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, int64(1), Level(0, 100))
	assert.Equal(t, int64(1), Level(99, 100))
	assert.Equal(t, int64(2), Level(100, 100))
	assert.Equal(t, int64(4), Level(350, 100))
	assert.Equal(t, int64(3), Level(100, 50))
	assert.Equal(t, int64(2), Level(150, 0), "non-positive divisor falls back to 100")
	assert.Equal(t, int64(1), Level(-20, 100))
}

func TestGrowAndDelta(t *testing.T) {
	base := Stats{Health: 100, Attack: 10, Speed: 10}
	per := Stats{Health: 5, Attack: 2, Speed: 1}

	assert.Equal(t, base, Grow(base, 1, per))
	assert.Equal(t, Stats{Health: 115, Attack: 16, Speed: 13}, Grow(base, 4, per))

	rare := Stats{Health: 150, Attack: 20, Speed: 15}
	assert.Equal(t, Stats{Health: 50, Attack: 10, Speed: 5}, rare.Sub(base))
}
