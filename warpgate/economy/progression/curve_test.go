package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurve_Apply(t *testing.T) {
	c := Curve{Growth: 1.2}

	tests := []struct {
		name    string
		start   Progress
		amount  int64
		want    Progress
		leveled bool
	}{
		{"below threshold", Progress{1, 0, 100}, 40, Progress{1, 40, 100}, false},
		{"exact threshold", Progress{1, 0, 100}, 100, Progress{2, 0, 120}, true},
		{"multiple levels", Progress{1, 0, 100}, 100 + 120 + 144 + 10, Progress{4, 10, 172}, true},
		{"carries existing xp", Progress{3, 140, 144}, 5, Progress{4, 1, 172}, true},
		{"zero amount", Progress{2, 10, 120}, 0, Progress{2, 10, 120}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, leveled := c.Apply(tt.start, tt.amount)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.leveled, leveled)
		})
	}
}

func TestCurve_ReplayEquivalence(t *testing.T) {
	c := Curve{Growth: 1.2}
	starts := []Progress{{1, 0, 100}, {1, 95, 100}, {5, 200, 207}, {1, 0, 1}}

	for _, s := range starts {
		for _, split := range [][2]int64{{5, 5}, {3, 7}, {50, 50}, {150, 400}} {
			a, _ := c.Apply(s, split[0])
			a, _ = c.Apply(a, split[1])
			b, _ := c.Apply(s, split[0]+split[1])
			assert.Equal(t, b, a, "start %+v split %v", s, split)
		}
	}
}

func TestCurve_DegenerateThreshold(t *testing.T) {
	got, leveled := Curve{Growth: 0.5}.Apply(Progress{Level: 0, XP: 0, XPNext: 0}, 3)
	assert.True(t, leveled)
	assert.Equal(t, Progress{Level: 4, XP: 0, XPNext: 1}, got)
}
