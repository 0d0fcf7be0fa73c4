package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

func TestFight_FasterSideActsFirst(t *testing.T) {
	player := Combatant{Name: "Buddy", Stats: stats.Stats{Health: 100, Attack: 30, Speed: 5}}
	mimic := Combatant{Name: "Mimic", Stats: stats.Stats{Health: 60, Attack: 10, Speed: 12}}

	out := Fight(player, mimic)

	require.NotEmpty(t, out.Turns)
	assert.Equal(t, SideOpponent, out.First)
	assert.Equal(t, SideOpponent, out.Turns[0].Attacker)
	// mimic 10, buddy 30 (mimic 30), mimic 10, buddy 30 (mimic 0)
	assert.Len(t, out.Turns, 4)
	assert.True(t, out.PlayerWon)
	assert.Equal(t, int64(80), out.PlayerHealth)
	assert.Equal(t, int64(0), out.OpponentHealth)
}

func TestFight_TieGoesToPlayer(t *testing.T) {
	player := Combatant{Name: "Wanderer", Stats: stats.Stats{Health: 10, Attack: 10, Speed: 10}}
	mimic := Combatant{Name: "Mimic", Stats: stats.Stats{Health: 10, Attack: 10, Speed: 10}}

	out := Fight(player, mimic)

	assert.Equal(t, SidePlayer, out.First)
	assert.Len(t, out.Turns, 1)
	assert.True(t, out.PlayerWon)
}

func TestFight_HealthFlooredAtZero(t *testing.T) {
	player := Combatant{Name: "Wanderer", Stats: stats.Stats{Health: 15, Attack: 1, Speed: 1}}
	mimic := Combatant{Name: "Mimic", Stats: stats.Stats{Health: 120, Attack: 50, Speed: 12}}

	out := Fight(player, mimic)

	assert.False(t, out.PlayerWon)
	assert.Equal(t, int64(0), out.PlayerHealth)
	assert.Equal(t, int64(0), out.Turns[len(out.Turns)-1].DefenderHealth)
}

func TestFight_Deterministic(t *testing.T) {
	player := Combatant{Name: "Buddy", Stats: stats.Stats{Health: 150, Attack: 20, Speed: 15}}
	mimic := Combatant{Name: "Mimic", Stats: stats.Stats{Health: 120, Attack: 12, Speed: 12}}

	assert.Equal(t, Fight(player, mimic), Fight(player, mimic))
}

func TestFight_NoDamageStopsAtTurnCap(t *testing.T) {
	player := Combatant{Name: "Pacifist", Stats: stats.Stats{Health: 10, Speed: 1}}
	mimic := Combatant{Name: "Mimic", Stats: stats.Stats{Health: 10, Speed: 1}}

	out := Fight(player, mimic)

	assert.Len(t, out.Turns, MaxTurns)
	assert.False(t, out.PlayerWon)
}
