// Package encounter resolves the scripted Mimic fight.
package encounter

import "github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"

// MaxTurns bounds fights where neither side can deal damage.
const MaxTurns = 200

type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "opponent"
}

// Combatant is one side of a fight.
type Combatant struct {
	Name  string
	Stats stats.Stats
}

// Turn records a single attack.
type Turn struct {
	Attacker       Side
	Damage         int64
	DefenderHealth int64
	DefenderName   string
	AttackerName   string
}

// Outcome is the full, deterministic result of Fight.
type Outcome struct {
	Player         Combatant
	Opponent       Combatant
	First          Side
	Turns          []Turn
	PlayerHealth   int64
	OpponentHealth int64
	PlayerWon      bool
}

// Fight runs alternating attacks until one side reaches zero health.
// The faster combatant acts first; on equal speed the player does.
func Fight(player, opponent Combatant) Outcome {
	out := Outcome{
		Player:         player,
		Opponent:       opponent,
		PlayerHealth:   max(player.Stats.Health, 0),
		OpponentHealth: max(opponent.Stats.Health, 0),
	}

	attacker := SidePlayer
	if opponent.Stats.Speed > player.Stats.Speed {
		attacker = SideOpponent
	}
	out.First = attacker

	for i := 0; i < MaxTurns && out.PlayerHealth > 0 && out.OpponentHealth > 0; i++ {
		var turn Turn
		if attacker == SidePlayer {
			dmg := max(player.Stats.Attack, 0)
			out.OpponentHealth = max(out.OpponentHealth-dmg, 0)
			turn = Turn{
				Attacker:       SidePlayer,
				Damage:         dmg,
				DefenderHealth: out.OpponentHealth,
				AttackerName:   player.Name,
				DefenderName:   opponent.Name,
			}
			attacker = SideOpponent
		} else {
			dmg := max(opponent.Stats.Attack, 0)
			out.PlayerHealth = max(out.PlayerHealth-dmg, 0)
			turn = Turn{
				Attacker:       SideOpponent,
				Damage:         dmg,
				DefenderHealth: out.PlayerHealth,
				AttackerName:   opponent.Name,
				DefenderName:   player.Name,
			}
			attacker = SidePlayer
		}
		out.Turns = append(out.Turns, turn)
	}

	out.PlayerWon = out.PlayerHealth > 0 && out.OpponentHealth == 0
	return out
}
