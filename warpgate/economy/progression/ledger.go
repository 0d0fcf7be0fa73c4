// Package progression implements the currency, cooldown, quest and
// experience ledger.
package progression

import (
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/rewards"
)

// Ledger runs every player progression operation inside one transaction of
// its Store.
type Ledger struct {
	store  economy.Store
	rules  economy.Ruleset
	roller *rewards.Roller
	clock  economy.Clock
	curve  Curve
}

func NewLedger(store economy.Store, rules economy.Ruleset, roller *rewards.Roller, clock economy.Clock) *Ledger {
	if roller == nil {
		roller = rewards.NewRoller(nil)
	}
	if clock == nil {
		clock = economy.SystemClock()
	}
	return &Ledger{
		store:  store,
		rules:  rules,
		roller: roller,
		clock:  clock,
		curve:  Curve{Growth: rules.XPGrowth},
	}
}

func (l *Ledger) Rules() economy.Ruleset {
	return l.rules
}
