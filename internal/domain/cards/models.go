package cards

import (
	"time"

	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

// Card is one inventory line as shown to the player.
type Card struct {
	ID       int64
	Name     string
	BaseName string
	Rarity   string
	Amount   int64
	Level    int64
	Stats    stats.Stats
	ImageURL string
	Obtained time.Time

	Description string
}
