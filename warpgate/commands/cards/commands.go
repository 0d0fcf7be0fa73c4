package cards

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Draw,
	Inventory,
	Upgrade,
	View,
}
