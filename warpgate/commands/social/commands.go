package social

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Profile,
	Buddy,
	Team,
	TeamSet,
	Faction,
}
