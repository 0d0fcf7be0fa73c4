package economy

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Daily,
	Wallet,
	Butcher,
	Quests,
	QuestClaim,
}
