package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/admin"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/cards"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/social"
	"github.com/ellavondegurechaff/warpgate/warpgate/commands/system"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, admin.Commands...)
	Commands = append(Commands, cards.Commands...)
	Commands = append(Commands, economy.Commands...)
	Commands = append(Commands, social.Commands...)
	Commands = append(Commands, system.Commands...)
}
