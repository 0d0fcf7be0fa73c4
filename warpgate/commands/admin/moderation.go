package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/warpgate/warpgate"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/logger"
	"github.com/ellavondegurechaff/warpgate/warpgate/utils"
)

var targetUser = discord.ApplicationCommandOptionUser{
	Name:        "user",
	Description: "Target player",
	Required:    true,
}

var ResetDraw = discord.SlashCommandCreate{
	Name:        "resetdraw",
	Description: "Reset a player's draw cooldown",
	Options:     []discord.ApplicationCommandOption{targetUser},
}

var Bypass = discord.SlashCommandCreate{
	Name:        "bypass",
	Description: "Toggle cooldown and upgrade-cost bypass for a player",
	Options: []discord.ApplicationCommandOption{
		targetUser,
		discord.ApplicationCommandOptionBool{
			Name:        "cooldown",
			Description: "Skip the draw cooldown",
			Required:    true,
		},
		discord.ApplicationCommandOptionBool{
			Name:        "upgrade",
			Description: "Skip upgrade costs",
			Required:    true,
		},
	},
}

var Ban = discord.SlashCommandCreate{
	Name:        "ban",
	Description: "Ban a player from the game",
	Options: []discord.ApplicationCommandOption{
		targetUser,
		discord.ApplicationCommandOptionString{
			Name:        "reason",
			Description: "Shown to the player",
			Required:    false,
		},
	},
}

var Unban = discord.SlashCommandCreate{
	Name:        "unban",
	Description: "Lift a player's ban",
	Options:     []discord.ApplicationCommandOption{targetUser},
}

// requireAdmin wraps h so only configured admins reach it.
func requireAdmin(b *warpgate.Bot, action string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User()) {
			slog.Warn("Admin command refused",
				slog.String("type", "audit"),
				slog.String("command", action),
				slog.String("user_id", e.User().ID.String()))
			return utils.EH.CreatePermissionError(e, action)
		}
		return h(e)
	}
}

func ResetDrawHandler(b *warpgate.Bot) handler.CommandHandler {
	return requireAdmin(b, "reset draw cooldowns", func(e *handler.CommandEvent) error {
		target := e.SlashCommandInteractionData().User("user")

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		if err := b.Ledger.ResetDrawCooldown(ctx, target.ID.String()); err != nil {
			return utils.EH.HandleError(e, err)
		}
		logger.LogAudit("Draw cooldown reset",
			slog.String("admin_id", e.User().ID.String()),
			slog.String("user_id", target.ID.String()))
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Draw cooldown reset for **%s**.", target.Username))
	})
}

func BypassHandler(b *warpgate.Bot) handler.CommandHandler {
	return requireAdmin(b, "change bypass flags", func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")
		cooldown, upgrade := data.Bool("cooldown"), data.Bool("upgrade")

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		if err := b.Ledger.SetBypass(ctx, target.ID.String(), cooldown, upgrade); err != nil {
			return utils.EH.HandleError(e, err)
		}
		logger.LogAudit("Bypass flags changed",
			slog.String("admin_id", e.User().ID.String()),
			slog.String("user_id", target.ID.String()),
			slog.Bool("cooldown", cooldown),
			slog.Bool("upgrade", upgrade))
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("**%s** · cooldown bypass `%t` · upgrade bypass `%t`", target.Username, cooldown, upgrade))
	})
}

func BanHandler(b *warpgate.Bot) handler.CommandHandler {
	return requireAdmin(b, "ban players", func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")
		reason := data.String("reason")

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		if err := b.Ledger.Ban(ctx, target.ID.String(), reason); err != nil {
			return utils.EH.HandleError(e, err)
		}
		logger.LogAudit("Player banned",
			slog.String("admin_id", e.User().ID.String()),
			slog.String("user_id", target.ID.String()),
			slog.String("reason", reason))
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("🔨 **%s** has been banned.", target.Username))
	})
}

func UnbanHandler(b *warpgate.Bot) handler.CommandHandler {
	return requireAdmin(b, "unban players", func(e *handler.CommandEvent) error {
		target := e.SlashCommandInteractionData().User("user")

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		if err := b.Ledger.Unban(ctx, target.ID.String()); err != nil {
			return utils.EH.HandleError(e, err)
		}
		logger.LogAudit("Player unbanned",
			slog.String("admin_id", e.User().ID.String()),
			slog.String("user_id", target.ID.String()))
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("**%s** may play again.", target.Username))
	})
}
