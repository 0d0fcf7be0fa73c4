package utils

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/disgo/rest"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
)

// ResponseHandler provides standardized response methods for commands and components
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// MessageCreator is implemented by command and component events.
type MessageCreator interface {
	CreateMessage(messageCreate discord.MessageCreate, opts ...rest.RequestOpt) error
}

// ErrorType represents different categories of errors for consistent handling
type ErrorType int

const (
	// UserError - User input issues, validation failures, parameter problems
	UserError ErrorType = iota
	// SystemError - Database failures, network issues, internal server errors
	SystemError
	// NotFoundError - Requested resources don't exist
	NotFoundError
	// PermissionError - Unauthorized actions, access denied
	PermissionError
	// BusinessLogicError - Cooldowns, insufficient resources, game rule violations
	BusinessLogicError
)

const genericFailure = "Something went wrong. Please try again later."

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "🔍"
	case PermissionError:
		return "🚫"
	case BusinessLogicError:
		return "⏰"
	default:
		return "❌"
	}
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError, BusinessLogicError:
		return config.WarningColor
	case NotFoundError:
		return config.InfoColor
	default:
		return config.ErrorColor
	}
}

// ClassifyError maps an engine error to a category and a player-facing
// message. Anything that is not an engine error is a system error.
func ClassifyError(err error) (ErrorType, string) {
	e, ok := economy.AsError(err)
	if !ok {
		return SystemError, genericFailure
	}

	var t ErrorType
	switch e.Code {
	case economy.CodeNotRegistered:
		return NotFoundError, "You are not registered yet. Use `/register` to join."
	case economy.CodeBanned:
		t = PermissionError
	case economy.CodeNotOwned, economy.CodeNoUpgradedVariant, economy.CodeEmptyPool:
		t = NotFoundError
	case economy.CodeInvalidArgument:
		t = UserError
	case economy.CodeCooldownActive:
		if e.RetryAfter > 0 {
			return BusinessLogicError, "This is on cooldown. Try again in " + FormatDuration(e.RetryAfter) + "."
		}
		t = BusinessLogicError
	default:
		t = BusinessLogicError
	}
	return t, sentence(e.Message)
}

// ErrorEmbed renders err the way every surface shows failures.
func ErrorEmbed(err error) discord.Embed {
	t, msg := ClassifyError(err)
	return discord.Embed{
		Description: getErrorPrefix(t) + " " + msg,
		Color:       getErrorColor(t),
	}
}

// HandleError logs unexpected failures and replies with an error embed.
// Engine errors are expected outcomes and are not logged as failures.
func (h *ResponseHandler) HandleError(event MessageCreator, err error) error {
	if !economy.IsExpected(err) {
		slog.Error("Unexpected command failure",
			slog.String("type", "error"),
			slog.Any("error", err))
	}

	msg := discord.MessageCreate{Embeds: []discord.Embed{ErrorEmbed(err)}}
	if _, ok := event.(*handler.ComponentEvent); ok {
		msg.Flags = discord.MessageFlagEphemeral
	}
	return event.CreateMessage(msg)
}

// CreateErrorEmbed creates a standard error embed for command events
func (h *ResponseHandler) CreateErrorEmbed(event MessageCreator, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.ErrorColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

// CreateSuccessEmbed creates a standard success embed for command events
func (h *ResponseHandler) CreateSuccessEmbed(event MessageCreator, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.SuccessColor,
		}},
	})
}

// CreateInfoEmbed creates a standard info embed for command events
func (h *ResponseHandler) CreateInfoEmbed(event MessageCreator, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.InfoColor,
		}},
	})
}

// CreatePermissionError creates an error response for unauthorized actions
func (h *ResponseHandler) CreatePermissionError(event MessageCreator, action string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: fmt.Sprintf("%s You don't have permission to %s", getErrorPrefix(PermissionError), action),
			Color:       getErrorColor(PermissionError),
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

// sentence upper-cases the first letter and ends msg with a period.
func sentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return genericFailure
	}
	r := []rune(msg)
	r[0] = unicode.ToUpper(r[0])
	msg = string(r)
	if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, "!") && !strings.HasSuffix(msg, "?") {
		msg += "."
	}
	return msg
}
