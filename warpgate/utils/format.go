package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/ellavondegurechaff/warpgate/warpgate/config"
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

func FormatNumber(n int64) string {
	str := strconv.FormatInt(n, 10)
	if n < 0 {
		str = str[1:] // Remove minus sign for processing
	}

	var result []byte
	for i := len(str) - 1; i >= 0; i-- {
		if (len(str)-i-1)%3 == 0 && i != len(str)-1 {
			result = append([]byte{','}, result...)
		}
		result = append([]byte{str[i]}, result...)
	}

	if n < 0 {
		return "-" + string(result)
	}
	return string(result)
}

// FormatDuration renders d as "1h 2m 3s", dropping zero leading units.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d <= 0 {
		return "0s"
	}
	h := int64(d / time.Hour)
	m := int64(d % time.Hour / time.Minute)
	s := int64(d % time.Minute / time.Second)

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if h > 0 || m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))
	return strings.Join(parts, " ")
}

// Timestamp renders a Discord relative timestamp.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}

func RarityColor(rarity string) int {
	switch rarity {
	case models.RarityLegendary:
		return config.RarityLegendaryColor
	case models.RarityEpic:
		return config.RarityEpicColor
	case models.RarityRare:
		return config.RarityRareColor
	default:
		return config.RarityCommonColor
	}
}

func RarityEmoji(rarity string) string {
	switch rarity {
	case models.RarityLegendary:
		return "🟡"
	case models.RarityEpic:
		return "🟣"
	case models.RarityRare:
		return "🔵"
	default:
		return "⚪"
	}
}

// RarityLabel is the capitalised rarity name.
func RarityLabel(rarity string) string {
	if rarity == "" {
		return ""
	}
	return strings.ToUpper(rarity[:1]) + rarity[1:]
}

// ProgressBar draws width cells filled in proportion to cur/total.
func ProgressBar(cur, total int64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = int(cur * int64(width) / total)
	}
	filled = min(max(filled, 0), width)
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

// FormatStats renders a stat block on one line.
func FormatStats(s stats.Stats) string {
	return fmt.Sprintf("❤️ %d ⚔️ %d 💨 %d", s.Health, s.Attack, s.Speed)
}

// FormatDelta renders a stat change with explicit signs.
func FormatDelta(s stats.Stats) string {
	return fmt.Sprintf("❤️ %+d ⚔️ %+d 💨 %+d", s.Health, s.Attack, s.Speed)
}

// RarityChoices is the option choice list for rarity parameters.
func RarityChoices() []discord.ApplicationCommandOptionChoiceString {
	choices := make([]discord.ApplicationCommandOptionChoiceString, 0, len(models.Rarities))
	for _, r := range models.Rarities {
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{
			Name:  RarityEmoji(r) + " " + RarityLabel(r),
			Value: r,
		})
	}
	return choices
}
