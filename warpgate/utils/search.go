package utils

import (
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/sahilm/fuzzy"
)

type names []string

func (n names) String(i int) string { return n[i] }
func (n names) Len() int            { return len(n) }

// Suggest returns up to limit candidates that fuzzily match query, best
// first. An empty query returns the first limit candidates.
func Suggest(query string, candidates []string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		if len(candidates) > limit {
			return candidates[:limit]
		}
		return candidates
	}

	matches := fuzzy.FindFrom(query, names(candidates))
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, candidates[m.Index])
	}
	return out
}

// DidYouMean formats the closest suggestion for a not-found reply.
func DidYouMean(query string, candidates []string) string {
	s := Suggest(query, candidates, 1)
	if len(s) == 0 || strings.EqualFold(s[0], query) {
		return ""
	}
	return " Did you mean **" + s[0] + "**?"
}

// WithSuggestion appends a "did you mean" hint to a not-owned engine
// error. Other errors are returned as is.
func WithSuggestion(err error, query string, candidates []string) error {
	e, ok := economy.AsError(err)
	if !ok || e.Code != economy.CodeNotOwned {
		return err
	}
	hint := DidYouMean(query, candidates)
	if hint == "" {
		return err
	}
	c := *e
	c.Message = sentence(c.Message) + hint
	return &c
}

// AutocompleteChoices turns suggestions into string choices.
func AutocompleteChoices(query string, candidates []string, limit int) []discord.AutocompleteChoice {
	suggestions := Suggest(query, candidates, limit)
	choices := make([]discord.AutocompleteChoice, 0, len(suggestions))
	for _, s := range suggestions {
		choices = append(choices, discord.AutocompleteChoiceString{Name: s, Value: s})
	}
	return choices
}
