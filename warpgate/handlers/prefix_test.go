package handlers

import (
	"context"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/stretchr/testify/assert"
)

func TestParsePrefixCommand(t *testing.T) {
	name, args, ok := ParsePrefixCommand("!", "  !Draw now please ")
	assert.True(t, ok)
	assert.Equal(t, "draw", name)
	assert.Equal(t, []string{"now", "please"}, args)

	_, _, ok = ParsePrefixCommand("!", "draw")
	assert.False(t, ok)

	_, _, ok = ParsePrefixCommand("!", "!   ")
	assert.False(t, ok)

	name, args, ok = ParsePrefixCommand("wg.", "wg.wallet")
	assert.True(t, ok)
	assert.Equal(t, "wallet", name)
	assert.Empty(t, args)
}

func TestPrefixRouterLookup(t *testing.T) {
	r := NewPrefixRouter("!")
	r.Handle("Daily", func(context.Context, *events.MessageCreate, []string) (discord.MessageCreate, error) {
		return discord.MessageCreate{Content: "ok"}, nil
	})

	name, h, _, ok := r.Lookup("!DAILY")
	assert.True(t, ok)
	assert.Equal(t, "daily", name)
	reply, err := h(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "ok", reply.Content)

	_, _, _, ok = r.Lookup("!unknown")
	assert.False(t, ok)
}
