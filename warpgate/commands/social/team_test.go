package social

import (
	"testing"

	"github.com/ellavondegurechaff/warpgate/warpgate/economy"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardRefs(t *testing.T) {
	refs, err := ParseCardRefs(" Vesper ✦:Rare, Aurelia:common ,")
	require.NoError(t, err)
	assert.Equal(t, []progression.CardRef{
		{Name: "Vesper ✦", Rarity: "rare"},
		{Name: "Aurelia", Rarity: "common"},
	}, refs)

	for _, input := range []string{"", " , ", "Vesper", "Vesper:", ":rare", "Vesper:mythic"} {
		_, err := ParseCardRefs(input)
		assert.ErrorIs(t, err, economy.ErrInvalidArgument, input)
	}
}
