package mock

import (
	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
	"github.com/ellavondegurechaff/warpgate/warpgate/economy/stats"
)

var Cards = []*models.Card{
	{ID: 1, Name: "Vesper", BaseName: "Vesper", Rarity: models.RarityCommon},
	{ID: 2, Name: "Vesper ✦", BaseName: "Vesper", Rarity: models.RarityRare, Attack: stats.Int64(25)},
	{ID: 3, Name: "Aurelia", BaseName: "Aurelia", Rarity: models.RarityCommon},
	{ID: 4, Name: "Blight", BaseName: "Blight", Rarity: models.RarityLegendary},
}

var UserCards = []*models.UserCard{
	{ID: 10, UserID: "123", CardID: 1, Amount: 3, Card: Cards[0]},
	{ID: 11, UserID: "123", CardID: 2, Amount: 1, Exp: 250, Card: Cards[1]},
	{ID: 12, UserID: "123", CardID: 3, Amount: 1, Health: stats.Int64(999), Card: Cards[2]},
	{ID: 13, UserID: "123", CardID: 4, Amount: 0, Card: Cards[3]},
}
