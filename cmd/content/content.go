package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
)

// Content is the layout of a content file.
type Content struct {
	Cards  []CardEntry  `yaml:"cards"`
	Quests []QuestEntry `yaml:"quests"`
}

// CardEntry describes one card template. Missing stats fall back to the
// tier defaults.
type CardEntry struct {
	Name        string  `yaml:"name"`
	BaseName    string  `yaml:"base_name"`
	Rarity      string  `yaml:"rarity"`
	Health      *int64  `yaml:"health"`
	Attack      *int64  `yaml:"attack"`
	Speed       *int64  `yaml:"speed"`
	ImageURL    string  `yaml:"image_url"`
	Description string  `yaml:"description"`
	DropWeight  float64 `yaml:"drop_weight"`
}

type QuestEntry struct {
	ID           string `yaml:"id"`
	Kind         string `yaml:"kind"`
	Description  string `yaml:"description"`
	Target       int64  `yaml:"target"`
	RewardCoins  int64  `yaml:"reward_coins"`
	RewardNoble  int64  `yaml:"reward_noble"`
	RewardRarity string `yaml:"reward_rarity"`
	SortOrder    int    `yaml:"sort_order"`
}

// ParseContent decodes a content file. Unknown keys are rejected.
func ParseContent(r io.Reader) (*Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	for i, card := range c.Cards {
		if negative(card.Health) || negative(card.Attack) || negative(card.Speed) {
			return nil, fmt.Errorf("cards[%d] %s: stats must not be negative", i, card.Name)
		}
		if card.DropWeight < 0 {
			return nil, fmt.Errorf("cards[%d] %s: drop_weight must not be negative", i, card.Name)
		}
	}
	return &c, nil
}

func negative(v *int64) bool {
	return v != nil && *v < 0
}

func LoadContent(path string) (*Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open content file: %w", err)
	}
	defer f.Close()
	return ParseContent(f)
}

// Models converts the entries into card and quest templates.
func (c *Content) Models() ([]*models.Card, []*models.QuestTemplate) {
	cards := make([]*models.Card, 0, len(c.Cards))
	for _, e := range c.Cards {
		cards = append(cards, &models.Card{
			Name:        e.Name,
			BaseName:    e.BaseName,
			Rarity:      e.Rarity,
			Health:      e.Health,
			Attack:      e.Attack,
			Speed:       e.Speed,
			ImageURL:    e.ImageURL,
			Description: e.Description,
			DropWeight:  e.DropWeight,
		})
	}

	quests := make([]*models.QuestTemplate, 0, len(c.Quests))
	for _, e := range c.Quests {
		quests = append(quests, &models.QuestTemplate{
			QuestID:      e.ID,
			Kind:         e.Kind,
			Description:  e.Description,
			Target:       e.Target,
			RewardCoins:  e.RewardCoins,
			RewardNoble:  e.RewardNoble,
			RewardRarity: e.RewardRarity,
			SortOrder:    e.SortOrder,
		})
	}
	return cards, quests
}
