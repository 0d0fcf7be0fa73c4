package config

import "time"

// UI and Display Constants
const (
	// Pagination
	CardsPerPage    = 8
	DefaultPageSize = 10
	MaxPageSize     = 25

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31

	// Rarity Colors
	RarityCommonColor    = 0x808080
	RarityRareColor      = 0x1E90FF
	RarityEpicColor      = 0x800080
	RarityLegendaryColor = 0xFFD700

	MimicColor = 0x8B0000

	SuggestionLimit = 5
)

// Database and Performance Constants
const (
	DefaultQueryTimeout     = 30 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	SlowCommandThreshold    = 2 * time.Second
	SlowTxThreshold         = 500 * time.Millisecond

	// Cache settings
	CardCacheSize            = 64
	CardCacheTTL             = time.Minute
	CardVersionCheckInterval = 5 * time.Second

	QuestRotationInterval = time.Minute
	PaginatorExpiry       = 5 * time.Minute
)

// Content storage
const (
	SpacesEndpointFormat = "https://%s.digitaloceanspaces.com"
	SpacesPublicFormat   = "https://%s.%s.cdn.digitaloceanspaces.com/%s"
)
