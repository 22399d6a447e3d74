package store

import (
	"path/filepath"

	"github.com/aaroniusdersiebte/DBM/models"
)

type BingoConfigRepository struct {
	path string
}

func NewBingoConfigRepository(dataDir string) *BingoConfigRepository {
	return &BingoConfigRepository{
		path: filepath.Join(dataDir, "config", "bingo-config.json"),
	}
}

func defaultBingoConfig() *models.BingoConfig {
	return &models.BingoConfig{
		Enabled:                  false,
		SlashCommand:             "/bingo",
		BingoCommand:             "/bingowin",
		CardSize:                 models.CardSize{Width: 5, Height: 5},
		ReactionEmoji:            "✅",
		BingoConfirmationMessage: "Event bestätigt! Aktualisiere Bingo-Karten...",
		Decks:                    []models.BingoDeck{},
	}
}

func (r *BingoConfigRepository) Load() *models.BingoConfig {
	config := defaultBingoConfig()
	readJSONFile(r.path, config)
	if config.Decks == nil {
		config.Decks = []models.BingoDeck{}
	}
	return config
}

func (r *BingoConfigRepository) Save(config *models.BingoConfig) error {
	return writeJSONFile(r.path, config)
}
