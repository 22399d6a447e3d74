package store

import (
	"path/filepath"

	"github.com/aaroniusdersiebte/DBM/models"
)

// GameMessagesRepository tracks which outbound messages belong to which
// bingo card cell, so inbound reactions can be matched back to games.
type GameMessagesRepository struct {
	path string
}

func NewGameMessagesRepository(dataDir string) *GameMessagesRepository {
	return &GameMessagesRepository{
		path: filepath.Join(dataDir, "bingo-data", "game-messages.json"),
	}
}

func (r *GameMessagesRepository) List() []models.GameMessage {
	messages := []models.GameMessage{}
	readJSONFile(r.path, &messages)
	return messages
}

func (r *GameMessagesRepository) AppendAll(messages []models.GameMessage) error {
	existing := r.List()
	existing = append(existing, messages...)
	return writeJSONFile(r.path, existing)
}

func (r *GameMessagesRepository) Clear() error {
	return writeJSONFile(r.path, []models.GameMessage{})
}
