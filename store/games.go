package store

import (
	"path/filepath"

	"github.com/aaroniusdersiebte/DBM/models"
)

type GamesRepository struct {
	path string
}

func NewGamesRepository(dataDir string) *GamesRepository {
	return &GamesRepository{
		path: filepath.Join(dataDir, "bingo-data", "active-games.json"),
	}
}

func (r *GamesRepository) List() []models.BingoGame {
	games := []models.BingoGame{}
	readJSONFile(r.path, &games)
	return games
}

func (r *GamesRepository) Append(game models.BingoGame) error {
	games := r.List()
	games = append(games, game)
	return writeJSONFile(r.path, games)
}

// Update replaces the game with the same id. Returns false when no game
// with that id exists.
func (r *GamesRepository) Update(game models.BingoGame) (bool, error) {
	games := r.List()
	for i := range games {
		if games[i].ID == game.ID {
			games[i] = game
			return true, writeJSONFile(r.path, games)
		}
	}
	return false, nil
}

func (r *GamesRepository) Clear() error {
	return writeJSONFile(r.path, []models.BingoGame{})
}
