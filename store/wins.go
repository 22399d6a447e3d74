package store

import (
	"path/filepath"

	"github.com/aaroniusdersiebte/DBM/models"
)

type WinsRepository struct {
	path string
}

func NewWinsRepository(dataDir string) *WinsRepository {
	return &WinsRepository{
		path: filepath.Join(dataDir, "bingo-data", "bingo-wins.json"),
	}
}

func (r *WinsRepository) List() []models.BingoWin {
	wins := []models.BingoWin{}
	readJSONFile(r.path, &wins)
	return wins
}

func (r *WinsRepository) Append(win models.BingoWin) error {
	wins := r.List()
	wins = append(wins, win)
	return writeJSONFile(r.path, wins)
}

// Remove deletes the win with the given id. Returns false when absent.
func (r *WinsRepository) Remove(winID string) (bool, error) {
	wins := r.List()
	for i := range wins {
		if wins[i].ID == winID {
			wins = append(wins[:i], wins[i+1:]...)
			return true, writeJSONFile(r.path, wins)
		}
	}
	return false, nil
}

func (r *WinsRepository) Clear() error {
	return writeJSONFile(r.path, []models.BingoWin{})
}
