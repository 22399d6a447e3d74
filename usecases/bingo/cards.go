package bingo

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/utils"
)

// GenerateCard draws width×height distinct events from the deck by
// shuffling a uniform random permutation and taking its head. Cells on
// one card never repeat; distinct users drawing from a small deck may
// still receive overlapping cards.
func GenerateCard(deck models.BingoDeck, size models.CardSize) ([]models.BingoEvent, error) {
	needed := size.Width * size.Height
	if needed <= 0 {
		return nil, fmt.Errorf("invalid card size %dx%d", size.Width, size.Height)
	}
	if len(deck.Events) < needed {
		return nil, fmt.Errorf(
			"deck %q has %d events but %d are required",
			deck.Name, len(deck.Events), needed,
		)
	}

	card := make([]models.BingoEvent, 0, needed)
	for _, i := range rand.Perm(len(deck.Events))[:needed] {
		card = append(card, deck.Events[i])
	}
	return card, nil
}

// PositionFor formats the 1-based row.column coordinate of a cell index.
func PositionFor(index, width int) string {
	utils.AssertInvariant(width > 0, "card width must be positive")
	row := index/width + 1
	col := index%width + 1
	return strconv.Itoa(row) + "." + strconv.Itoa(col)
}

// IndexFor is the inverse of PositionFor. Returns -1 for a malformed or
// out-of-range position.
func IndexFor(position string, size models.CardSize) int {
	parts := strings.SplitN(position, ".", 2)
	if len(parts) != 2 {
		return -1
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	if row < 1 || row > size.Height || col < 1 || col > size.Width {
		return -1
	}
	return (row-1)*size.Width + (col - 1)
}

// RenderGrid builds the human-readable card overview message.
func RenderGrid(card []models.BingoEvent, size models.CardSize) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎲 Deine Bingo-Karte (%dx%d):\n", size.Width, size.Height))
	for row := 0; row < size.Height; row++ {
		for col := 0; col < size.Width; col++ {
			index := row*size.Width + col
			if index >= len(card) {
				break
			}
			b.WriteString(fmt.Sprintf("`[%d.%d]` %s\n", row+1, col+1, utils.Truncate(card[index].Text, 60)))
		}
	}
	return b.String()
}
