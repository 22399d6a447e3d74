package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaroniusdersiebte/DBM/models"
)

func newTestCipher(t *testing.T) *TokenCipher {
	t.Helper()
	cipher, err := NewTokenCipher("test-secret")
	require.NoError(t, err)
	return cipher
}

func TestBotConfigRepository_MissingFileYieldsDefaults(t *testing.T) {
	repo := NewBotConfigRepository(t.TempDir(), newTestCipher(t))

	config := repo.Load()

	assert.Equal(t, "", config.Token)
	assert.Equal(t, "ws://localhost:4455", config.OBSWebSocketURL)
	assert.Equal(t, "ws://localhost:8080", config.StreamerbotURL)
	assert.NotNil(t, config.Triggers)
	assert.NotNil(t, config.Actions)
	assert.NotNil(t, config.Commands)
}

func TestBotConfigRepository_CorruptFileYieldsDefaults(t *testing.T) {
	dataDir := t.TempDir()
	configDir := filepath.Join(dataDir, "config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "bot-config.json"),
		[]byte("{not valid json"), 0o600))

	repo := NewBotConfigRepository(dataDir, newTestCipher(t))
	config := repo.Load()

	assert.Equal(t, "ws://localhost:4455", config.OBSWebSocketURL)
	assert.Empty(t, config.Triggers)
}

func TestBotConfigRepository_TokenEncryptedAtRest(t *testing.T) {
	dataDir := t.TempDir()
	repo := NewBotConfigRepository(dataDir, newTestCipher(t))

	require.NoError(t, repo.Save(&models.BotConfig{Token: "MTA5.bot.token", GuildID: "g1"}))

	// The on-disk document must not contain the plaintext token.
	raw, err := os.ReadFile(filepath.Join(dataDir, "config", "bot-config.json"))
	require.NoError(t, err)

	var onDisk map[string]any
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.NotEqual(t, "MTA5.bot.token", onDisk["token"])
	assert.NotEmpty(t, onDisk["token"])

	loaded := repo.Load()
	assert.Equal(t, "MTA5.bot.token", loaded.Token)
	assert.Equal(t, "g1", loaded.GuildID)
}

func TestBotConfigRepository_SaveDoesNotMutateInput(t *testing.T) {
	repo := NewBotConfigRepository(t.TempDir(), newTestCipher(t))

	config := &models.BotConfig{Token: "plain-token"}
	require.NoError(t, repo.Save(config))

	assert.Equal(t, "plain-token", config.Token)
}

func TestBingoConfigRepository_Defaults(t *testing.T) {
	repo := NewBingoConfigRepository(t.TempDir())

	config := repo.Load()

	assert.False(t, config.Enabled)
	assert.Equal(t, "/bingo", config.SlashCommand)
	assert.Equal(t, "/bingowin", config.BingoCommand)
	assert.Equal(t, models.CardSize{Width: 5, Height: 5}, config.CardSize)
	assert.Equal(t, "✅", config.ReactionEmoji)
	assert.Equal(t, "Event bestätigt! Aktualisiere Bingo-Karten...", config.BingoConfirmationMessage)
	assert.NotNil(t, config.Decks)
}

func TestBingoConfigRepository_RoundTrip(t *testing.T) {
	repo := NewBingoConfigRepository(t.TempDir())

	config := repo.Load()
	config.Enabled = true
	config.Decks = append(config.Decks, models.BingoDeck{
		ID:   "deck_1",
		Name: "Stream-Events",
		Events: []models.BingoEvent{
			{ID: "evt_1", Text: "Technikprobleme"},
		},
	})
	config.ActiveDeckID = "deck_1"
	require.NoError(t, repo.Save(config))

	loaded := repo.Load()
	assert.True(t, loaded.Enabled)
	require.Len(t, loaded.Decks, 1)
	assert.Equal(t, "deck_1", loaded.ActiveDeckID)
	assert.Equal(t, "Technikprobleme", loaded.Decks[0].Events[0].Text)
}
