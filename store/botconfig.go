package store

import (
	"log"
	"path/filepath"

	"github.com/aaroniusdersiebte/DBM/models"
)

type BotConfigRepository struct {
	path   string
	cipher *TokenCipher
}

func NewBotConfigRepository(dataDir string, cipher *TokenCipher) *BotConfigRepository {
	return &BotConfigRepository{
		path:   filepath.Join(dataDir, "config", "bot-config.json"),
		cipher: cipher,
	}
}

func defaultBotConfig() *models.BotConfig {
	return &models.BotConfig{
		OBSWebSocketURL: "ws://localhost:4455",
		StreamerbotURL:  "ws://localhost:8080",
		Commands:        []models.LegacyCommand{},
		Triggers:        []models.Trigger{},
		Actions:         []models.Action{},
	}
}

// Load reads the bot configuration, decrypting the token field. A missing
// or corrupt file yields the default configuration.
func (r *BotConfigRepository) Load() *models.BotConfig {
	config := defaultBotConfig()
	readJSONFile(r.path, config)

	if config.Token != "" {
		token, err := r.cipher.Decrypt(config.Token)
		if err != nil {
			// Token written by an older key or stored unencrypted;
			// keep the raw value so the operator can re-save.
			log.Printf("⚠️ Failed to decrypt bot token, keeping stored value: %v", err)
		} else {
			config.Token = token
		}
	}

	if config.Triggers == nil {
		config.Triggers = []models.Trigger{}
	}
	if config.Actions == nil {
		config.Actions = []models.Action{}
	}
	if config.Commands == nil {
		config.Commands = []models.LegacyCommand{}
	}
	return config
}

// Save writes the bot configuration, encrypting the token field at rest.
func (r *BotConfigRepository) Save(config *models.BotConfig) error {
	toSave := *config
	if toSave.Token != "" {
		encrypted, err := r.cipher.Encrypt(toSave.Token)
		if err != nil {
			return err
		}
		toSave.Token = encrypted
	}
	return writeJSONFile(r.path, &toSave)
}
