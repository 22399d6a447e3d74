package models

// LegacyCommand is the old-style flat command kept for backward
// compatibility: the command carries its actions inline instead of
// referencing them by id.
type LegacyCommand struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Actions     []Action `json:"actions,omitempty"`
}

// BotConfig is the persisted bot configuration. The token field is
// encrypted at rest by the store.
type BotConfig struct {
	Token           string          `json:"token"`
	GuildID         string          `json:"guildId"`
	OBSWebSocketURL string          `json:"obsWebSocketUrl,omitempty"`
	StreamerbotURL  string          `json:"streamerbotUrl,omitempty"`
	Commands        []LegacyCommand `json:"commands"`
	Triggers        []Trigger       `json:"triggers"`
	Actions         []Action        `json:"actions"`
}

// AppSettings holds UI-facing application preferences.
type AppSettings struct {
	Theme          string `json:"theme"`
	Language       string `json:"language"`
	AutoStart      bool   `json:"autoStart"`
	MinimizeToTray bool   `json:"minimizeToTray"`
	Notifications  bool   `json:"notifications"`
}

// BotStatus is exposed to the operator panel.
type BotStatus struct {
	Connected bool   `json:"connected"`
	Ready     bool   `json:"ready"`
	User      string `json:"user,omitempty"`
}
