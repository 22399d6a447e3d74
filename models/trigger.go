package models

import "time"

type TriggerType string

const (
	TriggerTypeSlashCommand    TriggerType = "slash_command"
	TriggerTypeMessagePattern  TriggerType = "message_pattern"
	TriggerTypeMessageReaction TriggerType = "message_reaction"
	TriggerTypeTimeBased       TriggerType = "time_based"
	TriggerTypeWebhook         TriggerType = "webhook"
)

// Trigger pairs a match condition with an ordered list of action ids.
// Triggers are read fresh from storage on every event so config edits
// take effect on the very next dispatch.
type Trigger struct {
	ID          string      `json:"id"`
	Type        TriggerType `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	// Pattern is either a plain substring or a /regex/i wrapped expression.
	Pattern string `json:"pattern,omitempty"`
	// Emoji accepts unicode, a bare name, :name:, or custom <:name:id> markup.
	Emoji          string    `json:"emoji,omitempty"`
	CronExpression string    `json:"cronExpression,omitempty"`
	Actions        []string  `json:"actions"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}
