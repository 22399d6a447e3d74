package models

import "time"

type ActionType string

const (
	ActionTypeSendMessage       ActionType = "send_message"
	ActionTypeSendEmbed         ActionType = "send_embed"
	ActionTypeAddRole           ActionType = "add_role"
	ActionTypeRemoveRole        ActionType = "remove_role"
	ActionTypeSendDM            ActionType = "send_dm"
	ActionTypeWebhookCall       ActionType = "webhook_call"
	ActionTypeOBSAction         ActionType = "obs_action"
	ActionTypeStreamerbotAction ActionType = "streamerbot_action"
	ActionTypeDelay             ActionType = "delay"
	ActionTypeConditional       ActionType = "conditional"
)

type ConditionType string

const (
	ConditionHasRole         ConditionType = "has_role"
	ConditionInChannel       ConditionType = "in_channel"
	ConditionMessageContains ConditionType = "message_contains"
	ConditionIsModerator     ConditionType = "is_moderator"
)

// Action is one configured side-effecting step, referenced by id from
// triggers. Only the fields matching Type are meaningful; the rest stay
// zero. Deleting an action does not cascade into triggers, so dangling
// references must be tolerated at lookup time.
type Action struct {
	ID   string     `json:"id"`
	Type ActionType `json:"type"`
	Name string     `json:"name"`

	// send_message / send_dm / webhook_call payload template
	Content string `json:"content,omitempty"`

	// send_embed
	EmbedTitle       string `json:"embedTitle,omitempty"`
	EmbedDescription string `json:"embedDescription,omitempty"`
	EmbedColor       string `json:"embedColor,omitempty"` // #RRGGBB

	// add_role / remove_role
	RoleID string `json:"roleId,omitempty"`

	// webhook_call
	WebhookURL string `json:"webhookUrl,omitempty"`
	Payload    string `json:"payload,omitempty"`

	// obs_action
	OBSRequestType string         `json:"obsRequestType,omitempty"`
	OBSRequestData map[string]any `json:"obsRequestData,omitempty"`

	// streamerbot_action
	StreamerbotAction string         `json:"streamerbotAction,omitempty"`
	StreamerbotData   map[string]any `json:"streamerbotData,omitempty"`

	// delay
	Seconds int `json:"seconds,omitempty"`

	// conditional
	ConditionType  ConditionType `json:"conditionType,omitempty"`
	ConditionValue string        `json:"conditionValue,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ActionOutcome reports the result of executing one action. Failures are
// surfaced here instead of aborting the chain.
type ActionOutcome struct {
	ActionID string     `json:"actionId"`
	Name     string     `json:"name"`
	Type     ActionType `json:"type"`
	OK       bool       `json:"ok"`
	Detail   string     `json:"detail,omitempty"`
}
