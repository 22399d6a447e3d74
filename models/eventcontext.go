package models

import "github.com/bwmarrin/discordgo"

// EventUser is the platform user that caused the event.
type EventUser struct {
	ID          string
	Username    string
	DisplayName string
	IsBot       bool
}

// EventMember carries guild membership data when the user is resolvable
// as a member of the guild the event happened in.
type EventMember struct {
	RoleIDs     []string
	IsModerator bool
}

type EventChannel struct {
	ID   string
	Name string
}

type EventGuild struct {
	ID   string
	Name string
}

type EventMessage struct {
	ID      string
	Content string
}

// EventReaction describes the emoji of a reaction event. Name holds the
// unicode glyph for standard emoji or the short name for custom emoji;
// ID is only set for custom emoji.
type EventReaction struct {
	EmojiName string
	EmojiID   string
	MessageID string
}

// EventContext is the ephemeral per-dispatch bundle assembled by the
// event ingress adapter. It is never persisted; its lifetime is one
// dispatch.
type EventContext struct {
	User     *EventUser
	Member   *EventMember
	Channel  *EventChannel
	Guild    *EventGuild
	Message  *EventMessage
	Reaction *EventReaction

	// Interaction is set when the event originates from a slash command,
	// so actions can reply to the invocation instead of the channel.
	Interaction *discordgo.Interaction

	// CommandParams holds extracted slash command options as a flat
	// name -> value mapping.
	CommandParams map[string]string
}
