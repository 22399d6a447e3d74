// Package clients defines the interfaces to external collaborators: the
// Discord platform, webhook endpoints, and the OBS / Streamer.bot
// WebSocket control surfaces.
package clients

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// DiscordUser identifies the connected bot account.
type DiscordUser struct {
	ID       string
	Username string
}

// DiscordClient is the platform surface consumed by the rules runtime and
// the bingo engine. Implementations are bound to one live bot session.
type DiscordClient interface {
	// GetBotUser returns the account the session is logged in as.
	GetBotUser() (*DiscordUser, error)

	// ReplyToInteraction responds to a slash command invocation.
	ReplyToInteraction(interaction *discordgo.Interaction, content string) error
	ReplyToInteractionEmbed(interaction *discordgo.Interaction, embed *discordgo.MessageEmbed) error

	// SendChannelMessage posts to a channel and returns the message id.
	SendChannelMessage(channelID, content string) (string, error)
	SendChannelEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error)

	// SendDirectMessage DMs a user. Returns the DM channel id and message
	// id; fails when the user has DMs closed.
	SendDirectMessage(userID, content string) (channelID string, messageID string, err error)

	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error

	// AddReaction reacts to a message as the bot, used to pre-seed the
	// bingo confirmation emoji.
	AddReaction(channelID, messageID, emoji string) error

	// RegisterCommands replaces the registered application command set in
	// one bulk call, guild-scoped when guildID is non-empty.
	RegisterCommands(guildID string, commands []*discordgo.ApplicationCommand) error
}

// WebhookClient posts JSON payloads to configured webhook URLs.
type WebhookClient interface {
	Post(ctx context.Context, url string, payload map[string]any) (status int, err error)
}

// ControlClient is the shared lifecycle of the OBS and Streamer.bot
// WebSocket connections.
type ControlClient interface {
	Connect(ctx context.Context, url string) error
	IsConnected() bool
	Close()
}

// OBSClient drives OBS via its WebSocket request protocol.
type OBSClient interface {
	ControlClient
	SendRequest(requestType string, requestData map[string]any) error
}

// StreamerbotClient drives Streamer.bot via its WebSocket action protocol.
type StreamerbotClient interface {
	ControlClient
	Send(action string, data map[string]any) error
}
