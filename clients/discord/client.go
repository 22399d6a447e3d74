package discord

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/aaroniusdersiebte/DBM/clients"
)

// Client implements clients.DiscordClient on top of a discordgo session.
// The session is bound per bot run by the session manager; calls made
// while no session is bound fail with an explicit error.
type Client struct {
	mu      sync.RWMutex
	session *discordgo.Session
}

func NewClient() *Client {
	return &Client{}
}

// Bind attaches the live session for the current bot run.
func (c *Client) Bind(session *discordgo.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

// Unbind detaches the session on teardown.
func (c *Client) Unbind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

func (c *Client) sdk() (*discordgo.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil, fmt.Errorf("no active bot session")
	}
	return c.session, nil
}

func (c *Client) GetBotUser() (*clients.DiscordUser, error) {
	sdk, err := c.sdk()
	if err != nil {
		return nil, err
	}
	if sdk.State == nil || sdk.State.User == nil {
		return nil, fmt.Errorf("bot user not available yet")
	}
	return &clients.DiscordUser{
		ID:       sdk.State.User.ID,
		Username: sdk.State.User.Username,
	}, nil
}

func (c *Client) ReplyToInteraction(interaction *discordgo.Interaction, content string) error {
	sdk, err := c.sdk()
	if err != nil {
		return err
	}
	err = sdk.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		return fmt.Errorf("failed to respond to interaction: %w", err)
	}
	return nil
}

func (c *Client) ReplyToInteractionEmbed(interaction *discordgo.Interaction, embed *discordgo.MessageEmbed) error {
	sdk, err := c.sdk()
	if err != nil {
		return err
	}
	err = sdk.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to respond to interaction with embed: %w", err)
	}
	return nil
}

func (c *Client) SendChannelMessage(channelID, content string) (string, error) {
	sdk, err := c.sdk()
	if err != nil {
		return "", err
	}
	message, err := sdk.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return message.ID, nil
}

func (c *Client) SendChannelEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	sdk, err := c.sdk()
	if err != nil {
		return "", err
	}
	message, err := sdk.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", fmt.Errorf("failed to send embed to channel %s: %w", channelID, err)
	}
	return message.ID, nil
}

func (c *Client) SendDirectMessage(userID, content string) (string, string, error) {
	sdk, err := c.sdk()
	if err != nil {
		return "", "", err
	}
	channel, err := sdk.UserChannelCreate(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to open DM channel for user %s: %w", userID, err)
	}
	message, err := sdk.ChannelMessageSend(channel.ID, content)
	if err != nil {
		return "", "", fmt.Errorf("failed to send DM to user %s: %w", userID, err)
	}
	return channel.ID, message.ID, nil
}

func (c *Client) AddRole(guildID, userID, roleID string) error {
	sdk, err := c.sdk()
	if err != nil {
		return err
	}
	if err := sdk.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		return fmt.Errorf("failed to add role %s to user %s: %w", roleID, userID, err)
	}
	return nil
}

func (c *Client) RemoveRole(guildID, userID, roleID string) error {
	sdk, err := c.sdk()
	if err != nil {
		return err
	}
	if err := sdk.GuildMemberRoleRemove(guildID, userID, roleID); err != nil {
		return fmt.Errorf("failed to remove role %s from user %s: %w", roleID, userID, err)
	}
	return nil
}

func (c *Client) AddReaction(channelID, messageID, emoji string) error {
	sdk, err := c.sdk()
	if err != nil {
		return err
	}
	if err := sdk.MessageReactionAdd(channelID, messageID, emoji); err != nil {
		return fmt.Errorf("failed to react to message %s: %w", messageID, err)
	}
	return nil
}

func (c *Client) RegisterCommands(guildID string, commands []*discordgo.ApplicationCommand) error {
	sdk, err := c.sdk()
	if err != nil {
		return err
	}
	if sdk.State == nil || sdk.State.User == nil {
		return fmt.Errorf("bot user not available yet")
	}
	_, err = sdk.ApplicationCommandBulkOverwrite(sdk.State.User.ID, guildID, commands)
	if err != nil {
		return fmt.Errorf("failed to bulk overwrite commands: %w", err)
	}
	return nil
}
