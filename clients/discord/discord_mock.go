package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"github.com/aaroniusdersiebte/DBM/clients"
)

type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) GetBotUser() (*clients.DiscordUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordUser), args.Error(1)
}

func (m *MockDiscordClient) ReplyToInteraction(interaction *discordgo.Interaction, content string) error {
	args := m.Called(interaction, content)
	return args.Error(0)
}

func (m *MockDiscordClient) ReplyToInteractionEmbed(
	interaction *discordgo.Interaction,
	embed *discordgo.MessageEmbed,
) error {
	args := m.Called(interaction, embed)
	return args.Error(0)
}

func (m *MockDiscordClient) SendChannelMessage(channelID, content string) (string, error) {
	args := m.Called(channelID, content)
	return args.String(0), args.Error(1)
}

func (m *MockDiscordClient) SendChannelEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	args := m.Called(channelID, embed)
	return args.String(0), args.Error(1)
}

func (m *MockDiscordClient) SendDirectMessage(userID, content string) (string, string, error) {
	args := m.Called(userID, content)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockDiscordClient) AddRole(guildID, userID, roleID string) error {
	args := m.Called(guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockDiscordClient) RemoveRole(guildID, userID, roleID string) error {
	args := m.Called(guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockDiscordClient) AddReaction(channelID, messageID, emoji string) error {
	args := m.Called(channelID, messageID, emoji)
	return args.Error(0)
}

func (m *MockDiscordClient) RegisterCommands(guildID string, commands []*discordgo.ApplicationCommand) error {
	args := m.Called(guildID, commands)
	return args.Error(0)
}
