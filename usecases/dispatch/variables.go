package dispatch

import (
	"strings"
	"time"

	"github.com/aaroniusdersiebte/DBM/models"
)

// InterpolateVariables substitutes the recognized placeholder tokens in a
// template with values from the event context. Absent fields become the
// empty string; unrecognized tokens are left verbatim.
func InterpolateVariables(template string, ec *models.EventContext) string {
	if template == "" {
		return ""
	}

	now := time.Now()

	var userID, username, displayName, mention string
	if ec != nil && ec.User != nil {
		userID = ec.User.ID
		username = ec.User.Username
		displayName = ec.User.DisplayName
		if displayName == "" {
			displayName = ec.User.Username
		}
		mention = "<@" + ec.User.ID + ">"
	}

	var messageContent string
	if ec != nil && ec.Message != nil {
		messageContent = ec.Message.Content
	}

	var channelName, channelMention string
	if ec != nil && ec.Channel != nil {
		channelName = ec.Channel.Name
		channelMention = "<#" + ec.Channel.ID + ">"
	}

	var guildName string
	if ec != nil && ec.Guild != nil {
		guildName = ec.Guild.Name
	}

	replacer := strings.NewReplacer(
		"{user.id}", userID,
		"{user.username}", username,
		"{user.displayName}", displayName,
		"{user.mention}", mention,
		"{message.content}", messageContent,
		"{channel.name}", channelName,
		"{channel.mention}", channelMention,
		"{guild.name}", guildName,
		"{trigger.timestamp}", now.Format(time.RFC3339),
		"{date}", now.Format("02.01.2006"),
		"{time}", now.Format("15:04:05"),
	)
	return replacer.Replace(template)
}
