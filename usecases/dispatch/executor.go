package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aaroniusdersiebte/DBM/models"
)

// defaultEmbedColor is Discord blurple, used when embedColor is absent or
// malformed.
const defaultEmbedColor = 0x5865F2

// executeAction runs one action against the event context. Every failure
// is captured in the outcome instead of propagating, so one bad action
// never blocks the rest of the chain. The stop flag is set only by a
// conditional action evaluating to false.
func (d *DispatchUseCase) executeAction(
	ctx context.Context,
	action models.Action,
	ec *models.EventContext,
) (models.ActionOutcome, bool) {
	outcome := models.ActionOutcome{
		ActionID: action.ID,
		Name:     action.Name,
		Type:     action.Type,
	}

	switch action.Type {
	case models.ActionTypeSendMessage:
		content := InterpolateVariables(action.Content, ec)
		if err := d.sendOrReply(ec, content); err != nil {
			outcome.Detail = err.Error()
			return outcome, false
		}
		outcome.OK = true

	case models.ActionTypeSendEmbed:
		embed := &discordgo.MessageEmbed{
			Title:       InterpolateVariables(action.EmbedTitle, ec),
			Description: InterpolateVariables(action.EmbedDescription, ec),
			Color:       parseEmbedColor(action.EmbedColor),
		}
		if err := d.sendOrReplyEmbed(ec, embed); err != nil {
			outcome.Detail = err.Error()
			return outcome, false
		}
		outcome.OK = true

	case models.ActionTypeSendDM:
		if ec.User == nil {
			outcome.Detail = "no user in context"
			return outcome, false
		}
		content := InterpolateVariables(action.Content, ec)
		// Users with closed DMs are expected; report, don't propagate.
		if _, _, err := d.discordClient.SendDirectMessage(ec.User.ID, content); err != nil {
			outcome.Detail = fmt.Sprintf("could not send DM: %v", err)
			return outcome, false
		}
		outcome.OK = true
		outcome.Detail = fmt.Sprintf("DM sent to %s", ec.User.Username)

	case models.ActionTypeAddRole:
		if err := d.changeRole(ec, action.RoleID, true); err != nil {
			outcome.Detail = err.Error()
			return outcome, false
		}
		outcome.OK = true

	case models.ActionTypeRemoveRole:
		if err := d.changeRole(ec, action.RoleID, false); err != nil {
			outcome.Detail = err.Error()
			return outcome, false
		}
		outcome.OK = true

	case models.ActionTypeWebhookCall:
		status, err := d.callWebhook(ctx, action, ec)
		if err != nil {
			outcome.Detail = err.Error()
			return outcome, false
		}
		outcome.OK = true
		outcome.Detail = fmt.Sprintf("webhook responded with status %d", status)

	case models.ActionTypeDelay:
		seconds := action.Seconds
		if seconds < 1 {
			seconds = 1
		}
		// Suspends this chain in place; independent event chains keep
		// running on their own handler goroutines.
		select {
		case <-time.After(time.Duration(seconds) * time.Second):
			outcome.OK = true
			outcome.Detail = fmt.Sprintf("waited %d seconds", seconds)
		case <-ctx.Done():
			outcome.Detail = "delay interrupted by shutdown"
			return outcome, false
		}

	case models.ActionTypeOBSAction:
		data := interpolateMap(action.OBSRequestData, ec)
		if err := d.obsClient.SendRequest(action.OBSRequestType, data); err != nil {
			outcome.Detail = err.Error()
			return outcome, false
		}
		outcome.OK = true
		outcome.Detail = action.OBSRequestType

	case models.ActionTypeStreamerbotAction:
		data := interpolateMap(action.StreamerbotData, ec)
		if err := d.streamerbotClient.Send(action.StreamerbotAction, data); err != nil {
			outcome.Detail = err.Error()
			return outcome, false
		}
		outcome.OK = true
		outcome.Detail = action.StreamerbotAction

	case models.ActionTypeConditional:
		if d.evaluateCondition(action, ec) {
			outcome.OK = true
			outcome.Detail = "condition met"
			return outcome, false
		}
		// A false condition is a normal short-circuit, not an error.
		outcome.OK = true
		outcome.Detail = "condition not met"
		return outcome, true

	default:
		// Hand-edited config files can carry types this build does not
		// know; report and keep the chain going.
		outcome.Detail = fmt.Sprintf("action type %s not implemented", action.Type)
		return outcome, false
	}

	return outcome, false
}

// sendOrReply prefers replying to the originating interaction and falls
// back to posting in the channel.
func (d *DispatchUseCase) sendOrReply(ec *models.EventContext, content string) error {
	if ec.Interaction != nil {
		return d.discordClient.ReplyToInteraction(ec.Interaction, content)
	}
	if ec.Channel != nil {
		_, err := d.discordClient.SendChannelMessage(ec.Channel.ID, content)
		return err
	}
	return fmt.Errorf("no interaction or channel in context")
}

func (d *DispatchUseCase) sendOrReplyEmbed(ec *models.EventContext, embed *discordgo.MessageEmbed) error {
	if ec.Interaction != nil {
		return d.discordClient.ReplyToInteractionEmbed(ec.Interaction, embed)
	}
	if ec.Channel != nil {
		_, err := d.discordClient.SendChannelEmbed(ec.Channel.ID, embed)
		return err
	}
	return fmt.Errorf("no interaction or channel in context")
}

func (d *DispatchUseCase) changeRole(ec *models.EventContext, roleID string, add bool) error {
	if ec.Member == nil || ec.User == nil {
		return fmt.Errorf("no resolvable member in context")
	}
	if roleID == "" {
		return fmt.Errorf("no roleId configured")
	}
	if ec.Guild == nil {
		return fmt.Errorf("no guild in context")
	}
	if add {
		return d.discordClient.AddRole(ec.Guild.ID, ec.User.ID, roleID)
	}
	return d.discordClient.RemoveRole(ec.Guild.ID, ec.User.ID, roleID)
}

func (d *DispatchUseCase) callWebhook(
	ctx context.Context,
	action models.Action,
	ec *models.EventContext,
) (int, error) {
	payload := map[string]any{}
	if action.Payload != "" {
		interpolated := InterpolateVariables(action.Payload, ec)
		if err := json.Unmarshal([]byte(interpolated), &payload); err != nil {
			return 0, fmt.Errorf("invalid webhook payload JSON: %w", err)
		}
	}
	return d.webhookClient.Post(ctx, action.WebhookURL, payload)
}

func (d *DispatchUseCase) evaluateCondition(action models.Action, ec *models.EventContext) bool {
	switch action.ConditionType {
	case models.ConditionHasRole:
		if ec.Member == nil {
			return false
		}
		for _, roleID := range ec.Member.RoleIDs {
			if roleID == action.ConditionValue {
				return true
			}
		}
		return false

	case models.ConditionInChannel:
		if ec.Channel == nil {
			return false
		}
		return ec.Channel.ID == action.ConditionValue || ec.Channel.Name == action.ConditionValue

	case models.ConditionMessageContains:
		if ec.Message == nil {
			return false
		}
		return strings.Contains(
			strings.ToLower(ec.Message.Content),
			strings.ToLower(action.ConditionValue),
		)

	case models.ConditionIsModerator:
		return ec.Member != nil && ec.Member.IsModerator

	default:
		return false
	}
}

// parseEmbedColor parses a #RRGGBB hex string, falling back to the
// default on malformed or absent input.
func parseEmbedColor(hex string) int {
	cleaned := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(cleaned) != 6 {
		return defaultEmbedColor
	}
	value, err := strconv.ParseInt(cleaned, 16, 32)
	if err != nil {
		return defaultEmbedColor
	}
	return int(value)
}

// interpolateMap applies variable interpolation to every string value of
// a request data map.
func interpolateMap(data map[string]any, ec *models.EventContext) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for key, value := range data {
		if s, ok := value.(string); ok {
			out[key] = InterpolateVariables(s, ec)
		} else {
			out[key] = value
		}
	}
	return out
}
