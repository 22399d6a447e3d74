// Package dispatch routes normalized platform events to the triggers
// that match them and drives each trigger's action chain.
package dispatch

import (
	"context"
	"fmt"
	"log"

	"github.com/aaroniusdersiebte/DBM/clients"
	"github.com/aaroniusdersiebte/DBM/logstream"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/services"
	"github.com/aaroniusdersiebte/DBM/utils"
)

// DispatchUseCase is the trigger-matching and action-execution engine.
// Configuration is read fresh from the store on every event, so edits
// take effect on the very next dispatch without a restart.
type DispatchUseCase struct {
	botConfigService  services.BotConfigService
	discordClient     clients.DiscordClient
	webhookClient     clients.WebhookClient
	obsClient         clients.OBSClient
	streamerbotClient clients.StreamerbotClient
	logs              *logstream.Stream
}

func NewDispatchUseCase(
	botConfigService services.BotConfigService,
	discordClient clients.DiscordClient,
	webhookClient clients.WebhookClient,
	obsClient clients.OBSClient,
	streamerbotClient clients.StreamerbotClient,
	logs *logstream.Stream,
) *DispatchUseCase {
	return &DispatchUseCase{
		botConfigService:  botConfigService,
		discordClient:     discordClient,
		webhookClient:     webhookClient,
		obsClient:         obsClient,
		streamerbotClient: streamerbotClient,
		logs:              logs,
	}
}

// ProcessCommandEvent handles a slash command invocation. Slash-command
// triggers are checked first, then the legacy flat command list. An
// unknown command is logged and otherwise ignored.
func (d *DispatchUseCase) ProcessCommandEvent(ctx context.Context, commandName string, ec *models.EventContext) error {
	utils.AssertInvariant(ec != nil, "event context cannot be nil")

	config := d.botConfigService.LoadConfig()

	for _, trigger := range config.Triggers {
		if trigger.Type == models.TriggerTypeSlashCommand && trigger.Name == commandName {
			d.logs.Info(fmt.Sprintf("Trigger found for /%s, executing %d actions", commandName, len(trigger.Actions)), nil)
			d.executeTriggerChain(ctx, config, trigger, ec)
			return nil
		}
	}

	for _, command := range config.Commands {
		if command.Name == commandName {
			d.logs.Info(fmt.Sprintf("Legacy command found for /%s", commandName), nil)
			d.executeActions(ctx, command.Actions, ec)
			return nil
		}
	}

	d.logs.Info(fmt.Sprintf("No trigger or command found for /%s", commandName), nil)
	return nil
}

// ProcessMessageEvent evaluates every message_pattern trigger against the
// message. Triggers are evaluated in configuration order and every match
// fires independently; one message may fire several triggers.
func (d *DispatchUseCase) ProcessMessageEvent(ctx context.Context, ec *models.EventContext) error {
	utils.AssertInvariant(ec != nil && ec.Message != nil, "message event context requires a message")

	config := d.botConfigService.LoadConfig()

	checked := 0
	for _, trigger := range config.Triggers {
		if trigger.Type != models.TriggerTypeMessagePattern {
			continue
		}
		checked++
		if MatchesPattern(ec.Message.Content, trigger.Pattern) {
			d.logs.Info(fmt.Sprintf("Pattern match found for trigger: %s", trigger.Name), nil)
			d.executeTriggerChain(ctx, config, trigger, ec)
		}
	}

	log.Printf("📨 Message %q checked against %d pattern triggers",
		utils.Truncate(ec.Message.Content, 50), checked)
	return nil
}

// ProcessReactionEvent evaluates every message_reaction trigger against
// the reaction emoji; every match fires independently. Reactions from
// bot users never fire triggers.
func (d *DispatchUseCase) ProcessReactionEvent(ctx context.Context, ec *models.EventContext) error {
	utils.AssertInvariant(ec != nil && ec.Reaction != nil, "reaction event context requires a reaction")

	if ec.User != nil && ec.User.IsBot {
		return nil
	}

	config := d.botConfigService.LoadConfig()

	for _, trigger := range config.Triggers {
		if trigger.Type != models.TriggerTypeMessageReaction {
			continue
		}
		if MatchesReaction(ec.Reaction.EmojiName, ec.Reaction.EmojiID, trigger.Emoji) {
			d.logs.Info(fmt.Sprintf("Reaction match found for trigger: %s", trigger.Name), nil)
			d.executeTriggerChain(ctx, config, trigger, ec)
		}
	}
	return nil
}

// ProcessTimeTrigger fires one time_based trigger from the scheduler.
// The trigger is re-resolved by id so config edits between ticks apply.
func (d *DispatchUseCase) ProcessTimeTrigger(ctx context.Context, triggerID string) error {
	config := d.botConfigService.LoadConfig()

	for _, trigger := range config.Triggers {
		if trigger.ID == triggerID && trigger.Type == models.TriggerTypeTimeBased {
			d.logs.Info(fmt.Sprintf("Time trigger fired: %s", trigger.Name), nil)
			d.executeTriggerChain(ctx, config, trigger, &models.EventContext{})
			return nil
		}
	}

	d.logs.Warn(fmt.Sprintf("Time trigger %s no longer exists, skipping", triggerID), nil)
	return nil
}

// executeTriggerChain resolves the trigger's action id references against
// the current config and runs them strictly in order. A dangling action
// id yields a reported outcome, not an abort.
func (d *DispatchUseCase) executeTriggerChain(
	ctx context.Context,
	config *models.BotConfig,
	trigger models.Trigger,
	ec *models.EventContext,
) {
	if len(trigger.Actions) == 0 {
		d.logs.Info(fmt.Sprintf("Trigger %s has no actions", trigger.Name), nil)
		return
	}

	for _, actionID := range trigger.Actions {
		action, found := findAction(config.Actions, actionID)
		if !found {
			d.logs.Error(fmt.Sprintf("Action %s not found (referenced by trigger %s)", actionID, trigger.Name), nil)
			continue
		}

		outcome, stop := d.executeAction(ctx, action, ec)
		d.reportOutcome(outcome)
		if stop {
			d.logs.Info(fmt.Sprintf("Condition not met, skipping remaining actions of trigger %s", trigger.Name), nil)
			return
		}
	}
}

// executeActions runs inline action definitions (legacy commands).
func (d *DispatchUseCase) executeActions(ctx context.Context, actions []models.Action, ec *models.EventContext) {
	for _, action := range actions {
		outcome, stop := d.executeAction(ctx, action, ec)
		d.reportOutcome(outcome)
		if stop {
			return
		}
	}
}

func (d *DispatchUseCase) reportOutcome(outcome models.ActionOutcome) {
	if outcome.OK {
		d.logs.Success(fmt.Sprintf("Action executed: %s (%s)", outcome.Name, outcome.Type), outcome.Detail)
		return
	}
	d.logs.Error(fmt.Sprintf("Action failed: %s (%s)", outcome.Name, outcome.Type), outcome.Detail)
}

func findAction(actions []models.Action, id string) (models.Action, bool) {
	for _, action := range actions {
		if action.ID == id {
			return action, true
		}
	}
	return models.Action{}, false
}
