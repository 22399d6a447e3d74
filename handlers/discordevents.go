package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"github.com/aaroniusdersiebte/DBM/clients"
	"github.com/aaroniusdersiebte/DBM/logstream"
	"github.com/aaroniusdersiebte/DBM/models"
	"github.com/aaroniusdersiebte/DBM/services"
	"github.com/aaroniusdersiebte/DBM/usecases/bingo"
	"github.com/aaroniusdersiebte/DBM/usecases/dispatch"
)

// DiscordEventsHandler is the event ingress adapter. It owns the
// discordgo session for one bot run, translates gateway events into
// EventContext values and routes them to the dispatch and bingo engines.
type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	discordClient    clients.DiscordClient
	dispatchUseCase  *dispatch.DispatchUseCase
	bingoUseCase     *bingo.BingoUseCase
	bingoService     services.BingoDataService
	botConfigService services.BotConfigService
	logs             *logstream.Stream
	ready            atomic.Bool
}

func NewDiscordEventsHandler(
	botToken string,
	discordClient clients.DiscordClient,
	dispatchUseCase *dispatch.DispatchUseCase,
	bingoUseCase *bingo.BingoUseCase,
	bingoService services.BingoDataService,
	botConfigService services.BotConfigService,
	logs *logstream.Stream,
) (*DiscordEventsHandler, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		discordClient:    discordClient,
		dispatchUseCase:  dispatchUseCase,
		bingoUseCase:     bingoUseCase,
		bingoService:     bingoService,
		botConfigService: botConfigService,
		logs:             logs,
	}

	session.AddHandler(handler.handleReadyEvent)
	session.AddHandler(handler.handleInteractionCreatedEvent)
	session.AddHandler(handler.handleMessageCreatedEvent)
	session.AddHandler(handler.handleReactionAddedEvent)

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers

	return handler, nil
}

// Session exposes the SDK session so the run manager can bind the
// platform client to it.
func (h *DiscordEventsHandler) Session() *discordgo.Session {
	return h.discordSDKClient
}

// StartBot opens the Discord gateway connection and starts listening.
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.discordSDKClient.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Printf("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot gracefully closes the Discord connection.
func (h *DiscordEventsHandler) StopBot() {
	h.ready.Store(false)
	h.discordSDKClient.Close()
}

// IsReady reports whether the gateway handshake has completed.
func (h *DiscordEventsHandler) IsReady() bool {
	return h.ready.Load()
}

// handleReadyEvent marks the session ready and syncs the application
// command set. A failed sync is logged but never tears down the session.
func (h *DiscordEventsHandler) handleReadyEvent(s *discordgo.Session, r *discordgo.Ready) {
	h.ready.Store(true)
	h.logs.Success(fmt.Sprintf("Bot logged in as %s", r.User.Username), nil)

	if err := h.syncCommands(); err != nil {
		h.logs.Warn("Slash command sync failed", err.Error())
	}
}

// syncCommands bulk-registers the current command surface: slash command
// triggers, legacy commands, and the two bingo commands when bingo is
// enabled.
func (h *DiscordEventsHandler) syncCommands() error {
	config := h.botConfigService.LoadConfig()
	bingoConfig := h.bingoService.LoadConfig()

	var commands []*discordgo.ApplicationCommand
	for _, trigger := range config.Triggers {
		if trigger.Type != models.TriggerTypeSlashCommand {
			continue
		}
		commands = append(commands, &discordgo.ApplicationCommand{
			Name:        commandName(trigger.Name),
			Description: commandDescription(trigger.Description),
		})
	}
	for _, command := range config.Commands {
		commands = append(commands, &discordgo.ApplicationCommand{
			Name:        commandName(command.Name),
			Description: commandDescription(command.Description),
		})
	}
	if bingoConfig.Enabled {
		commands = append(commands,
			&discordgo.ApplicationCommand{
				Name:        commandName(bingoConfig.SlashCommand),
				Description: "Starte ein neues Bingo-Spiel",
			},
			&discordgo.ApplicationCommand{
				Name:        commandName(bingoConfig.BingoCommand),
				Description: "Melde ein Bingo",
			},
		)
	}

	if err := h.discordClient.RegisterCommands(config.GuildID, commands); err != nil {
		return err
	}

	h.logs.Info(fmt.Sprintf("Registered %d slash commands", len(commands)), nil)
	return nil
}

// handleInteractionCreatedEvent handles slash command invocations. Bingo
// commands are checked before trigger dispatch so the game engine owns
// its command names.
func (h *DiscordEventsHandler) handleInteractionCreatedEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	log.Printf("📨 Slash command /%s received in guild %s", name, i.GuildID)

	ctx := context.Background()
	ec := h.buildInteractionContext(s, i)

	bingoConfig := h.bingoService.LoadConfig()
	if bingoConfig.Enabled {
		switch name {
		case commandName(bingoConfig.SlashCommand):
			if err := h.bingoUseCase.StartGame(ctx, ec); err != nil {
				h.logs.Error("Bingo start failed", err.Error())
			}
			return
		case commandName(bingoConfig.BingoCommand):
			if err := h.bingoUseCase.ClaimWin(ctx, ec); err != nil {
				h.logs.Error("Bingo win claim failed", err.Error())
			}
			return
		}
	}

	if err := h.dispatchUseCase.ProcessCommandEvent(ctx, name, ec); err != nil {
		h.logs.Error(fmt.Sprintf("Failed to process command /%s", name), err.Error())
	}
}

// handleMessageCreatedEvent routes guild messages to the pattern
// triggers. Messages from bots, including our own, are never dispatched.
func (h *DiscordEventsHandler) handleMessageCreatedEvent(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	ctx := context.Background()
	ec := h.buildMessageContext(s, m)

	if err := h.dispatchUseCase.ProcessMessageEvent(ctx, ec); err != nil {
		h.logs.Error("Failed to process message event", err.Error())
	}
}

// handleReactionAddedEvent routes reactions, giving the bingo engine
// first refusal: a reaction on a tracked card cell is consumed as an
// event claim and never reaches the reaction triggers. Reactions from
// bots, including our own, are never dispatched.
func (h *DiscordEventsHandler) handleReactionAddedEvent(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}

	ctx := context.Background()
	ec, err := h.buildReactionContext(s, r)
	if err != nil {
		log.Printf("⚠️ Dropping unresolvable reaction on message %s: %v", r.MessageID, err)
		return
	}
	if ec.User.IsBot {
		return
	}

	handled, err := h.bingoUseCase.HandleReaction(ctx, ec)
	if err != nil {
		h.logs.Error("Bingo reaction handling failed", err.Error())
		return
	}
	if handled {
		return
	}

	if err := h.dispatchUseCase.ProcessReactionEvent(ctx, ec); err != nil {
		h.logs.Error("Failed to process reaction event", err.Error())
	}
}

// buildInteractionContext assembles the dispatch context for a slash
// command invocation.
func (h *DiscordEventsHandler) buildInteractionContext(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
) *models.EventContext {
	ec := &models.EventContext{
		Interaction:   i.Interaction,
		Channel:       h.resolveChannel(s, i.ChannelID),
		Guild:         h.resolveGuild(s, i.GuildID),
		CommandParams: extractParameters(i),
	}

	if i.Member != nil && i.Member.User != nil {
		ec.User = mapUser(i.Member.User)
		ec.Member = mapMember(i.Member)
	} else if i.User != nil {
		ec.User = mapUser(i.User)
	}
	return ec
}

func (h *DiscordEventsHandler) buildMessageContext(
	s *discordgo.Session,
	m *discordgo.MessageCreate,
) *models.EventContext {
	ec := &models.EventContext{
		User:    mapUser(m.Author),
		Channel: h.resolveChannel(s, m.ChannelID),
		Guild:   h.resolveGuild(s, m.GuildID),
		Message: &models.EventMessage{ID: m.ID, Content: m.Content},
	}
	if m.Member != nil {
		member := *m.Member
		member.User = m.Author
		ec.Member = mapMember(&member)
	}
	return ec
}

// buildReactionContext resolves the partial reaction payload. The
// reacting user is fetched explicitly since the gateway only carries
// their id; resolution failure drops the event.
func (h *DiscordEventsHandler) buildReactionContext(
	s *discordgo.Session,
	r *discordgo.MessageReactionAdd,
) (*models.EventContext, error) {
	user, err := s.User(r.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reacting user: %w", err)
	}

	ec := &models.EventContext{
		User:    mapUser(user),
		Channel: h.resolveChannel(s, r.ChannelID),
		Guild:   h.resolveGuild(s, r.GuildID),
		Reaction: &models.EventReaction{
			EmojiName: r.Emoji.Name,
			EmojiID:   r.Emoji.ID,
			MessageID: r.MessageID,
		},
	}

	if r.GuildID != "" {
		if member, err := s.GuildMember(r.GuildID, r.UserID); err == nil {
			ec.Member = mapMember(member)
		}
	}
	return ec, nil
}

func (h *DiscordEventsHandler) resolveChannel(s *discordgo.Session, channelID string) *models.EventChannel {
	if channelID == "" {
		return nil
	}
	channel := &models.EventChannel{ID: channelID}
	if resolved, err := s.Channel(channelID); err == nil {
		channel.Name = resolved.Name
	}
	return channel
}

func (h *DiscordEventsHandler) resolveGuild(s *discordgo.Session, guildID string) *models.EventGuild {
	if guildID == "" {
		return nil
	}
	guild := &models.EventGuild{ID: guildID}
	if resolved, err := s.Guild(guildID); err == nil {
		guild.Name = resolved.Name
	}
	return guild
}

func mapUser(user *discordgo.User) *models.EventUser {
	displayName := user.GlobalName
	if displayName == "" {
		displayName = user.Username
	}
	return &models.EventUser{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: displayName,
		IsBot:       user.Bot,
	}
}

func mapMember(member *discordgo.Member) *models.EventMember {
	return &models.EventMember{
		RoleIDs:     member.Roles,
		IsModerator: member.Permissions&discordgo.PermissionManageMessages != 0,
	}
}

// extractParameters flattens the interaction's options into the
// name -> value map exposed to variable interpolation.
func extractParameters(i *discordgo.InteractionCreate) map[string]string {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return nil
	}
	params := make(map[string]string, len(options))
	for _, option := range options {
		params[option.Name] = fmt.Sprintf("%v", option.Value)
	}
	return params
}

// commandName normalizes a configured command, stripping the leading
// slash operators tend to type.
func commandName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "/")
}

func commandDescription(description string) string {
	if description == "" {
		return "Konfigurierter Befehl"
	}
	return description
}
