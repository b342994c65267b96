package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dopplerdeck/dopplerdeck/internal/lavalink"
	"github.com/dopplerdeck/dopplerdeck/internal/repositories/restriction"
	"github.com/dopplerdeck/dopplerdeck/internal/services/session"
	zlog "github.com/rs/zerolog/log"
)

const presenceInterval = 20 * time.Second

// Bot represents the Discord bot instance. It owns command
// registration, routes gateway voice traffic to the node client, and
// pumps node events into the session engine.
type Bot struct {
	session         *discordgo.Session
	commands        map[string]CommandHandler
	commandIDs      map[string]string // Maps command name to command ID
	sessionService  session.Service
	node            *lavalink.Client
	restrictionRepo restriction.Repository
	renderer        *Renderer
	config          *Config

	cancel context.CancelFunc
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the shared gateway connection; the bot does not open
	// or close it on its own beyond Start/Stop
	Session *discordgo.Session

	// Application ID for the bot; falls back to the session user
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// SessionService is the per-guild session engine
	SessionService session.Service

	// Node is the audio node client, for voice handshake fan-in and the
	// event stream
	Node *lavalink.Client

	// RestrictionRepo backs the admin restriction command
	RestrictionRepo restriction.Repository

	// EmbedColor is the accent color for every embed
	EmbedColor int

	// QueuePageSize is the number of queue entries per embed page
	QueuePageSize int
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}
	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}
	if cfg.Node == nil {
		return nil, errors.New("node client cannot be nil")
	}
	if cfg.RestrictionRepo == nil {
		return nil, errors.New("restriction repository cannot be nil")
	}

	bot := &Bot{
		session:         cfg.Session,
		commands:        make(map[string]CommandHandler),
		commandIDs:      make(map[string]string),
		sessionService:  cfg.SessionService,
		node:            cfg.Node,
		restrictionRepo: cfg.RestrictionRepo,
		renderer:        &Renderer{EmbedColor: cfg.EmbedColor},
		config:          cfg,
	}

	cfg.Session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages

	cfg.Session.AddHandler(bot.handleInteraction)
	cfg.Session.AddHandler(bot.handleVoiceStateUpdate)
	cfg.Session.AddHandler(bot.handleVoiceServerUpdate)

	return bot, nil
}

// Renderer exposes the bot's embed renderer for collaborators that
// post messages outside the interaction flow
func (b *Bot) Renderer() *Renderer {
	return b.renderer
}

// Start opens the gateway connection, registers commands and launches
// the node event pump and the presence loop
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	musicCmd, err := NewMusicCommand(&MusicCommandConfig{
		SessionService: b.sessionService,
		Renderer:       b.renderer,
		QueuePageSize:  b.config.QueuePageSize,
	})
	if err != nil {
		return err
	}
	if err := b.RegisterCommand(musicCmd); err != nil {
		return fmt.Errorf("failed to register music command: %w", err)
	}

	restrictCmd, err := NewRestrictCommand(&RestrictCommandConfig{
		RestrictionRepo: b.restrictionRepo,
	})
	if err != nil {
		return err
	}
	if err := b.RegisterCommand(restrictCmd); err != nil {
		return fmt.Errorf("failed to register restrict command: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go b.pumpNodeEvents(ctx)
	go b.presenceLoop(ctx)

	zlog.Info().Msg("bot is now running")
	return nil
}

// Stop gracefully shuts down the bot: background loops first, then
// command cleanup, then the gateway connection
func (b *Bot) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}

	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			zlog.Warn().Err(err).Str("command", cmdName).Msg("failed to delete command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// A guild ID scopes the command to one guild for development;
	// otherwise it registers globally
	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	zlog.Info().Str("command", cmd.GetName()).Str("id", createdCmd.ID).Msg("registered command")

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	if h, ok := b.commands[name]; ok {
		if err := h.Handle(s, i); err != nil {
			zlog.Error().Err(err).Str("command", name).Str("guild", i.GuildID).Msg("command handler failed")
		}
	}
}

// handleVoiceStateUpdate feeds our own voice state to the node
// handshake and everyone else's to the engine's vacancy check
func (b *Bot) handleVoiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	b.node.OnVoiceStateUpdate(vs)

	if s.State.User != nil && vs.UserID == s.State.User.ID {
		return
	}

	before := ""
	if vs.BeforeUpdate != nil {
		before = vs.BeforeUpdate.ChannelID
	}

	b.sessionService.HandleVoiceState(context.Background(), &session.VoiceStateInput{
		GuildID:         vs.GuildID,
		BeforeChannelID: before,
		AfterChannelID:  vs.ChannelID,
	})
}

func (b *Bot) handleVoiceServerUpdate(s *discordgo.Session, vsu *discordgo.VoiceServerUpdate) {
	b.node.OnVoiceServerUpdate(vsu)
}

// pumpNodeEvents drains the node event stream into the engine's
// dispatcher methods
func (b *Bot) pumpNodeEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-b.node.Events():
			if !ok {
				zlog.Info().Msg("node event stream closed")
				return
			}
			b.dispatchNodeEvent(ctx, ev)
		}
	}
}

func (b *Bot) dispatchNodeEvent(ctx context.Context, ev lavalink.Event) {
	switch e := ev.(type) {
	case lavalink.TrackEndEvent:
		b.sessionService.HandleTrackEnd(ctx, e.GuildID, e.Reason)
	case lavalink.TrackExceptionEvent:
		b.sessionService.HandleTrackException(ctx, e.GuildID, e.Message)
	case lavalink.TrackStuckEvent:
		b.sessionService.HandleTrackStuck(ctx, e.GuildID)
	case lavalink.PlayerUpdateEvent:
		b.sessionService.HandlePlayerUpdate(ctx, e.GuildID, e.PositionMs)
	case lavalink.WebSocketClosedEvent:
		zlog.Warn().Str("guild", e.GuildID).Int("code", e.Code).Str("reason", e.Reason).Msg("node voice websocket closed")
	}
}

// presenceLoop refreshes the watching status with the number of live
// voice sessions
func (b *Bot) presenceLoop(ctx context.Context) {
	ticker := time.NewTicker(presenceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.refreshPresence()
		}
	}
}

func (b *Bot) refreshPresence() {
	count := b.activeVoiceCount()

	status := "an empty stage"
	if count == 1 {
		status = "1 voice channel"
	} else if count > 1 {
		status = fmt.Sprintf("%d voice channels", count)
	}

	if err := b.session.UpdateWatchStatus(0, status); err != nil {
		zlog.Warn().Err(err).Msg("failed to update presence")
	}
}

// activeVoiceCount counts the guilds where the bot currently occupies a
// voice channel, from the gateway state cache
func (b *Bot) activeVoiceCount() int {
	if b.session.State.User == nil {
		return 0
	}
	selfID := b.session.State.User.ID

	b.session.State.RLock()
	defer b.session.State.RUnlock()

	count := 0
	for _, guild := range b.session.State.Guilds {
		for _, vs := range guild.VoiceStates {
			if vs.UserID == selfID && vs.ChannelID != "" {
				count++
				break
			}
		}
	}
	return count
}
