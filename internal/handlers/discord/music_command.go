package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/dopplerdeck/dopplerdeck/internal/services/session"
	zlog "github.com/rs/zerolog/log"
)

// MusicCommand handles the /music slash command and its subcommands
type MusicCommand struct {
	BaseCommand
	sessionService session.Service
	renderer       *Renderer
	queuePageSize  int
}

// MusicCommandConfig holds configuration for the music command
type MusicCommandConfig struct {
	SessionService session.Service
	Renderer       *Renderer
	QueuePageSize  int
}

// NewMusicCommand creates a new music command handler
func NewMusicCommand(cfg *MusicCommandConfig) (*MusicCommand, error) {
	if cfg == nil || cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("renderer cannot be nil")
	}

	pageSize := cfg.QueuePageSize
	if pageSize < 1 {
		pageSize = 10
	}

	return &MusicCommand{
		BaseCommand: BaseCommand{
			Name:        "music",
			Description: "Play music in your voice channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Join your voice channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "play",
					Description: "Play a track or playlist",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "query",
							Description: "A URL or search terms",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "skip",
					Description: "Skip the current track",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pause",
					Description: "Pause or resume the current track",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "nowplaying",
					Description: "Show what is playing",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "queue",
					Description: "Show the queue",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "page",
							Description: "Page number",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "volume",
					Description: "Set the playback volume",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "percent",
							Description: "Volume from 0 to 200",
							Required:    true,
							MinValue:    newFloat(0),
							MaxValue:    200,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stop",
					Description: "Stop playback and clear the queue",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Leave the voice channel",
				},
			},
		},
		sessionService: cfg.SessionService,
		renderer:       cfg.Renderer,
		queuePageSize:  pageSize,
	}, nil
}

func newFloat(f float64) *float64 { return &f }

// Handle processes a /music interaction
func (c *MusicCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return RespondWithError(s, i, "Missing subcommand.")
	}
	sub := options[0]

	switch sub.Name {
	case "join":
		return c.handleJoin(ctx, s, i)
	case "play":
		return c.handlePlay(ctx, s, i, sub)
	case "skip":
		return c.handleSkip(ctx, s, i)
	case "pause":
		return c.handlePause(ctx, s, i)
	case "nowplaying":
		return c.handleNowPlaying(ctx, s, i)
	case "queue":
		return c.handleQueue(ctx, s, i, sub)
	case "volume":
		return c.handleVolume(ctx, s, i, sub)
	case "stop":
		return c.handleStop(ctx, s, i)
	case "leave":
		return c.handleLeave(ctx, s, i)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand %q.", sub.Name))
	}
}

// voiceChannelOf finds the voice channel the invoking member occupies,
// from the gateway state cache
func voiceChannelOf(s *discordgo.Session, i *discordgo.InteractionCreate) string {
	if i.Member == nil {
		return ""
	}
	vs, err := s.State.VoiceState(i.GuildID, i.Member.User.ID)
	if err != nil || vs == nil {
		return ""
	}
	return vs.ChannelID
}

// respondServiceError maps engine errors onto user-facing messages
func respondServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	var violation *session.RestrictionViolationError
	switch {
	case errors.As(err, &violation):
		return RespondWithError(s, i, fmt.Sprintf("Music is restricted to <#%s> on this server.", violation.ChannelID))
	case errors.Is(err, session.ErrNoVoiceChannel):
		return RespondWithError(s, i, "Join a voice channel first.")
	case errors.Is(err, session.ErrNotConnected):
		return RespondWithError(s, i, "I'm not connected to a voice channel.")
	case errors.Is(err, session.ErrNothingPlaying):
		return RespondWithError(s, i, "Nothing is playing right now.")
	case errors.Is(err, session.ErrNoResults):
		return RespondWithError(s, i, "No results for that query.")
	default:
		zlog.Error().Err(err).Str("guild", i.GuildID).Msg("music command failed")
		return RespondWithError(s, i, "Something went wrong, try again.")
	}
}

func (c *MusicCommand) handleJoin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.sessionService.Join(ctx, &session.JoinInput{
		GuildID:        i.GuildID,
		VoiceChannelID: voiceChannelOf(s, i),
		TextChannelID:  i.ChannelID,
	})
	if err != nil {
		return respondServiceError(s, i, err)
	}

	if !out.Created {
		return RespondWithMessage(s, i, fmt.Sprintf("Already connected to <#%s>.", out.ChannelID))
	}
	return RespondWithMessage(s, i, fmt.Sprintf("Joined <#%s>.", out.ChannelID))
}

func (c *MusicCommand) handlePlay(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	query := ""
	for _, opt := range sub.Options {
		if opt.Name == "query" {
			query = opt.StringValue()
		}
	}
	if query == "" {
		return RespondWithError(s, i, "Give me something to play.")
	}

	// resolving can outlive the initial response window
	if err := DeferResponse(s, i); err != nil {
		return err
	}

	out, err := c.sessionService.Play(ctx, &session.PlayInput{
		GuildID:        i.GuildID,
		VoiceChannelID: voiceChannelOf(s, i),
		TextChannelID:  i.ChannelID,
		RequesterID:    i.Member.User.ID,
		Query:          query,
	})
	if err != nil {
		return FollowUpWithMessage(s, i, userMessageFor(err))
	}

	return FollowUpWithEmbed(s, i, c.renderer.PlayResultEmbed(out))
}

// userMessageFor is the deferred-response twin of respondServiceError
func userMessageFor(err error) string {
	var violation *session.RestrictionViolationError
	switch {
	case errors.As(err, &violation):
		return fmt.Sprintf("Music is restricted to <#%s> on this server.", violation.ChannelID)
	case errors.Is(err, session.ErrNoVoiceChannel):
		return "Join a voice channel first."
	case errors.Is(err, session.ErrNoResults):
		return "No results for that query."
	default:
		zlog.Error().Err(err).Msg("play failed")
		return "Something went wrong, try again."
	}
}

func (c *MusicCommand) handleSkip(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := c.sessionService.Skip(ctx, &session.SkipInput{GuildID: i.GuildID}); err != nil {
		return respondServiceError(s, i, err)
	}
	return RespondWithMessage(s, i, "Skipped.")
}

func (c *MusicCommand) handlePause(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.sessionService.Pause(ctx, &session.PauseInput{GuildID: i.GuildID})
	if err != nil {
		return respondServiceError(s, i, err)
	}

	if out.Paused {
		return RespondWithMessage(s, i, "Paused.")
	}
	return RespondWithMessage(s, i, "Resumed.")
}

func (c *MusicCommand) handleNowPlaying(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.sessionService.NowPlaying(ctx, &session.NowPlayingInput{GuildID: i.GuildID})
	if err != nil {
		return respondServiceError(s, i, err)
	}
	return RespondWithEmbed(s, i, c.renderer.NowPlayingEmbed(out))
}

func (c *MusicCommand) handleQueue(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	page := 1
	for _, opt := range sub.Options {
		if opt.Name == "page" {
			page = int(opt.IntValue())
		}
	}

	out, err := c.sessionService.QueuePage(ctx, &session.QueuePageInput{
		GuildID:  i.GuildID,
		Page:     page,
		PageSize: c.queuePageSize,
	})
	if err != nil {
		return respondServiceError(s, i, err)
	}
	return RespondWithEmbed(s, i, c.renderer.QueueEmbed(out))
}

func (c *MusicCommand) handleVolume(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	volume := 0
	for _, opt := range sub.Options {
		if opt.Name == "percent" {
			volume = int(opt.IntValue())
		}
	}

	if err := c.sessionService.SetVolume(ctx, &session.SetVolumeInput{GuildID: i.GuildID, Volume: volume}); err != nil {
		return respondServiceError(s, i, err)
	}
	return RespondWithMessage(s, i, fmt.Sprintf("Volume set to %d%%.", volume))
}

func (c *MusicCommand) handleStop(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := c.sessionService.Stop(ctx, &session.StopInput{GuildID: i.GuildID}); err != nil {
		return respondServiceError(s, i, err)
	}
	return RespondWithMessage(s, i, "Stopped and cleared the queue.")
}

func (c *MusicCommand) handleLeave(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := c.sessionService.Disconnect(ctx, &session.DisconnectInput{GuildID: i.GuildID}); err != nil {
		return respondServiceError(s, i, err)
	}
	return RespondWithMessage(s, i, "Bye! 👋")
}
