package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/dopplerdeck/dopplerdeck/internal/repositories/restriction"
	zlog "github.com/rs/zerolog/log"
)

// RestrictCommand handles the /restrict admin command for pinning the
// bot to one voice channel per guild
type RestrictCommand struct {
	BaseCommand
	restrictionRepo restriction.Repository
}

// RestrictCommandConfig holds configuration for the restrict command
type RestrictCommandConfig struct {
	RestrictionRepo restriction.Repository
}

// NewRestrictCommand creates a new restrict command handler
func NewRestrictCommand(cfg *RestrictCommandConfig) (*RestrictCommand, error) {
	if cfg == nil || cfg.RestrictionRepo == nil {
		return nil, errors.New("restriction repository cannot be nil")
	}

	return &RestrictCommand{
		BaseCommand: BaseCommand{
			Name:        "restrict",
			Description: "Limit music sessions to one voice channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Restrict music to a voice channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionChannel,
							Name:         "channel",
							Description:  "The only channel the bot may join",
							Required:     true,
							ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Remove the restriction",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the current restriction",
				},
			},
		},
		restrictionRepo: cfg.RestrictionRepo,
	}, nil
}

// GetCommand returns the application command definition, gated to
// members who can manage the server
func (c *RestrictCommand) GetCommand() *discordgo.ApplicationCommand {
	cmd := c.BaseCommand.GetCommand()
	perms := int64(discordgo.PermissionManageServer)
	cmd.DefaultMemberPermissions = &perms
	return cmd
}

// Handle processes a /restrict interaction
func (c *RestrictCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return RespondWithError(s, i, "Missing subcommand.")
	}
	sub := options[0]

	switch sub.Name {
	case "set":
		return c.handleSet(ctx, s, i, sub)
	case "clear":
		return c.handleClear(ctx, s, i)
	case "show":
		return c.handleShow(ctx, s, i)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand %q.", sub.Name))
	}
}

func (c *RestrictCommand) handleSet(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	var channelID string
	for _, opt := range sub.Options {
		if opt.Name == "channel" {
			channelID = opt.ChannelValue(nil).ID
		}
	}
	if channelID == "" {
		return RespondWithError(s, i, "Pick a voice channel.")
	}

	err := c.restrictionRepo.SetRestriction(ctx, &restriction.SetRestrictionInput{
		GuildID:   i.GuildID,
		ChannelID: channelID,
	})
	if err != nil {
		zlog.Error().Err(err).Str("guild", i.GuildID).Msg("failed to set restriction")
		return RespondWithError(s, i, "Could not save the restriction.")
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Music is now restricted to <#%s>.", channelID))
}

func (c *RestrictCommand) handleClear(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := c.restrictionRepo.RemoveRestriction(ctx, &restriction.RemoveRestrictionInput{GuildID: i.GuildID}); err != nil {
		zlog.Error().Err(err).Str("guild", i.GuildID).Msg("failed to clear restriction")
		return RespondWithError(s, i, "Could not clear the restriction.")
	}
	return RespondWithMessage(s, i, "Restriction removed, I can join any voice channel.")
}

func (c *RestrictCommand) handleShow(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.restrictionRepo.GetRestriction(ctx, &restriction.GetRestrictionInput{GuildID: i.GuildID})
	if err != nil {
		if errors.Is(err, restriction.ErrRestrictionNotFound) {
			return RespondWithMessage(s, i, "No restriction set, I can join any voice channel.")
		}
		zlog.Error().Err(err).Str("guild", i.GuildID).Msg("failed to read restriction")
		return RespondWithError(s, i, "Could not read the restriction.")
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Music is restricted to <#%s>.", out.ChannelID))
}
