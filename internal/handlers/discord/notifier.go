package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/dopplerdeck/dopplerdeck/internal/services/session"
)

// ChannelNotifier posts now-playing embeds to a session's bound text
// channel
type ChannelNotifier struct {
	session  *discordgo.Session
	renderer *Renderer
}

// NewChannelNotifier creates a notifier over a gateway session
func NewChannelNotifier(discordSession *discordgo.Session, renderer *Renderer) *ChannelNotifier {
	return &ChannelNotifier{session: discordSession, renderer: renderer}
}

// NowPlaying posts the announcement embed. Sessions without a bound
// text channel stay silent.
func (n *ChannelNotifier) NowPlaying(ctx context.Context, notification *session.NowPlayingNotification) error {
	if notification.TextChannelID == "" {
		return nil
	}

	_, err := n.session.ChannelMessageSendEmbed(notification.TextChannelID, n.renderer.AnnounceEmbed(notification))
	if err != nil {
		return fmt.Errorf("failed to post now-playing message: %w", err)
	}
	return nil
}
