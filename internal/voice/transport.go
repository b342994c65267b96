package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bwmarrin/discordgo"
	zlog "github.com/rs/zerolog/log"
)

// Transport plays short opus clips over the native gateway voice
// connection. It is only used for the greeting clip; regular playback
// goes through the audio node.
type Transport struct {
	discord  *discordgo.Session
	clipPath string
}

// Config holds configuration for the voice transport
type Config struct {
	Discord  *discordgo.Session
	ClipPath string
}

// New creates a new clip transport
func New(cfg *Config) (*Transport, error) {
	if cfg == nil || cfg.Discord == nil {
		return nil, errors.New("discord session cannot be nil")
	}
	if cfg.ClipPath == "" {
		return nil, errors.New("clip path cannot be empty")
	}
	return &Transport{discord: cfg.Discord, clipPath: cfg.ClipPath}, nil
}

// PlayClip joins the channel, streams the clip until it ends or ctx
// expires, and disconnects. The voice connection is always released
// before returning.
func (t *Transport) PlayClip(ctx context.Context, guildID, channelID string) error {
	clip, err := os.Open(t.clipPath)
	if err != nil {
		return fmt.Errorf("failed to open clip %s: %w", t.clipPath, err)
	}
	defer clip.Close()

	vc, err := t.discord.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}
	defer func() {
		if err := vc.Disconnect(); err != nil {
			zlog.Warn().Err(err).Str("guild", guildID).Msg("failed to disconnect clip transport")
		}
	}()

	if err := vc.Speaking(true); err != nil {
		return fmt.Errorf("failed to set speaking: %w", err)
	}
	defer func() {
		if err := vc.Speaking(false); err != nil {
			zlog.Warn().Err(err).Str("guild", guildID).Msg("failed to clear speaking")
		}
	}()

	return t.stream(ctx, vc, newFrameReader(clip))
}

// stream pushes opus frames onto the connection until the clip ends or
// ctx is cancelled. The connection paces delivery; we only keep its
// send channel fed.
func (t *Transport) stream(ctx context.Context, vc *discordgo.VoiceConnection, frames *frameReader) error {
	for {
		frame, err := frames.ReadFrame()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to decode clip: %w", err)
		}

		select {
		case vc.OpusSend <- frame:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Attached reports whether a native voice connection is still
// registered for the guild
func (t *Transport) Attached(guildID string) bool {
	t.discord.RLock()
	defer t.discord.RUnlock()
	_, ok := t.discord.VoiceConnections[guildID]
	return ok
}
