package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/dopplerdeck/dopplerdeck/internal/services/session Service
//go:generate mockgen -package=mocks -destination=mocks/mock_collaborators.go github.com/dopplerdeck/dopplerdeck/internal/services/session Notifier,Occupancy,IntroTransport

import (
	"context"

	"github.com/dopplerdeck/dopplerdeck/internal/lavalink"
)

// Service is the per-guild session engine. Command operations are
// user-initiated and surface errors; Handle* methods are event-driven
// and never propagate failures.
type Service interface {
	// Join connects the guild to a voice channel, creating its session.
	// Idempotent: joining an already-connected guild returns the
	// existing session's channel unchanged.
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Play resolves a query and either starts playback immediately or
	// appends to the queue, connecting first if needed
	Play(ctx context.Context, input *PlayInput) (*PlayOutput, error)

	// Skip stops the current track; the node's end event advances the queue
	Skip(ctx context.Context, input *SkipInput) error

	// Pause toggles pause on the current track
	Pause(ctx context.Context, input *PauseInput) (*PauseOutput, error)

	// Stop halts playback and clears the queue, keeping the connection.
	// Autoplay is suppressed for the next track-end event.
	Stop(ctx context.Context, input *StopInput) error

	// SetVolume sets the player volume in percent
	SetVolume(ctx context.Context, input *SetVolumeInput) error

	// Disconnect tears the session down unconditionally. Idempotent.
	Disconnect(ctx context.Context, input *DisconnectInput) error

	// NowPlaying returns read-only playback state
	NowPlaying(ctx context.Context, input *NowPlayingInput) (*NowPlayingOutput, error)

	// QueuePage returns one page of the queue, clamping the page index
	QueuePage(ctx context.Context, input *QueuePageInput) (*QueuePageOutput, error)

	// HandleTrackEnd processes a track-end callback from the audio node
	HandleTrackEnd(ctx context.Context, guildID string, reason lavalink.EndReason)

	// HandleTrackException processes a playback exception callback
	HandleTrackException(ctx context.Context, guildID, message string)

	// HandleTrackStuck processes a stuck-track callback
	HandleTrackStuck(ctx context.Context, guildID string)

	// HandlePlayerUpdate records the node's periodic position report
	HandlePlayerUpdate(ctx context.Context, guildID string, positionMs int64)

	// HandleVoiceState processes a voice-state change in the guild and
	// tears the session down when the bound channel has no humans left
	HandleVoiceState(ctx context.Context, input *VoiceStateInput)
}

// Notifier delivers now-playing notifications to a session's bound
// text destination. Delivery is best-effort; errors are logged, never
// surfaced.
type Notifier interface {
	NowPlaying(ctx context.Context, notification *NowPlayingNotification) error
}

// Occupancy reports how many non-bot members currently occupy a voice
// channel
type Occupancy interface {
	HumanCount(guildID, channelID string) int
}

// IntroTransport plays the one-time intro clip over the native voice
// transport, which must be fully released before the audio node may
// claim the channel.
type IntroTransport interface {
	// PlayClip joins the channel, streams the clip until done or ctx
	// expires, and leaves
	PlayClip(ctx context.Context, guildID, channelID string) error

	// Attached reports whether a native voice session is still
	// registered for the guild
	Attached(guildID string) bool
}
