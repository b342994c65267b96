package lavalink

//go:generate mockgen -package=mocks -destination=mocks/mock_node.go github.com/dopplerdeck/dopplerdeck/internal/lavalink Node

import (
	"context"

	"github.com/dopplerdeck/dopplerdeck/internal/models"
)

// Node is the control surface of the external audio node. One Node
// serves every guild; per-guild players are addressed by guild ID.
type Node interface {
	// Join binds a player to a voice channel, performing the gateway
	// voice handshake, and blocks until the node accepts the voice
	// state or ctx expires
	Join(ctx context.Context, guildID, channelID string) error

	// Leave detaches from voice and destroys the node-side player.
	Leave(ctx context.Context, guildID string) error

	// Resolve loads tracks for an identifier: a direct URL, a search
	// prefix ("ytsearch:..."), or a playlist URL
	Resolve(ctx context.Context, identifier string) (*LoadResult, error)

	// Play starts playback of track on the guild's player
	Play(ctx context.Context, guildID string, track models.TrackRef) error

	// Stop halts the current track; the node emits a TrackEndEvent with
	// reason "stopped"
	Stop(ctx context.Context, guildID string) error

	// SetPaused pauses or resumes the guild's player
	SetPaused(ctx context.Context, guildID string, paused bool) error

	// SetVolume sets player volume in percent (0-1000)
	SetVolume(ctx context.Context, guildID string, volume int) error

	// Events returns the stream of node callbacks. The channel is
	// closed when the node connection shuts down.
	Events() <-chan Event
}
