package session

import (
	"sync"
	"time"

	"github.com/dopplerdeck/dopplerdeck/internal/models"
)

// Session is the live playback state for one guild. All fields are
// guarded by the owning entry's lock; the registry is the single owner
// and a guild has at most one Session at a time.
type Session struct {
	GuildID string

	// VoiceChannelID is the bound voice channel
	VoiceChannelID string

	// TextChannelID is where playback notifications go
	TextChannelID string

	queue Queue

	// current is non-nil exactly while the node reports an active track
	current *models.QueuedTrack

	// lastPlayed survives queue exhaustion as the autoplay seed
	lastPlayed *models.TrackRef

	// stopped suppresses autoplay for the next track-end event only
	stopped bool

	state    State
	volume   int
	position time.Duration
}

func newSession(guildID, voiceChannelID, textChannelID string) *Session {
	return &Session{
		GuildID:        guildID,
		VoiceChannelID: voiceChannelID,
		TextChannelID:  textChannelID,
		state:          StateIdle,
		volume:         DefaultVolume,
	}
}

// entry is a guild's slot in the registry. Its mutex is the guild's
// serialization point: commands, node callbacks and presence updates
// for one guild all run under it, in admission order, while other
// guilds proceed independently. The registry mutex is never held
// across a blocking operation.
type entry struct {
	mu   sync.Mutex
	sess *Session

	// gone marks an entry removed from the registry; waiters must
	// re-fetch instead of reviving it
	gone bool
}
