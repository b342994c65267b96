package session

import (
	"time"

	"github.com/dopplerdeck/dopplerdeck/internal/common/clock"
	"github.com/dopplerdeck/dopplerdeck/internal/lavalink"
	"github.com/dopplerdeck/dopplerdeck/internal/models"
	"github.com/dopplerdeck/dopplerdeck/internal/repositories/restriction"
)

// State represents the observable playback state of a session
type State string

const (
	// StateIdle indicates a connected session with nothing playing
	StateIdle State = "idle"

	// StatePlaying indicates a track is playing
	StatePlaying State = "playing"

	// StatePaused indicates the current track is paused
	StatePaused State = "paused"
)

// DefaultVolume is the player volume for new sessions, in percent
const DefaultVolume = 100

// Config holds configuration for the session service
type Config struct {
	// Node is the external audio node
	Node lavalink.Node

	// RestrictionRepo is the per-guild voice restriction store
	RestrictionRepo restriction.Repository

	// Notifier delivers now-playing notifications
	Notifier Notifier

	// Occupancy reports voice channel occupancy
	Occupancy Occupancy

	// Intro plays the one-time intro clip. Nil disables the intro.
	Intro IntroTransport

	// Clock for queue timestamps
	Clock clock.Clock

	// PlaylistLimit caps how many tracks one playlist resolve may
	// enqueue. Defaults to 100.
	PlaylistLimit int

	// SearchPrefix is prepended to non-URL queries. Defaults to
	// "ytsearch:".
	SearchPrefix string

	// Intro sequencing knobs; zero values take the defaults below
	IntroClipCap      time.Duration // hard cap on clip playback (10s)
	IntroCooldown     time.Duration // fixed wait after release (500ms)
	IntroPollInterval time.Duration // release polling granularity (100ms)
	IntroPollAttempts int           // release polling attempts (20)
}

type JoinInput struct {
	GuildID string

	// VoiceChannelID is the channel the requesting user occupies
	VoiceChannelID string

	// TextChannelID is where playback notifications are delivered
	TextChannelID string
}

type JoinOutput struct {
	// ChannelID is the channel the session is bound to; for an
	// existing session this may differ from the requested channel
	ChannelID string

	// Created is false when the session already existed
	Created bool
}

type PlayInput struct {
	GuildID        string
	VoiceChannelID string
	TextChannelID  string
	RequesterID    string
	Query          string
}

type PlayOutput struct {
	// Queued is true when the track was appended behind a current
	// track rather than played immediately
	Queued bool

	// Position is the 1-based queue position when Queued
	Position int

	// Track is the played or first-enqueued track
	Track models.TrackRef

	// PlaylistName and PlaylistCount are set when the query resolved
	// to a playlist; PlaylistCount is the number actually enqueued
	// after the ingestion cap
	PlaylistName  string
	PlaylistCount int
}

type SkipInput struct {
	GuildID string
}

type PauseInput struct {
	GuildID string
}

type PauseOutput struct {
	// Paused is the state after the toggle
	Paused bool
}

type StopInput struct {
	GuildID string
}

type SetVolumeInput struct {
	GuildID string
	Volume  int
}

type DisconnectInput struct {
	GuildID string
}

type NowPlayingInput struct {
	GuildID string
}

type NowPlayingOutput struct {
	// Track is nil when nothing is playing
	Track       *models.TrackRef
	RequesterID string
	State       State
	Volume      int

	// Position is the node's last reported playback position
	Position time.Duration

	// UpNext previews the first few queued tracks
	UpNext []models.QueuedTrack
}

type QueuePageInput struct {
	GuildID  string
	Page     int
	PageSize int
}

type QueuePageOutput struct {
	Entries []models.QueuedTrack

	// Page is the clamped page index actually returned
	Page       int
	TotalPages int

	// TotalTracks counts the current track plus the queue
	TotalTracks int

	// TotalLength sums the current track and queue durations
	TotalLength time.Duration

	// Offset is the queue index of the first entry on this page
	Offset int

	Current            *models.TrackRef
	CurrentRequesterID string
	Position           time.Duration
}

type VoiceStateInput struct {
	GuildID string

	// BeforeChannelID and AfterChannelID are the member's channel
	// before and after the change; either may be empty
	BeforeChannelID string
	AfterChannelID  string
}

// NowPlayingNotification is delivered to the bound text destination on
// every transition into playing
type NowPlayingNotification struct {
	GuildID       string
	TextChannelID string
	Track         models.TrackRef

	// RequesterID is empty for autoplay-selected tracks
	RequesterID string
}
