package models

import "time"

// Source classifies where a resolved track came from
type Source string

const (
	// SourceTrack is an ordinary single track (direct URL or search hit)
	SourceTrack Source = "track"

	// SourcePlaylistItem is a track that arrived as part of a playlist
	SourcePlaylistItem Source = "playlist_item"

	// SourceStream is a live stream with no known length
	SourceStream Source = "stream"

	// SourceLinked is a track resolved through a linked external catalog
	// (e.g. a Spotify link mirrored onto the default search provider).
	// Autoplay treats these differently: the identifier is not usable as
	// a related-tracks seed, so a text query is derived instead.
	SourceLinked Source = "linked"
)

// TrackRef is an opaque handle to a playable item as reported by the
// audio node. Encoded carries the node's serialized form and is what
// gets sent back on play.
type TrackRef struct {
	// Identifier is the stable provider-side ID, used for related-track lookups
	Identifier string

	// Encoded is the node's opaque encoded track blob
	Encoded string

	Title      string
	Author     string
	URI        string
	ArtworkURL string

	// Length is the track duration. Zero for live streams.
	Length time.Duration

	Source Source
}

// IsStream reports whether the track has no fixed length
func (t TrackRef) IsStream() bool {
	return t.Source == SourceStream || t.Length == 0
}

// QueuedTrack associates a track with who requested it and when.
// Immutable once enqueued.
type QueuedTrack struct {
	Track TrackRef

	// RequesterID is empty for autoplay-inserted tracks
	RequesterID string

	EnqueuedAt time.Time
}

// Playlist is an ordered set of tracks resolved from a single identifier
type Playlist struct {
	Name   string
	Tracks []TrackRef
}
