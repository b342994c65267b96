package lavalink

import (
	"encoding/json"
	"time"

	"github.com/dopplerdeck/dopplerdeck/internal/models"
)

// LoadType is the audio node's classification of a loadtracks response
type LoadType string

const (
	LoadTypeTrack    LoadType = "track"
	LoadTypePlaylist LoadType = "playlist"
	LoadTypeSearch   LoadType = "search"
	LoadTypeEmpty    LoadType = "empty"
	LoadTypeError    LoadType = "error"
)

// LoadResult is a decoded loadtracks response. Exactly one of Tracks or
// Playlist is populated for successful loads; both are empty for
// LoadTypeEmpty.
type LoadResult struct {
	Type     LoadType
	Tracks   []models.TrackRef
	Playlist *models.Playlist
}

// IsEmpty reports whether the load produced no playable tracks
func (r *LoadResult) IsEmpty() bool {
	if r == nil || r.Type == LoadTypeEmpty {
		return true
	}
	if r.Playlist != nil {
		return len(r.Playlist.Tracks) == 0
	}
	return len(r.Tracks) == 0
}

// First returns the first playable track of the result, if any
func (r *LoadResult) First() (models.TrackRef, bool) {
	if r == nil {
		return models.TrackRef{}, false
	}
	if r.Playlist != nil && len(r.Playlist.Tracks) > 0 {
		return r.Playlist.Tracks[0], true
	}
	if len(r.Tracks) > 0 {
		return r.Tracks[0], true
	}
	return models.TrackRef{}, false
}

// trackPayload is the node's wire form of a track
type trackPayload struct {
	Encoded string    `json:"encoded"`
	Info    trackInfo `json:"info"`
}

type trackInfo struct {
	Identifier string `json:"identifier"`
	Author     string `json:"author"`
	Length     int64  `json:"length"` // milliseconds
	IsStream   bool   `json:"isStream"`
	Title      string `json:"title"`
	URI        string `json:"uri"`
	ArtworkURL string `json:"artworkUrl"`
	SourceName string `json:"sourceName"`
}

type loadResultPayload struct {
	LoadType LoadType        `json:"loadType"`
	Data     json.RawMessage `json:"data"`
}

type playlistPayload struct {
	Info struct {
		Name string `json:"name"`
	} `json:"info"`
	Tracks []trackPayload `json:"tracks"`
}

type loadErrorPayload struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Cause    string `json:"cause"`
}

// linkedSources are catalog providers whose identifiers cannot seed a
// related-tracks lookup on the default search provider.
var linkedSources = map[string]bool{
	"spotify":    true,
	"applemusic": true,
	"deezer":     true,
}

func (t trackPayload) toModel(fromPlaylist bool) models.TrackRef {
	source := models.SourceTrack
	switch {
	case linkedSources[t.Info.SourceName]:
		source = models.SourceLinked
	case t.Info.IsStream:
		source = models.SourceStream
	case fromPlaylist:
		source = models.SourcePlaylistItem
	}

	return models.TrackRef{
		Identifier: t.Info.Identifier,
		Encoded:    t.Encoded,
		Title:      t.Info.Title,
		Author:     t.Info.Author,
		URI:        t.Info.URI,
		ArtworkURL: t.Info.ArtworkURL,
		Length:     time.Duration(t.Info.Length) * time.Millisecond,
		Source:     source,
	}
}

// playerUpdatePayload is the body of a player PATCH request. Pointer
// fields are omitted when unset so unrelated player state is untouched.
type playerUpdatePayload struct {
	Track  *playerTrackPayload `json:"track,omitempty"`
	Paused *bool               `json:"paused,omitempty"`
	Volume *int                `json:"volume,omitempty"`
	Voice  *voiceStatePayload  `json:"voice,omitempty"`
}

// playerTrackPayload sets or clears the playing track. Encoded must be
// present-but-null to stop, so it is a pointer with omitempty unset.
type playerTrackPayload struct {
	Encoded *string `json:"encoded"`
}

type voiceStatePayload struct {
	Token     string `json:"token"`
	Endpoint  string `json:"endpoint"`
	SessionID string `json:"sessionId"`
}
