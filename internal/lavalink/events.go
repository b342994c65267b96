package lavalink

// EndReason reports why the node stopped playing a track
type EndReason string

const (
	// EndReasonFinished means the track played to completion
	EndReasonFinished EndReason = "finished"

	// EndReasonLoadFailed means the track could not be loaded
	EndReasonLoadFailed EndReason = "loadFailed"

	// EndReasonStopped means playback was stopped by a client request
	EndReasonStopped EndReason = "stopped"

	// EndReasonReplaced means another track replaced this one
	EndReasonReplaced EndReason = "replaced"

	// EndReasonCleanup means the player was cleaned up
	EndReasonCleanup EndReason = "cleanup"
)

// IsTransition reports whether this end belongs to a player transition
// the client already drove to completion. Replaced and cleanup ends
// carry no decision for the queue; finished, loadFailed and stopped
// ends all mean the playhead is free.
func (r EndReason) IsTransition() bool {
	return r == EndReasonReplaced || r == EndReasonCleanup
}

// Event is an asynchronous callback from the audio node
type Event interface {
	EventGuildID() string
}

// TrackEndEvent fires when the player stops playing a track
type TrackEndEvent struct {
	GuildID string
	Reason  EndReason
}

func (e TrackEndEvent) EventGuildID() string { return e.GuildID }

// TrackExceptionEvent fires when a track throws during playback
type TrackExceptionEvent struct {
	GuildID string
	Message string
}

func (e TrackExceptionEvent) EventGuildID() string { return e.GuildID }

// TrackStuckEvent fires when the node makes no playback progress for
// its configured threshold
type TrackStuckEvent struct {
	GuildID     string
	ThresholdMs int64
}

func (e TrackStuckEvent) EventGuildID() string { return e.GuildID }

// WebSocketClosedEvent fires when the node's voice websocket to Discord
// closes; informational, teardown decisions stay with the engine
type WebSocketClosedEvent struct {
	GuildID string
	Code    int
	Reason  string
}

func (e WebSocketClosedEvent) EventGuildID() string { return e.GuildID }

// PlayerUpdateEvent carries the node's periodic player position report
type PlayerUpdateEvent struct {
	GuildID    string
	PositionMs int64
	Connected  bool
}

func (e PlayerUpdateEvent) EventGuildID() string { return e.GuildID }
