package session

import (
	"errors"
	"fmt"
)

// Define errors
var (
	ErrNotConnected   = errors.New("no active session for this guild")
	ErrNothingPlaying = errors.New("no track is currently playing")
	ErrNoResults      = errors.New("no results found")
	ErrNoVoiceChannel = errors.New("join a voice channel first")
	ErrConnect        = errors.New("failed to connect to the audio node")

	ErrNilConfig          = errors.New("config cannot be nil")
	ErrNilNode            = errors.New("audio node cannot be nil")
	ErrNilRestrictionRepo = errors.New("restriction repository cannot be nil")
	ErrNilNotifier        = errors.New("notifier cannot be nil")
	ErrNilOccupancy       = errors.New("occupancy provider cannot be nil")
	ErrNilClock           = errors.New("clock cannot be nil")
)

// RestrictionViolationError is returned when a join targets a channel
// other than the guild's restricted one
type RestrictionViolationError struct {
	// ChannelID is the currently restricted channel
	ChannelID string
}

func (e *RestrictionViolationError) Error() string {
	return fmt.Sprintf("voice sessions are restricted to channel %s", e.ChannelID)
}
