package session

import (
	"context"
	"time"

	"github.com/dopplerdeck/dopplerdeck/internal/lavalink"
	zlog "github.com/rs/zerolog/log"
)

// HandleTrackEnd reacts to a track finishing on the node. Replaced and
// cleanup ends belong to a transition already in flight and are ignored
// outright; every other end consumes the current track and either
// advances or honors an explicit stop.
func (s *service) HandleTrackEnd(ctx context.Context, guildID string, reason lavalink.EndReason) {
	if reason.IsTransition() {
		return
	}

	e := s.peekEntry(guildID)
	if e == nil {
		return
	}
	defer e.mu.Unlock()

	sess := e.sess
	if sess == nil {
		return
	}

	sess.current = nil
	sess.position = 0

	if sess.stopped {
		sess.stopped = false
		sess.state = StateIdle
		return
	}

	s.advanceLocked(ctx, sess)
}

// advanceLocked plays the next queued track, falling back to autoplay
// when the queue is exhausted. Tracks that fail to start are skipped
// over rather than wedging the queue. Caller holds the entry lock.
func (s *service) advanceLocked(ctx context.Context, sess *Session) {
	for {
		item, ok := sess.queue.DequeueFront()
		if !ok {
			break
		}
		if err := s.playLocked(ctx, sess, item.Track, item.RequesterID); err != nil {
			zlog.Warn().Err(err).
				Str("guild", sess.GuildID).
				Str("track", item.Track.Title).
				Msg("failed to start queued track, trying next")
			continue
		}
		return
	}

	if track, ok := s.autoplayLocked(ctx, sess); ok {
		if err := s.playLocked(ctx, sess, track, ""); err == nil {
			return
		}
		zlog.Warn().Str("guild", sess.GuildID).Str("track", track.Title).Msg("failed to start autoplay track, going idle")
	}

	sess.state = StateIdle
}

// HandleTrackException logs a playback error. The node follows an
// exception with a loadFailed end event, which drives the advance.
func (s *service) HandleTrackException(ctx context.Context, guildID, message string) {
	zlog.Warn().Str("guild", guildID).Str("message", message).Msg("track raised exception")
}

// HandleTrackStuck stops a stalled track so its end event can advance
// the queue
func (s *service) HandleTrackStuck(ctx context.Context, guildID string) {
	zlog.Warn().Str("guild", guildID).Msg("track stuck, stopping it")

	e := s.peekEntry(guildID)
	if e == nil {
		return
	}
	defer e.mu.Unlock()

	if e.sess == nil || e.sess.current == nil {
		return
	}
	if err := s.node.Stop(ctx, guildID); err != nil {
		zlog.Warn().Err(err).Str("guild", guildID).Msg("failed to stop stuck track")
	}
}

// HandlePlayerUpdate records the node's reported playhead position
func (s *service) HandlePlayerUpdate(ctx context.Context, guildID string, positionMs int64) {
	e := s.peekEntry(guildID)
	if e == nil {
		return
	}
	defer e.mu.Unlock()

	if e.sess == nil || e.sess.current == nil {
		return
	}
	e.sess.position = time.Duration(positionMs) * time.Millisecond
}

// HandleVoiceState tears the session down when the last human leaves
// its voice channel
func (s *service) HandleVoiceState(ctx context.Context, input *VoiceStateInput) {
	if input == nil || input.GuildID == "" {
		return
	}

	e := s.peekEntry(input.GuildID)
	if e == nil {
		return
	}
	defer e.mu.Unlock()

	sess := e.sess
	if sess == nil {
		return
	}
	if input.BeforeChannelID != sess.VoiceChannelID && input.AfterChannelID != sess.VoiceChannelID {
		return
	}

	if s.occupancy.HumanCount(input.GuildID, sess.VoiceChannelID) > 0 {
		return
	}

	zlog.Info().Str("guild", input.GuildID).Str("channel", sess.VoiceChannelID).Msg("voice channel empty, leaving")
	s.teardownLocked(ctx, input.GuildID, e)
}
