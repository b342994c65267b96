package session

import (
	"context"

	zlog "github.com/rs/zerolog/log"
)

// runIntroOnce plays the intro clip through the direct voice transport
// before the node takes the channel, at most once per guild per
// process. The attempt is marked done before it runs, so a failing clip
// never retries. Intro failures only cost the clip; the connect that
// follows proceeds regardless.
func (s *service) runIntroOnce(ctx context.Context, guildID, channelID string) {
	if s.intro == nil {
		return
	}

	s.mu.Lock()
	if s.introDone[guildID] {
		s.mu.Unlock()
		return
	}
	s.introDone[guildID] = true
	s.mu.Unlock()

	clipCtx, cancel := context.WithTimeout(ctx, s.introClipCap)
	defer cancel()

	if err := s.intro.PlayClip(clipCtx, guildID, channelID); err != nil {
		zlog.Warn().Err(err).Str("guild", guildID).Msg("intro clip failed, skipping")
		return
	}

	// Give the gateway a moment to settle, then wait for the direct
	// transport to actually detach before the node claims the channel.
	s.clock.Sleep(s.introCooldown)
	for i := 0; i < s.introPollAttempts; i++ {
		if !s.intro.Attached(guildID) {
			return
		}
		s.clock.Sleep(s.introPollInterval)
	}
	zlog.Warn().Str("guild", guildID).Msg("intro transport still attached after poll window, proceeding anyway")
}
