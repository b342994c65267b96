package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dopplerdeck/dopplerdeck/internal/common/clock"
	"github.com/dopplerdeck/dopplerdeck/internal/lavalink"
	"github.com/dopplerdeck/dopplerdeck/internal/models"
	"github.com/dopplerdeck/dopplerdeck/internal/repositories/restriction"
	zlog "github.com/rs/zerolog/log"
)

const (
	defaultPlaylistLimit = 100
	defaultSearchPrefix  = "ytsearch:"

	defaultIntroClipCap      = 10 * time.Second
	defaultIntroCooldown     = 500 * time.Millisecond
	defaultIntroPollInterval = 100 * time.Millisecond
	defaultIntroPollAttempts = 20
)

// service implements the Service interface
type service struct {
	node            lavalink.Node
	restrictionRepo restriction.Repository
	notifier        Notifier
	occupancy       Occupancy
	intro           IntroTransport
	clock           clock.Clock

	playlistLimit int
	searchPrefix  string

	introClipCap      time.Duration
	introCooldown     time.Duration
	introPollInterval time.Duration
	introPollAttempts int

	// mu guards the registry maps only; per-guild work runs under the
	// guild entry's own lock
	mu        sync.Mutex
	entries   map[string]*entry
	introDone map[string]bool
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Node == nil {
		return nil, ErrNilNode
	}
	if cfg.RestrictionRepo == nil {
		return nil, ErrNilRestrictionRepo
	}
	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}
	if cfg.Occupancy == nil {
		return nil, ErrNilOccupancy
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	s := &service{
		node:              cfg.Node,
		restrictionRepo:   cfg.RestrictionRepo,
		notifier:          cfg.Notifier,
		occupancy:         cfg.Occupancy,
		intro:             cfg.Intro,
		clock:             cfg.Clock,
		playlistLimit:     cfg.PlaylistLimit,
		searchPrefix:      cfg.SearchPrefix,
		introClipCap:      cfg.IntroClipCap,
		introCooldown:     cfg.IntroCooldown,
		introPollInterval: cfg.IntroPollInterval,
		introPollAttempts: cfg.IntroPollAttempts,
		entries:           make(map[string]*entry),
		introDone:         make(map[string]bool),
	}

	if s.playlistLimit <= 0 {
		s.playlistLimit = defaultPlaylistLimit
	}
	if s.searchPrefix == "" {
		s.searchPrefix = defaultSearchPrefix
	}
	if s.introClipCap <= 0 {
		s.introClipCap = defaultIntroClipCap
	}
	if s.introCooldown <= 0 {
		s.introCooldown = defaultIntroCooldown
	}
	if s.introPollInterval <= 0 {
		s.introPollInterval = defaultIntroPollInterval
	}
	if s.introPollAttempts <= 0 {
		s.introPollAttempts = defaultIntroPollAttempts
	}

	return s, nil
}

// lockEntry returns the guild's entry with its lock held, creating the
// entry if needed. Entries removed by a concurrent teardown are
// re-fetched so a waiter never operates on a dead slot.
func (s *service) lockEntry(guildID string) *entry {
	for {
		s.mu.Lock()
		e, ok := s.entries[guildID]
		if !ok {
			e = &entry{}
			s.entries[guildID] = e
		}
		s.mu.Unlock()

		e.mu.Lock()
		if !e.gone {
			return e
		}
		e.mu.Unlock()
	}
}

// dropEntryLocked removes a sessionless registry slot left behind by a
// failed connect, so guilds that never manage to join do not accumulate
// entries. Caller holds the entry lock.
func (s *service) dropEntryLocked(guildID string, e *entry) {
	e.gone = true

	s.mu.Lock()
	if s.entries[guildID] == e {
		delete(s.entries, guildID)
	}
	s.mu.Unlock()
}

// peekEntry returns the guild's entry with its lock held, or nil when
// the guild has no registry slot
func (s *service) peekEntry(guildID string) *entry {
	s.mu.Lock()
	e, ok := s.entries[guildID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	e.mu.Lock()
	if e.gone {
		e.mu.Unlock()
		return nil
	}
	return e
}

// Join connects the guild to a voice channel, creating its session
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}
	if input.VoiceChannelID == "" {
		return nil, ErrNoVoiceChannel
	}

	e := s.lockEntry(input.GuildID)
	defer e.mu.Unlock()

	if e.sess != nil {
		return &JoinOutput{ChannelID: e.sess.VoiceChannelID, Created: false}, nil
	}

	sess, err := s.connectLocked(ctx, input.GuildID, input.VoiceChannelID, input.TextChannelID)
	if err != nil {
		s.dropEntryLocked(input.GuildID, e)
		return nil, err
	}
	e.sess = sess

	return &JoinOutput{ChannelID: sess.VoiceChannelID, Created: true}, nil
}

// connectLocked performs the restriction check, the one-time intro and
// the node connection, returning a fresh session. Caller holds the
// entry lock.
func (s *service) connectLocked(ctx context.Context, guildID, voiceChannelID, textChannelID string) (*Session, error) {
	has, err := s.restrictionRepo.HasRestriction(ctx, &restriction.HasRestrictionInput{GuildID: guildID})
	if err != nil {
		return nil, fmt.Errorf("failed to check voice restriction: %w", err)
	}
	if has {
		out, err := s.restrictionRepo.GetRestriction(ctx, &restriction.GetRestrictionInput{GuildID: guildID})
		if err != nil {
			return nil, fmt.Errorf("failed to read voice restriction: %w", err)
		}
		if out.ChannelID != voiceChannelID {
			return nil, &RestrictionViolationError{ChannelID: out.ChannelID}
		}
	}

	s.runIntroOnce(ctx, guildID, voiceChannelID)

	if err := s.node.Join(ctx, guildID, voiceChannelID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	zlog.Info().Str("guild", guildID).Str("channel", voiceChannelID).Msg("session connected")
	return newSession(guildID, voiceChannelID, textChannelID), nil
}

// Play resolves a query and plays or queues the result
func (s *service) Play(ctx context.Context, input *PlayInput) (*PlayOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	e := s.lockEntry(input.GuildID)
	defer e.mu.Unlock()

	if e.sess == nil {
		if input.VoiceChannelID == "" {
			s.dropEntryLocked(input.GuildID, e)
			return nil, ErrNoVoiceChannel
		}
		sess, err := s.connectLocked(ctx, input.GuildID, input.VoiceChannelID, input.TextChannelID)
		if err != nil {
			s.dropEntryLocked(input.GuildID, e)
			return nil, err
		}
		e.sess = sess
	}
	sess := e.sess

	result, err := s.node.Resolve(ctx, s.identifierFor(input.Query))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", input.Query, err)
	}
	if result.IsEmpty() {
		return nil, ErrNoResults
	}

	if result.Playlist != nil {
		return s.ingestPlaylistLocked(ctx, sess, result.Playlist, input.RequesterID)
	}

	track := result.Tracks[0]
	if sess.current != nil {
		position := sess.queue.Enqueue(models.QueuedTrack{
			Track:       track,
			RequesterID: input.RequesterID,
			EnqueuedAt:  s.clock.Now(),
		})
		return &PlayOutput{Queued: true, Position: position, Track: track}, nil
	}

	if err := s.playLocked(ctx, sess, track, input.RequesterID); err != nil {
		return nil, err
	}
	return &PlayOutput{Track: track}, nil
}

// ingestPlaylistLocked enqueues a resolved playlist up to the
// ingestion cap; tracks past the cap are silently dropped. When the
// playlist has to start playing, the first track plays before anything
// is enqueued, so a rejected play leaves the queue untouched.
func (s *service) ingestPlaylistLocked(ctx context.Context, sess *Session, playlist *models.Playlist, requesterID string) (*PlayOutput, error) {
	tracks := playlist.Tracks
	if len(tracks) > s.playlistLimit {
		tracks = tracks[:s.playlistLimit]
	}

	wasPlaying := sess.current != nil
	rest := tracks
	if !wasPlaying {
		if err := s.playLocked(ctx, sess, tracks[0], requesterID); err != nil {
			return nil, err
		}
		rest = tracks[1:]
	}

	now := s.clock.Now()
	for _, track := range rest {
		sess.queue.Enqueue(models.QueuedTrack{
			Track:       track,
			RequesterID: requesterID,
			EnqueuedAt:  now,
		})
	}

	return &PlayOutput{
		Queued:        wasPlaying,
		Track:         tracks[0],
		PlaylistName:  playlist.Name,
		PlaylistCount: len(tracks),
	}, nil
}

// playLocked starts a track on the node and records it as current.
// Session state is only mutated after the node accepts the play, so a
// failed request leaves the session unchanged.
func (s *service) playLocked(ctx context.Context, sess *Session, track models.TrackRef, requesterID string) error {
	if err := s.node.Play(ctx, sess.GuildID, track); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}

	sess.current = &models.QueuedTrack{Track: track, RequesterID: requesterID, EnqueuedAt: s.clock.Now()}
	sess.lastPlayed = &track
	sess.stopped = false
	sess.state = StatePlaying
	sess.position = 0

	zlog.Info().
		Str("guild", sess.GuildID).
		Str("track", track.Title).
		Str("identifier", track.Identifier).
		Msg("now playing")

	if err := s.notifier.NowPlaying(ctx, &NowPlayingNotification{
		GuildID:       sess.GuildID,
		TextChannelID: sess.TextChannelID,
		Track:         track,
		RequesterID:   requesterID,
	}); err != nil {
		zlog.Warn().Err(err).Str("guild", sess.GuildID).Msg("failed to deliver now-playing notification")
	}
	return nil
}

// Skip stops the current track; the end event advances the queue
func (s *service) Skip(ctx context.Context, input *SkipInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	e := s.peekEntry(input.GuildID)
	if e == nil {
		return ErrNotConnected
	}
	defer e.mu.Unlock()

	if e.sess == nil || e.sess.current == nil {
		return ErrNothingPlaying
	}

	return s.node.Stop(ctx, input.GuildID)
}

// Pause toggles pause on the current track
func (s *service) Pause(ctx context.Context, input *PauseInput) (*PauseOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	e := s.peekEntry(input.GuildID)
	if e == nil {
		return nil, ErrNotConnected
	}
	defer e.mu.Unlock()

	sess := e.sess
	if sess == nil || sess.current == nil {
		return nil, ErrNothingPlaying
	}

	paused := sess.state != StatePaused
	if err := s.node.SetPaused(ctx, input.GuildID, paused); err != nil {
		return nil, fmt.Errorf("failed to toggle pause: %w", err)
	}

	if paused {
		sess.state = StatePaused
	} else {
		sess.state = StatePlaying
	}
	return &PauseOutput{Paused: paused}, nil
}

// Stop halts playback, clears the queue and suppresses the next
// autoplay. The connection stays open.
func (s *service) Stop(ctx context.Context, input *StopInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	e := s.peekEntry(input.GuildID)
	if e == nil {
		return ErrNotConnected
	}
	defer e.mu.Unlock()

	sess := e.sess
	if sess == nil {
		return ErrNotConnected
	}

	if err := s.node.Stop(ctx, input.GuildID); err != nil {
		return fmt.Errorf("failed to stop playback: %w", err)
	}

	sess.queue.Clear()
	sess.current = nil
	sess.stopped = true
	sess.state = StateIdle
	sess.position = 0

	zlog.Info().Str("guild", input.GuildID).Msg("playback stopped, queue cleared")
	return nil
}

// SetVolume sets the player volume in percent
func (s *service) SetVolume(ctx context.Context, input *SetVolumeInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	e := s.peekEntry(input.GuildID)
	if e == nil {
		return ErrNotConnected
	}
	defer e.mu.Unlock()

	if e.sess == nil {
		return ErrNotConnected
	}

	if err := s.node.SetVolume(ctx, input.GuildID, input.Volume); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}
	e.sess.volume = input.Volume
	return nil
}

// Disconnect tears the session down unconditionally
func (s *service) Disconnect(ctx context.Context, input *DisconnectInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	e := s.peekEntry(input.GuildID)
	if e == nil {
		return nil // idempotent
	}
	defer e.mu.Unlock()

	s.teardownLocked(ctx, input.GuildID, e)
	return nil
}

// teardownLocked closes the node connection best-effort and removes
// every trace of the guild's session. Cleanup failures are logged and
// never propagated; teardown always completes. Caller holds the entry
// lock.
func (s *service) teardownLocked(ctx context.Context, guildID string, e *entry) {
	if e.sess != nil {
		if err := s.node.Leave(ctx, guildID); err != nil {
			zlog.Warn().Err(err).Str("guild", guildID).Msg("failed to cleanly leave voice, continuing teardown")
		}
		e.sess = nil
	}
	s.dropEntryLocked(guildID, e)

	zlog.Info().Str("guild", guildID).Msg("session torn down")
}

// NowPlaying returns read-only playback state
func (s *service) NowPlaying(ctx context.Context, input *NowPlayingInput) (*NowPlayingOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	e := s.peekEntry(input.GuildID)
	if e == nil {
		return nil, ErrNotConnected
	}
	defer e.mu.Unlock()

	sess := e.sess
	if sess == nil {
		return nil, ErrNotConnected
	}

	out := &NowPlayingOutput{
		State:  sess.state,
		Volume: sess.volume,
	}
	if sess.current != nil {
		track := sess.current.Track
		out.Track = &track
		out.RequesterID = sess.current.RequesterID
		out.Position = sess.position
	}

	upNext := sess.queue.Items()
	if len(upNext) > 3 {
		upNext = upNext[:3]
	}
	out.UpNext = upNext

	return out, nil
}

// QueuePage returns one page of the queue
func (s *service) QueuePage(ctx context.Context, input *QueuePageInput) (*QueuePageOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	e := s.peekEntry(input.GuildID)
	if e == nil {
		return nil, ErrNotConnected
	}
	defer e.mu.Unlock()

	sess := e.sess
	if sess == nil {
		return nil, ErrNotConnected
	}

	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	entries, totalPages, offset := sess.queue.Page(input.Page, pageSize)

	out := &QueuePageOutput{
		Entries:     entries,
		Page:        offset/pageSize + 1,
		TotalPages:  totalPages,
		TotalTracks: sess.queue.Len(),
		TotalLength: sess.queue.TotalLength(),
		Offset:      offset,
	}
	if sess.current != nil {
		track := sess.current.Track
		out.Current = &track
		out.CurrentRequesterID = sess.current.RequesterID
		out.TotalTracks++
		out.TotalLength += track.Length
		out.Position = sess.position
	}

	return out, nil
}

// identifierFor maps a user query to a node identifier: URLs pass
// through, anything else becomes a default-provider search
func (s *service) identifierFor(query string) string {
	query = strings.TrimSpace(query)
	if strings.HasPrefix(query, "http://") || strings.HasPrefix(query, "https://") {
		return query
	}
	return s.searchPrefix + query
}
