package session_test

import (
	"errors"
	"time"

	"github.com/dopplerdeck/dopplerdeck/internal/lavalink"
	"github.com/dopplerdeck/dopplerdeck/internal/models"
	"github.com/dopplerdeck/dopplerdeck/internal/services/session"
	"go.uber.org/mock/gomock"
)

// queueTrackTwo enqueues testTrackTwo behind the current track
func (s *SessionServiceTestSuite) queueTrackTwo() {
	s.mockNode.EXPECT().
		Resolve(gomock.Any(), "ytsearch:second song").
		Return(&lavalink.LoadResult{Type: lavalink.LoadTypeSearch, Tracks: []models.TrackRef{s.testTrackTwo}}, nil)
	_, err := s.svc.Play(s.ctx, &session.PlayInput{
		GuildID:     s.testGuildID,
		RequesterID: s.testUserID,
		Query:       "second song",
	})
	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) TestTrackEndAdvancesToQueuedTrack() {
	s.startTrack()
	s.queueTrackTwo()

	s.mockNode.EXPECT().Play(gomock.Any(), s.testGuildID, s.testTrackTwo).Return(nil)
	s.mockNotifier.EXPECT().
		NowPlaying(gomock.Any(), &session.NowPlayingNotification{
			GuildID:       s.testGuildID,
			TextChannelID: s.testTextID,
			Track:         s.testTrackTwo,
			RequesterID:   s.testUserID,
		}).
		Return(nil)

	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonFinished)

	out, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Track)
	s.Equal(s.testTrackTwo, *out.Track)
}

func (s *SessionServiceTestSuite) TestTrackEndSkipsUnplayableQueuedTrack() {
	s.startTrack()
	s.queueTrackTwo()

	trackThree := models.TrackRef{Identifier: "track-three", Title: "Third Song", Source: models.SourceTrack}
	s.mockNode.EXPECT().
		Resolve(gomock.Any(), "ytsearch:third song").
		Return(&lavalink.LoadResult{Type: lavalink.LoadTypeSearch, Tracks: []models.TrackRef{trackThree}}, nil)
	_, err := s.svc.Play(s.ctx, &session.PlayInput{GuildID: s.testGuildID, Query: "third song"})
	s.Require().NoError(err)

	s.mockNode.EXPECT().Play(gomock.Any(), s.testGuildID, s.testTrackTwo).Return(errors.New("track unavailable"))
	s.mockNode.EXPECT().Play(gomock.Any(), s.testGuildID, trackThree).Return(nil)
	s.mockNotifier.EXPECT().NowPlaying(gomock.Any(), gomock.Any()).Return(nil)

	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonFinished)

	out, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Track)
	s.Equal(trackThree, *out.Track)
}

func (s *SessionServiceTestSuite) TestSkipAdvancesThroughStoppedEnd() {
	s.startTrack()
	s.queueTrackTwo()

	s.mockNode.EXPECT().Stop(gomock.Any(), s.testGuildID).Return(nil)
	s.Require().NoError(s.svc.Skip(s.ctx, &session.SkipInput{GuildID: s.testGuildID}))

	s.mockNode.EXPECT().Play(gomock.Any(), s.testGuildID, s.testTrackTwo).Return(nil)
	s.mockNotifier.EXPECT().NowPlaying(gomock.Any(), gomock.Any()).Return(nil)

	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonStopped)

	out, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Track)
	s.Equal(s.testTrackTwo, *out.Track)
}

func (s *SessionServiceTestSuite) TestStopSuppressesTheNextEnd() {
	s.startTrack()
	s.queueTrackTwo()

	s.mockNode.EXPECT().Stop(gomock.Any(), s.testGuildID).Return(nil)
	s.Require().NoError(s.svc.Stop(s.ctx, &session.StopInput{GuildID: s.testGuildID}))

	// no play, no autoplay lookup
	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonStopped)

	out, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Nil(out.Track)
	s.Equal(session.StateIdle, out.State)
}

func (s *SessionServiceTestSuite) TestPlayAfterStopRestoresAutoplay() {
	s.startTrack()

	s.mockNode.EXPECT().Stop(gomock.Any(), s.testGuildID).Return(nil)
	s.Require().NoError(s.svc.Stop(s.ctx, &session.StopInput{GuildID: s.testGuildID}))

	// a fresh play lifts the stop suppression
	s.mockNode.EXPECT().
		Resolve(gomock.Any(), "ytsearch:second song").
		Return(&lavalink.LoadResult{Type: lavalink.LoadTypeSearch, Tracks: []models.TrackRef{s.testTrackTwo}}, nil)
	s.mockNode.EXPECT().Play(gomock.Any(), s.testGuildID, s.testTrackTwo).Return(nil)
	s.mockNotifier.EXPECT().NowPlaying(gomock.Any(), gomock.Any()).Return(nil)
	_, err := s.svc.Play(s.ctx, &session.PlayInput{
		GuildID:     s.testGuildID,
		RequesterID: s.testUserID,
		Query:       "second song",
	})
	s.Require().NoError(err)

	related := models.TrackRef{Identifier: "related-id", Title: "Related Song", Source: models.SourceTrack}
	s.mockNode.EXPECT().
		Resolve(gomock.Any(), "https://www.youtube.com/watch?v=track-two&list=RDtrack-two").
		Return(&lavalink.LoadResult{Type: lavalink.LoadTypeSearch, Tracks: []models.TrackRef{related}}, nil)
	s.mockNode.EXPECT().Play(gomock.Any(), s.testGuildID, related).Return(nil)
	s.mockNotifier.EXPECT().NowPlaying(gomock.Any(), gomock.Any()).Return(nil)

	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonFinished)

	out, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Track)
	s.Equal(related, *out.Track)
}

func (s *SessionServiceTestSuite) TestTransitionEndsAreIgnored() {
	s.startTrack()

	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonReplaced)
	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonCleanup)

	out, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Track)
	s.Equal(s.testTrack, *out.Track)
	s.Equal(session.StatePlaying, out.State)
}

func (s *SessionServiceTestSuite) TestTrackEndForUnknownGuildIsIgnored() {
	s.svc.HandleTrackEnd(s.ctx, "never-seen-guild", lavalink.EndReasonFinished)
}

func (s *SessionServiceTestSuite) TestAutoplayFollowsRelatedTracks() {
	s.startTrack()

	related := models.TrackRef{Identifier: "related-id", Title: "Related Song", Source: models.SourceTrack}
	s.mockNode.EXPECT().
		Resolve(gomock.Any(), "https://www.youtube.com/watch?v=track-one&list=RDtrack-one").
		Return(&lavalink.LoadResult{
			Type: lavalink.LoadTypePlaylist,
			Playlist: &models.Playlist{
				Name:   "Mix",
				Tracks: []models.TrackRef{s.testTrack, related},
			},
		}, nil)
	s.mockNode.EXPECT().Play(gomock.Any(), s.testGuildID, related).Return(nil)
	s.mockNotifier.EXPECT().
		NowPlaying(gomock.Any(), &session.NowPlayingNotification{
			GuildID:       s.testGuildID,
			TextChannelID: s.testTextID,
			Track:         related,
			RequesterID:   "",
		}).
		Return(nil)

	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonFinished)

	out, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Track)
	s.Equal(related, *out.Track)
	s.Empty(out.RequesterID)
}

func (s *SessionServiceTestSuite) TestAutoplaySearchesForLinkedTracks() {
	s.join()
	linked := models.TrackRef{
		Identifier: "spotify-id",
		Title:      "Linked Song",
		Author:     "Linked Artist",
		URI:        "https://open.spotify.com/track/abc",
		Source:     models.SourceLinked,
	}
	s.mockNode.EXPECT().
		Resolve(gomock.Any(), "https://open.spotify.com/track/abc").
		Return(&lavalink.LoadResult{Type: lavalink.LoadTypeTrack, Tracks: []models.TrackRef{linked}}, nil)
	s.mockNode.EXPECT().Play(gomock.Any(), s.testGuildID, linked).Return(nil)
	s.mockNotifier.EXPECT().NowPlaying(gomock.Any(), gomock.Any()).Return(nil)
	_, err := s.svc.Play(s.ctx, &session.PlayInput{GuildID: s.testGuildID, Query: "https://open.spotify.com/track/abc"})
	s.Require().NoError(err)

	found := models.TrackRef{Identifier: "yt-equivalent", Title: "Linked Song", Source: models.SourceTrack}
	s.mockNode.EXPECT().
		Resolve(gomock.Any(), "ytsearch:Linked Artist - Linked Song").
		Return(&lavalink.LoadResult{Type: lavalink.LoadTypeSearch, Tracks: []models.TrackRef{found}}, nil)
	s.mockNode.EXPECT().Play(gomock.Any(), s.testGuildID, found).Return(nil)
	s.mockNotifier.EXPECT().NowPlaying(gomock.Any(), gomock.Any()).Return(nil)

	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonFinished)
}

func (s *SessionServiceTestSuite) TestAutoplaySkipsTheSeedItself() {
	s.startTrack()

	other := models.TrackRef{Identifier: "other-id", Title: "Other Song", Source: models.SourceTrack}
	s.mockNode.EXPECT().
		Resolve(gomock.Any(), "https://www.youtube.com/watch?v=track-one&list=RDtrack-one").
		Return(&lavalink.LoadResult{
			Type:   lavalink.LoadTypeSearch,
			Tracks: []models.TrackRef{s.testTrack, s.testTrack, other},
		}, nil)
	s.mockNode.EXPECT().Play(gomock.Any(), s.testGuildID, other).Return(nil)
	s.mockNotifier.EXPECT().NowPlaying(gomock.Any(), gomock.Any()).Return(nil)

	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonFinished)
}

func (s *SessionServiceTestSuite) TestAutoplayFailureGoesIdle() {
	s.startTrack()

	s.mockNode.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("node degraded"))

	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonFinished)

	out, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Nil(out.Track)
	s.Equal(session.StateIdle, out.State)
}

func (s *SessionServiceTestSuite) TestAutoplayNoDistinctCandidateGoesIdle() {
	s.startTrack()

	s.mockNode.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&lavalink.LoadResult{
			Type:   lavalink.LoadTypeSearch,
			Tracks: []models.TrackRef{s.testTrack},
		}, nil)

	s.svc.HandleTrackEnd(s.ctx, s.testGuildID, lavalink.EndReasonFinished)

	out, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(session.StateIdle, out.State)
}

func (s *SessionServiceTestSuite) TestPlayerUpdateMovesThePlayhead() {
	s.startTrack()

	s.svc.HandlePlayerUpdate(s.ctx, s.testGuildID, 42000)

	out, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(42*time.Second, out.Position)
}

func (s *SessionServiceTestSuite) TestTrackStuckStopsThePlayer() {
	s.startTrack()
	s.mockNode.EXPECT().Stop(gomock.Any(), s.testGuildID).Return(nil)

	s.svc.HandleTrackStuck(s.ctx, s.testGuildID)
}

func (s *SessionServiceTestSuite) TestTrackStuckWhileIdleDoesNothing() {
	s.join()
	s.svc.HandleTrackStuck(s.ctx, s.testGuildID)
}

func (s *SessionServiceTestSuite) TestVoiceStateTearsDownEmptyChannel() {
	s.join()
	s.mockOccupancy.EXPECT().HumanCount(s.testGuildID, s.testChannelID).Return(0)
	s.mockNode.EXPECT().Leave(gomock.Any(), s.testGuildID).Return(nil)

	s.svc.HandleVoiceState(s.ctx, &session.VoiceStateInput{
		GuildID:         s.testGuildID,
		BeforeChannelID: s.testChannelID,
		AfterChannelID:  "",
	})

	_, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.ErrorIs(err, session.ErrNotConnected)
}

func (s *SessionServiceTestSuite) TestVoiceStateKeepsOccupiedChannel() {
	s.join()
	s.mockOccupancy.EXPECT().HumanCount(s.testGuildID, s.testChannelID).Return(2)

	s.svc.HandleVoiceState(s.ctx, &session.VoiceStateInput{
		GuildID:         s.testGuildID,
		BeforeChannelID: s.testChannelID,
	})

	_, err := s.svc.NowPlaying(s.ctx, &session.NowPlayingInput{GuildID: s.testGuildID})
	s.NoError(err)
}

func (s *SessionServiceTestSuite) TestVoiceStateIgnoresOtherChannels() {
	s.join()

	// no occupancy lookup for channels the session is not bound to
	s.svc.HandleVoiceState(s.ctx, &session.VoiceStateInput{
		GuildID:         s.testGuildID,
		BeforeChannelID: "unrelated-channel",
		AfterChannelID:  "another-unrelated-channel",
	})
}
