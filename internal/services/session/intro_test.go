package session_test

import (
	"errors"
	"time"

	"github.com/dopplerdeck/dopplerdeck/internal/services/session"
	"go.uber.org/mock/gomock"
)

func (s *SessionServiceTestSuite) TestIntroPlaysOncePerGuild() {
	s.join()

	s.mockNode.EXPECT().Leave(gomock.Any(), s.testGuildID).Return(nil)
	s.Require().NoError(s.svc.Disconnect(s.ctx, &session.DisconnectInput{GuildID: s.testGuildID}))

	// reconnect runs the restriction check and node join again, but the
	// intro stays spent for this guild
	s.mockRestriction.EXPECT().HasRestriction(gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockNode.EXPECT().Join(gomock.Any(), s.testGuildID, s.testChannelID).Return(nil)

	out, err := s.svc.Join(s.ctx, &session.JoinInput{
		GuildID:        s.testGuildID,
		VoiceChannelID: s.testChannelID,
	})
	s.Require().NoError(err)
	s.True(out.Created)
}

func (s *SessionServiceTestSuite) TestIntroRunsPerGuild() {
	s.join()

	otherGuild := "second-guild-id"
	s.mockRestriction.EXPECT().
		HasRestriction(gomock.Any(), gomock.Any()).
		Return(false, nil)
	s.mockIntro.EXPECT().PlayClip(gomock.Any(), otherGuild, s.testChannelID).Return(nil)
	s.mockIntro.EXPECT().Attached(otherGuild).Return(false)
	s.mockNode.EXPECT().Join(gomock.Any(), otherGuild, s.testChannelID).Return(nil)

	_, err := s.svc.Join(s.ctx, &session.JoinInput{
		GuildID:        otherGuild,
		VoiceChannelID: s.testChannelID,
	})
	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) TestIntroFailureStillConnects() {
	s.mockRestriction.EXPECT().HasRestriction(gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockIntro.EXPECT().
		PlayClip(gomock.Any(), s.testGuildID, s.testChannelID).
		Return(errors.New("clip not found"))
	s.mockNode.EXPECT().Join(gomock.Any(), s.testGuildID, s.testChannelID).Return(nil)

	out, err := s.svc.Join(s.ctx, &session.JoinInput{
		GuildID:        s.testGuildID,
		VoiceChannelID: s.testChannelID,
	})
	s.Require().NoError(err)
	s.True(out.Created)
}

func (s *SessionServiceTestSuite) TestIntroWaitsForTransportRelease() {
	s.mockRestriction.EXPECT().HasRestriction(gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockIntro.EXPECT().PlayClip(gomock.Any(), s.testGuildID, s.testChannelID).Return(nil)
	gomock.InOrder(
		s.mockIntro.EXPECT().Attached(s.testGuildID).Return(true),
		s.mockIntro.EXPECT().Attached(s.testGuildID).Return(false),
	)
	s.mockNode.EXPECT().Join(gomock.Any(), s.testGuildID, s.testChannelID).Return(nil)

	_, err := s.svc.Join(s.ctx, &session.JoinInput{
		GuildID:        s.testGuildID,
		VoiceChannelID: s.testChannelID,
	})
	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) TestIntroStuckTransportStillConnects() {
	s.mockRestriction.EXPECT().HasRestriction(gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockIntro.EXPECT().PlayClip(gomock.Any(), s.testGuildID, s.testChannelID).Return(nil)
	s.mockIntro.EXPECT().Attached(s.testGuildID).Return(true).Times(2)
	s.mockNode.EXPECT().Join(gomock.Any(), s.testGuildID, s.testChannelID).Return(nil)

	_, err := s.svc.Join(s.ctx, &session.JoinInput{
		GuildID:        s.testGuildID,
		VoiceChannelID: s.testChannelID,
	})
	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) TestIntroDisabledWhenNoTransport() {
	svc, err := session.New(&session.Config{
		Node:            s.mockNode,
		RestrictionRepo: s.mockRestriction,
		Notifier:        s.mockNotifier,
		Occupancy:       s.mockOccupancy,
		Clock:           s.mockClock,
		IntroCooldown:   time.Millisecond,
	})
	s.Require().NoError(err)

	s.mockRestriction.EXPECT().HasRestriction(gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockNode.EXPECT().Join(gomock.Any(), s.testGuildID, s.testChannelID).Return(nil)

	_, err = svc.Join(s.ctx, &session.JoinInput{
		GuildID:        s.testGuildID,
		VoiceChannelID: s.testChannelID,
	})
	s.Require().NoError(err)
}
