package restriction

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSetAndGetRestriction() {
	err := s.repo.SetRestriction(context.Background(), &SetRestrictionInput{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
	})
	s.Require().NoError(err)

	out, err := s.repo.GetRestriction(context.Background(), &GetRestrictionInput{
		GuildID: "guild-1",
	})
	s.Require().NoError(err)
	s.Equal("channel-1", out.ChannelID)
}

func (s *RedisRepositoryTestSuite) TestSetReplacesExistingRestriction() {
	s.Require().NoError(s.repo.SetRestriction(context.Background(), &SetRestrictionInput{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
	}))
	s.Require().NoError(s.repo.SetRestriction(context.Background(), &SetRestrictionInput{
		GuildID:   "guild-1",
		ChannelID: "channel-2",
	}))

	out, err := s.repo.GetRestriction(context.Background(), &GetRestrictionInput{
		GuildID: "guild-1",
	})
	s.Require().NoError(err)
	s.Equal("channel-2", out.ChannelID)
}

func (s *RedisRepositoryTestSuite) TestGetMissingRestriction() {
	_, err := s.repo.GetRestriction(context.Background(), &GetRestrictionInput{
		GuildID: "guild-unknown",
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrRestrictionNotFound)
}

func (s *RedisRepositoryTestSuite) TestHasRestriction() {
	has, err := s.repo.HasRestriction(context.Background(), &HasRestrictionInput{
		GuildID: "guild-1",
	})
	s.Require().NoError(err)
	s.False(has)

	s.Require().NoError(s.repo.SetRestriction(context.Background(), &SetRestrictionInput{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
	}))

	has, err = s.repo.HasRestriction(context.Background(), &HasRestrictionInput{
		GuildID: "guild-1",
	})
	s.Require().NoError(err)
	s.True(has)
}

func (s *RedisRepositoryTestSuite) TestRemoveRestriction() {
	s.Require().NoError(s.repo.SetRestriction(context.Background(), &SetRestrictionInput{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
	}))

	err := s.repo.RemoveRestriction(context.Background(), &RemoveRestrictionInput{
		GuildID: "guild-1",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetRestriction(context.Background(), &GetRestrictionInput{
		GuildID: "guild-1",
	})
	s.ErrorIs(err, ErrRestrictionNotFound)

	// Removing again is a no-op
	s.Require().NoError(s.repo.RemoveRestriction(context.Background(), &RemoveRestrictionInput{
		GuildID: "guild-1",
	}))
}

func (s *RedisRepositoryTestSuite) TestRestrictionsAreScopedPerGuild() {
	s.Require().NoError(s.repo.SetRestriction(context.Background(), &SetRestrictionInput{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
	}))

	has, err := s.repo.HasRestriction(context.Background(), &HasRestrictionInput{
		GuildID: "guild-2",
	})
	s.Require().NoError(err)
	s.False(has)
}
