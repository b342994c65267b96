package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dopplerdeck/dopplerdeck/internal/lavalink"
	"github.com/dopplerdeck/dopplerdeck/internal/models"
	"github.com/dopplerdeck/dopplerdeck/internal/repositories/restriction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNode struct {
	joinErr error
}

func (n *stubNode) Join(ctx context.Context, guildID, channelID string) error { return n.joinErr }
func (n *stubNode) Leave(ctx context.Context, guildID string) error           { return nil }
func (n *stubNode) Resolve(ctx context.Context, identifier string) (*lavalink.LoadResult, error) {
	return &lavalink.LoadResult{Type: lavalink.LoadTypeEmpty}, nil
}
func (n *stubNode) Play(ctx context.Context, guildID string, track models.TrackRef) error {
	return nil
}
func (n *stubNode) Stop(ctx context.Context, guildID string) error                   { return nil }
func (n *stubNode) SetPaused(ctx context.Context, guildID string, paused bool) error { return nil }
func (n *stubNode) SetVolume(ctx context.Context, guildID string, volume int) error  { return nil }
func (n *stubNode) Events() <-chan lavalink.Event                                    { return nil }

type stubRestrictions struct{}

func (stubRestrictions) GetRestriction(ctx context.Context, input *restriction.GetRestrictionInput) (*restriction.GetRestrictionOutput, error) {
	return nil, restriction.ErrRestrictionNotFound
}
func (stubRestrictions) SetRestriction(ctx context.Context, input *restriction.SetRestrictionInput) error {
	return nil
}
func (stubRestrictions) RemoveRestriction(ctx context.Context, input *restriction.RemoveRestrictionInput) error {
	return nil
}
func (stubRestrictions) HasRestriction(ctx context.Context, input *restriction.HasRestrictionInput) (bool, error) {
	return false, nil
}

type stubNotifier struct{}

func (stubNotifier) NowPlaying(ctx context.Context, n *NowPlayingNotification) error { return nil }

type stubOccupancy struct{}

func (stubOccupancy) HumanCount(guildID, channelID string) int { return 1 }

type stubClock struct{}

func (stubClock) Now() time.Time        { return time.Unix(0, 0) }
func (stubClock) Sleep(d time.Duration) {}

func newStubService(t *testing.T, node lavalink.Node) *service {
	t.Helper()
	svc, err := New(&Config{
		Node:            node,
		RestrictionRepo: stubRestrictions{},
		Notifier:        stubNotifier{},
		Occupancy:       stubOccupancy{},
		Clock:           stubClock{},
	})
	require.NoError(t, err)
	return svc
}

func (s *service) registrySize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func TestFailedJoinLeavesNoRegistryEntry(t *testing.T) {
	svc := newStubService(t, &stubNode{joinErr: errors.New("voice timeout")})

	_, err := svc.Join(context.Background(), &JoinInput{GuildID: "g1", VoiceChannelID: "c1"})
	require.Error(t, err)

	assert.Equal(t, 0, svc.registrySize())
}

func TestFailedPlayConnectLeavesNoRegistryEntry(t *testing.T) {
	svc := newStubService(t, &stubNode{joinErr: errors.New("voice timeout")})

	_, err := svc.Play(context.Background(), &PlayInput{GuildID: "g1", VoiceChannelID: "c1", Query: "anything"})
	require.Error(t, err)

	assert.Equal(t, 0, svc.registrySize())
}

func TestPlayWithoutChannelLeavesNoRegistryEntry(t *testing.T) {
	svc := newStubService(t, &stubNode{})

	_, err := svc.Play(context.Background(), &PlayInput{GuildID: "g1", Query: "anything"})
	require.ErrorIs(t, err, ErrNoVoiceChannel)

	assert.Equal(t, 0, svc.registrySize())
}

func TestSuccessfulJoinKeepsRegistryEntry(t *testing.T) {
	svc := newStubService(t, &stubNode{})

	_, err := svc.Join(context.Background(), &JoinInput{GuildID: "g1", VoiceChannelID: "c1"})
	require.NoError(t, err)

	assert.Equal(t, 1, svc.registrySize())
}
