package lavalink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dopplerdeck/dopplerdeck/internal/models"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var (
	// ErrNotReady is returned for player operations before the node
	// handshake has completed
	ErrNotReady = errors.New("node websocket is not ready")

	// ErrVoiceTimeout is returned when the gateway voice handshake does
	// not complete in time
	ErrVoiceTimeout = errors.New("timed out waiting for voice server update")

	// ErrLoadFailed is returned when the node reports a load error
	ErrLoadFailed = errors.New("audio node failed to load tracks")
)

const (
	clientName   = "dopplerdeck/1.0"
	joinTimeout  = 10 * time.Second
	restTimeout  = 15 * time.Second
	restRate     = rate.Limit(10)
	restBurst    = 5
	eventBufSize = 64
)

// Config holds configuration for the node client
type Config struct {
	// Addr is the node's host:port
	Addr string

	// Password is the node's authorization token
	Password string

	// Secure selects https/wss
	Secure bool

	// Discord is the gateway session used for voice channel joins
	Discord *discordgo.Session

	// HTTPClient overrides the REST client, used by tests
	HTTPClient *http.Client
}

// pendingVoice accumulates the two halves of a Discord voice handshake
// until both are known and the player can be updated.
type pendingVoice struct {
	sessionID string
	token     string
	endpoint  string
	ready     chan struct{}
}

// Client talks to a Lavalink v4 node over REST and a websocket event
// stream, and implements Node.
type Client struct {
	cfg     *Config
	http    *http.Client
	limiter *rate.Limiter
	events  chan Event

	mu        sync.Mutex
	sessionID string
	voice     map[string]*pendingVoice
	closed    bool

	conn wsConn
	done chan struct{}
}

// New creates a node client. Open must be called before use.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Addr == "" {
		return nil, errors.New("node address cannot be empty")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: restTimeout}
	}

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(restRate, restBurst),
		events:  make(chan Event, eventBufSize),
		voice:   make(map[string]*pendingVoice),
		done:    make(chan struct{}),
	}, nil
}

// Events returns the node callback stream
func (c *Client) Events() <-chan Event {
	return c.events
}

// Join performs the gateway voice handshake for guildID and forwards
// the resulting voice state to the node, creating its player.
func (c *Client) Join(ctx context.Context, guildID, channelID string) error {
	c.mu.Lock()
	if c.sessionID == "" {
		c.mu.Unlock()
		return ErrNotReady
	}
	pv := &pendingVoice{ready: make(chan struct{})}
	c.voice[guildID] = pv
	c.mu.Unlock()

	if err := c.cfg.Discord.ChannelVoiceJoinManual(guildID, channelID, false, true); err != nil {
		c.clearVoice(guildID)
		return fmt.Errorf("failed to request voice join: %w", err)
	}

	select {
	case <-pv.ready:
		return nil
	case <-ctx.Done():
		c.clearVoice(guildID)
		return ctx.Err()
	case <-time.After(joinTimeout):
		c.clearVoice(guildID)
		return ErrVoiceTimeout
	}
}

// Leave detaches from the voice channel and destroys the node player
func (c *Client) Leave(ctx context.Context, guildID string) error {
	var errs []error
	if err := c.cfg.Discord.ChannelVoiceJoinManual(guildID, "", false, false); err != nil {
		errs = append(errs, fmt.Errorf("failed to request voice leave: %w", err))
	}

	c.clearVoice(guildID)

	if err := c.rest(ctx, http.MethodDelete, c.playerPath(guildID), nil, nil); err != nil {
		errs = append(errs, fmt.Errorf("failed to destroy player: %w", err))
	}
	return errors.Join(errs...)
}

// Resolve loads tracks for an identifier
func (c *Client) Resolve(ctx context.Context, identifier string) (*LoadResult, error) {
	path := "/v4/loadtracks?identifier=" + url.QueryEscape(identifier)

	var payload loadResultPayload
	if err := c.rest(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return decodeLoadResult(&payload)
}

// Play starts playback of track on the guild's player
func (c *Client) Play(ctx context.Context, guildID string, track models.TrackRef) error {
	encoded := track.Encoded
	body := playerUpdatePayload{Track: &playerTrackPayload{Encoded: &encoded}}
	return c.rest(ctx, http.MethodPatch, c.playerPath(guildID), &body, nil)
}

// Stop halts the current track
func (c *Client) Stop(ctx context.Context, guildID string) error {
	body := playerUpdatePayload{Track: &playerTrackPayload{Encoded: nil}}
	return c.rest(ctx, http.MethodPatch, c.playerPath(guildID), &body, nil)
}

// SetPaused pauses or resumes the guild's player
func (c *Client) SetPaused(ctx context.Context, guildID string, paused bool) error {
	body := playerUpdatePayload{Paused: &paused}
	return c.rest(ctx, http.MethodPatch, c.playerPath(guildID), &body, nil)
}

// SetVolume sets the player volume in percent
func (c *Client) SetVolume(ctx context.Context, guildID string, volume int) error {
	body := playerUpdatePayload{Volume: &volume}
	return c.rest(ctx, http.MethodPatch, c.playerPath(guildID), &body, nil)
}

// OnVoiceStateUpdate feeds our own gateway voice state into the pending
// handshake for its guild. Wired to discordgo by the handler layer.
func (c *Client) OnVoiceStateUpdate(vs *discordgo.VoiceStateUpdate) {
	if c.cfg.Discord.State.User == nil || vs.UserID != c.cfg.Discord.State.User.ID {
		return
	}

	c.mu.Lock()
	pv, ok := c.voice[vs.GuildID]
	if ok {
		pv.sessionID = vs.SessionID
	}
	c.mu.Unlock()
}

// OnVoiceServerUpdate completes the handshake and pushes the voice
// state to the node player.
func (c *Client) OnVoiceServerUpdate(vsu *discordgo.VoiceServerUpdate) {
	c.mu.Lock()
	pv, ok := c.voice[vsu.GuildID]
	if !ok || pv.sessionID == "" {
		c.mu.Unlock()
		return
	}
	pv.token = vsu.Token
	pv.endpoint = vsu.Endpoint
	voice := voiceStatePayload{Token: pv.token, Endpoint: pv.endpoint, SessionID: pv.sessionID}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
	defer cancel()

	body := playerUpdatePayload{Voice: &voice}
	if err := c.rest(ctx, http.MethodPatch, c.playerPath(vsu.GuildID), &body, nil); err != nil {
		zlog.Error().Err(err).Str("guild", vsu.GuildID).Msg("failed to push voice state to node")
		return
	}

	select {
	case <-pv.ready:
		// already signalled; endpoint changed mid-session
	default:
		close(pv.ready)
	}
}

func (c *Client) clearVoice(guildID string) {
	c.mu.Lock()
	delete(c.voice, guildID)
	c.mu.Unlock()
}

func (c *Client) playerPath(guildID string) string {
	c.mu.Lock()
	sid := c.sessionID
	c.mu.Unlock()
	return fmt.Sprintf("/v4/sessions/%s/players/%s", sid, guildID)
}

func (c *Client) baseURL() string {
	scheme := "http"
	if c.cfg.Secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, c.cfg.Addr)
}

// rest performs a node REST call, decoding the response into out when
// out is non-nil.
func (c *Client) rest(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.cfg.Password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("node request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("node returned %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode node response: %w", err)
	}
	return nil
}

func decodeLoadResult(payload *loadResultPayload) (*LoadResult, error) {
	result := &LoadResult{Type: payload.LoadType}

	switch payload.LoadType {
	case LoadTypeTrack:
		var track trackPayload
		if err := json.Unmarshal(payload.Data, &track); err != nil {
			return nil, fmt.Errorf("failed to decode track: %w", err)
		}
		result.Tracks = []models.TrackRef{track.toModel(false)}

	case LoadTypeSearch:
		var tracks []trackPayload
		if err := json.Unmarshal(payload.Data, &tracks); err != nil {
			return nil, fmt.Errorf("failed to decode search results: %w", err)
		}
		result.Tracks = make([]models.TrackRef, len(tracks))
		for i, t := range tracks {
			result.Tracks[i] = t.toModel(false)
		}

	case LoadTypePlaylist:
		var playlist playlistPayload
		if err := json.Unmarshal(payload.Data, &playlist); err != nil {
			return nil, fmt.Errorf("failed to decode playlist: %w", err)
		}
		tracks := make([]models.TrackRef, len(playlist.Tracks))
		for i, t := range playlist.Tracks {
			tracks[i] = t.toModel(true)
		}
		result.Playlist = &models.Playlist{Name: playlist.Info.Name, Tracks: tracks}

	case LoadTypeEmpty:
		// nothing to decode

	case LoadTypeError:
		var loadErr loadErrorPayload
		if err := json.Unmarshal(payload.Data, &loadErr); err != nil {
			return nil, fmt.Errorf("failed to decode load error: %w", err)
		}
		return nil, fmt.Errorf("%w: %s (%s)", ErrLoadFailed, loadErr.Message, loadErr.Severity)

	default:
		return nil, fmt.Errorf("unknown load type %q", payload.LoadType)
	}

	return result, nil
}
