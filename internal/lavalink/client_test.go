package lavalink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dopplerdeck/dopplerdeck/internal/models"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite

	server   *httptest.Server
	client   *Client
	requests []recordedRequest
	respond  func(w http.ResponseWriter, r *http.Request)
}

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   string
}

func (s *ClientTestSuite) SetupTest() {
	s.requests = nil
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body strings.Builder
		if r.Body != nil {
			buf := make([]byte, 4096)
			for {
				n, err := r.Body.Read(buf)
				body.Write(buf[:n])
				if err != nil {
					break
				}
			}
		}
		s.requests = append(s.requests, recordedRequest{
			method: r.Method,
			path:   r.URL.RequestURI(),
			auth:   r.Header.Get("Authorization"),
			body:   body.String(),
		})
		s.respond(w, r)
	}))

	client, err := New(&Config{
		Addr:       strings.TrimPrefix(s.server.URL, "http://"),
		Password:   "hunter2",
		HTTPClient: s.server.Client(),
	})
	s.Require().NoError(err)
	client.sessionID = "sess-1"
	s.client = client
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestResolveSearch() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"loadType": "search",
			"data": [
				{"encoded": "enc1", "info": {"identifier": "abc", "author": "Artist", "length": 200000, "isStream": false, "title": "Song", "uri": "https://youtube.com/watch?v=abc", "sourceName": "youtube"}},
				{"encoded": "enc2", "info": {"identifier": "def", "author": "Other", "length": 1000, "isStream": false, "title": "B-Side", "uri": "https://youtube.com/watch?v=def", "sourceName": "youtube"}}
			]
		}`))
	}

	result, err := s.client.Resolve(context.Background(), "ytsearch:song")
	s.Require().NoError(err)
	s.Equal(LoadTypeSearch, result.Type)
	s.Require().Len(result.Tracks, 2)
	s.Equal("abc", result.Tracks[0].Identifier)
	s.Equal("Song", result.Tracks[0].Title)
	s.Equal(200*time.Second, result.Tracks[0].Length)
	s.Equal(models.SourceTrack, result.Tracks[0].Source)

	s.Require().Len(s.requests, 1)
	s.Equal("/v4/loadtracks?identifier=ytsearch%3Asong", s.requests[0].path)
	s.Equal("hunter2", s.requests[0].auth)
}

func (s *ClientTestSuite) TestResolvePlaylist() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"loadType": "playlist",
			"data": {
				"info": {"name": "Mix"},
				"tracks": [
					{"encoded": "enc1", "info": {"identifier": "abc", "title": "One", "sourceName": "youtube"}},
					{"encoded": "enc2", "info": {"identifier": "def", "title": "Two", "sourceName": "youtube"}}
				]
			}
		}`))
	}

	result, err := s.client.Resolve(context.Background(), "https://youtube.com/playlist?list=x")
	s.Require().NoError(err)
	s.Require().NotNil(result.Playlist)
	s.Equal("Mix", result.Playlist.Name)
	s.Require().Len(result.Playlist.Tracks, 2)
	s.Equal(models.SourcePlaylistItem, result.Playlist.Tracks[0].Source)
}

func (s *ClientTestSuite) TestResolveEmpty() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"loadType": "empty", "data": {}}`))
	}

	result, err := s.client.Resolve(context.Background(), "ytsearch:nothing")
	s.Require().NoError(err)
	s.True(result.IsEmpty())
	_, ok := result.First()
	s.False(ok)
}

func (s *ClientTestSuite) TestResolveError() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"loadType": "error", "data": {"message": "no decoder", "severity": "common"}}`))
	}

	_, err := s.client.Resolve(context.Background(), "https://bad")
	s.Require().Error(err)
	s.ErrorIs(err, ErrLoadFailed)
}

func (s *ClientTestSuite) TestResolveClassifiesLinkedSource() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"loadType": "track",
			"data": {"encoded": "enc1", "info": {"identifier": "sp1", "title": "Linked", "author": "Artist", "sourceName": "spotify"}}
		}`))
	}

	result, err := s.client.Resolve(context.Background(), "https://open.spotify.com/track/sp1")
	s.Require().NoError(err)
	s.Require().Len(result.Tracks, 1)
	s.Equal(models.SourceLinked, result.Tracks[0].Source)
}

func (s *ClientTestSuite) TestResolveClassifiesStream() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"loadType": "track",
			"data": {"encoded": "enc1", "info": {"identifier": "radio", "title": "Radio", "isStream": true, "length": 0, "sourceName": "http"}}
		}`))
	}

	result, err := s.client.Resolve(context.Background(), "https://radio.example/stream")
	s.Require().NoError(err)
	s.Require().Len(result.Tracks, 1)
	s.Equal(models.SourceStream, result.Tracks[0].Source)
	s.True(result.Tracks[0].IsStream())
}

func (s *ClientTestSuite) TestPlaySendsEncodedTrack() {
	err := s.client.Play(context.Background(), "guild-1", models.TrackRef{Encoded: "enc-abc"})
	s.Require().NoError(err)

	s.Require().Len(s.requests, 1)
	s.Equal(http.MethodPatch, s.requests[0].method)
	s.Equal("/v4/sessions/sess-1/players/guild-1", s.requests[0].path)

	var body map[string]any
	s.Require().NoError(json.Unmarshal([]byte(s.requests[0].body), &body))
	track := body["track"].(map[string]any)
	s.Equal("enc-abc", track["encoded"])
}

func (s *ClientTestSuite) TestStopClearsTrack() {
	err := s.client.Stop(context.Background(), "guild-1")
	s.Require().NoError(err)

	s.Require().Len(s.requests, 1)
	var body map[string]any
	s.Require().NoError(json.Unmarshal([]byte(s.requests[0].body), &body))
	track, ok := body["track"].(map[string]any)
	s.Require().True(ok)
	encoded, present := track["encoded"]
	s.True(present)
	s.Nil(encoded)
}

func (s *ClientTestSuite) TestSetPausedAndVolume() {
	s.Require().NoError(s.client.SetPaused(context.Background(), "guild-1", true))
	s.Require().NoError(s.client.SetVolume(context.Background(), "guild-1", 42))

	s.Require().Len(s.requests, 2)

	var paused map[string]any
	s.Require().NoError(json.Unmarshal([]byte(s.requests[0].body), &paused))
	s.Equal(true, paused["paused"])

	var volume map[string]any
	s.Require().NoError(json.Unmarshal([]byte(s.requests[1].body), &volume))
	s.Equal(float64(42), volume["volume"])
}

func (s *ClientTestSuite) TestRestErrorSurfacesStatus() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad password"))
	}

	err := s.client.Stop(context.Background(), "guild-1")
	s.Require().Error(err)
	s.Contains(err.Error(), "401")
}

func TestSendWaitsForBackloggedConsumer(t *testing.T) {
	c, err := New(&Config{Addr: "localhost:2333"})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < eventBufSize; i++ {
		c.events <- TrackEndEvent{GuildID: "g", Reason: EndReasonFinished}
	}

	delivered := make(chan struct{})
	go func() {
		c.send(TrackEndEvent{GuildID: "late", Reason: EndReasonFinished}, "TrackEndEvent")
		close(delivered)
	}()

	select {
	case <-delivered:
		t.Fatal("send completed against a full buffer with no consumer")
	case <-time.After(50 * time.Millisecond):
	}

	<-c.events

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("send did not complete after the consumer drained an event")
	}
}

func TestEndReasonIsTransition(t *testing.T) {
	transitions := []EndReason{EndReasonReplaced, EndReasonCleanup}
	for _, reason := range transitions {
		if !reason.IsTransition() {
			t.Errorf("expected %q to be a transition end", reason)
		}
	}

	terminal := []EndReason{EndReasonFinished, EndReasonLoadFailed, EndReasonStopped}
	for _, reason := range terminal {
		if reason.IsTransition() {
			t.Errorf("expected %q to free the playhead", reason)
		}
	}
}
