package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/dopplerdeck/dopplerdeck/internal/lavalink"
	"github.com/dopplerdeck/dopplerdeck/internal/models"
	zlog "github.com/rs/zerolog/log"
)

// relatedLookupFormat is the default provider's mix playlist for a
// video identifier, used as the related-tracks lookup.
const relatedLookupFormat = "https://www.youtube.com/watch?v=%s&list=RD%s"

// autoplayLocked picks a continuation track for an exhausted queue, or
// reports none. Every failure is non-fatal: log and fall back to idle.
// Caller holds the entry lock.
func (s *service) autoplayLocked(ctx context.Context, sess *Session) (models.TrackRef, bool) {
	seed := sess.lastPlayed
	if seed == nil {
		return models.TrackRef{}, false
	}

	if seed.Source == models.SourceLinked {
		return s.autoplayFromQuery(ctx, sess.GuildID, *seed)
	}
	return s.autoplayFromRelated(ctx, sess.GuildID, *seed)
}

// autoplayFromQuery continues a linked-catalog track: its identifier
// means nothing to the default provider, so derive a text query from
// what we know about it.
func (s *service) autoplayFromQuery(ctx context.Context, guildID string, seed models.TrackRef) (models.TrackRef, bool) {
	query := deriveQuery(seed)
	if query == "" {
		return models.TrackRef{}, false
	}

	result, err := s.node.Resolve(ctx, s.searchPrefix+query)
	if err != nil {
		zlog.Warn().Err(err).Str("guild", guildID).Str("query", query).Msg("autoplay search failed, going idle")
		return models.TrackRef{}, false
	}

	return firstDistinct(candidateTracks(result), seed.Identifier)
}

// autoplayFromRelated continues an ordinary track via a related-tracks
// lookup seeded by its identifier.
func (s *service) autoplayFromRelated(ctx context.Context, guildID string, seed models.TrackRef) (models.TrackRef, bool) {
	if seed.Identifier == "" {
		return models.TrackRef{}, false
	}

	result, err := s.node.Resolve(ctx, fmt.Sprintf(relatedLookupFormat, seed.Identifier, seed.Identifier))
	if err != nil {
		zlog.Warn().Err(err).Str("guild", guildID).Str("seed", seed.Identifier).Msg("related-tracks lookup failed, going idle")
		return models.TrackRef{}, false
	}

	return firstDistinct(candidateTracks(result), seed.Identifier)
}

// candidateTracks flattens a load result into its candidate list
func candidateTracks(result *lavalink.LoadResult) []models.TrackRef {
	if result == nil {
		return nil
	}
	if result.Playlist != nil {
		return result.Playlist.Tracks
	}
	return result.Tracks
}

// firstDistinct returns the first track whose identifier differs from
// the seed's
func firstDistinct(tracks []models.TrackRef, seedIdentifier string) (models.TrackRef, bool) {
	for _, track := range tracks {
		if track.Identifier != seedIdentifier {
			return track, true
		}
	}
	return models.TrackRef{}, false
}

// deriveQuery builds a search query from a track's metadata
func deriveQuery(seed models.TrackRef) string {
	title := strings.TrimSpace(seed.Title)
	author := strings.TrimSpace(seed.Author)

	switch {
	case title != "" && author != "":
		return author + " - " + title
	case title != "":
		return title
	default:
		return ""
	}
}
