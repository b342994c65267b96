package discord

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dopplerdeck/dopplerdeck/internal/models"
	"github.com/dopplerdeck/dopplerdeck/internal/services/session"
)

const progressCells = 12

// Renderer builds the embeds the bot sends. One instance is shared by
// the commands and the notifier.
type Renderer struct {
	EmbedColor int
}

// fmtDuration renders a duration as h:mm:ss, or m:ss under an hour
func fmtDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// progressBar renders the playhead as a fixed-width bar of cells
func progressBar(position, length time.Duration) string {
	marker := 0
	if length > 0 {
		marker = int(int64(position) * progressCells / int64(length))
	}
	if marker >= progressCells {
		marker = progressCells - 1
	}
	if marker < 0 {
		marker = 0
	}

	var b strings.Builder
	for i := 0; i < progressCells; i++ {
		if i == marker {
			b.WriteString("🔘")
		} else {
			b.WriteString("▬")
		}
	}
	return b.String()
}

// sourceName maps a track URI to a display name for its origin
func sourceName(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Host == "" {
		return "Unknown"
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	switch {
	case host == "youtu.be" || strings.HasSuffix(host, "youtube.com"):
		return "YouTube"
	case strings.HasSuffix(host, "soundcloud.com"):
		return "SoundCloud"
	case strings.HasSuffix(host, "spotify.com"):
		return "Spotify"
	case strings.HasSuffix(host, "music.apple.com"):
		return "Apple Music"
	case strings.HasSuffix(host, "deezer.com"):
		return "Deezer"
	case strings.HasSuffix(host, "twitch.tv"):
		return "Twitch"
	case strings.HasSuffix(host, "bandcamp.com"):
		return "Bandcamp"
	default:
		return host
	}
}

// artworkFor picks a thumbnail for a track, synthesizing the default
// provider's thumbnail when the node supplied none
func artworkFor(track models.TrackRef) string {
	if track.ArtworkURL != "" {
		return track.ArtworkURL
	}
	if track.Identifier != "" && sourceName(track.URI) == "YouTube" {
		return fmt.Sprintf("https://img.youtube.com/vi/%s/0.jpg", track.Identifier)
	}
	return ""
}

// requesterMention renders who asked for a track
func requesterMention(requesterID string) string {
	if requesterID == "" {
		return "Autoplay"
	}
	return fmt.Sprintf("<@%s>", requesterID)
}

// trackLine renders one track as a markdown link with its length
func trackLine(track models.TrackRef) string {
	length := fmtDuration(track.Length)
	if track.IsStream() {
		length = "LIVE"
	}
	if track.URI == "" {
		return fmt.Sprintf("%s `%s`", track.Title, length)
	}
	return fmt.Sprintf("[%s](%s) `%s`", track.Title, track.URI, length)
}

// AnnounceEmbed is posted to the bound text channel whenever a track
// starts
func (r *Renderer) AnnounceEmbed(n *session.NowPlayingNotification) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Now Playing",
		Description: trackLine(n.Track),
		Color:       r.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Artist", Value: n.Track.Author, Inline: true},
			{Name: "Requested by", Value: requesterMention(n.RequesterID), Inline: true},
			{Name: "Source", Value: sourceName(n.Track.URI), Inline: true},
		},
	}
	if art := artworkFor(n.Track); art != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: art}
	}
	return embed
}

// NowPlayingEmbed renders the full playback status with a progress bar
func (r *Renderer) NowPlayingEmbed(out *session.NowPlayingOutput) *discordgo.MessageEmbed {
	if out.Track == nil {
		return &discordgo.MessageEmbed{
			Title:       "Nothing Playing",
			Description: "The queue is empty. Use `/music play` to start something.",
			Color:       r.EmbedColor,
		}
	}

	track := *out.Track
	var position string
	if track.IsStream() {
		position = "🔴 LIVE"
	} else {
		position = fmt.Sprintf("%s\n`%s / %s`", progressBar(out.Position, track.Length), fmtDuration(out.Position), fmtDuration(track.Length))
	}

	title := "Now Playing"
	if out.State == session.StatePaused {
		title = "Paused"
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: trackLine(track),
		Color:       r.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Artist", Value: track.Author, Inline: true},
			{Name: "Requested by", Value: requesterMention(out.RequesterID), Inline: true},
			{Name: "Volume", Value: fmt.Sprintf("%d%%", out.Volume), Inline: true},
			{Name: "Position", Value: position},
		},
	}
	if art := artworkFor(track); art != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: art}
	}

	if len(out.UpNext) > 0 {
		var lines []string
		for n, item := range out.UpNext {
			lines = append(lines, fmt.Sprintf("`%d.` %s", n+1, trackLine(item.Track)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Up Next",
			Value: strings.Join(lines, "\n"),
		})
	}

	return embed
}

// QueueEmbed renders one page of the queue
func (r *Renderer) QueueEmbed(out *session.QueuePageOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Queue",
		Color: r.EmbedColor,
	}

	var lines []string
	if out.Current != nil {
		lines = append(lines, fmt.Sprintf("**Now:** %s — %s", trackLine(*out.Current), requesterMention(out.CurrentRequesterID)))
	}
	for n, item := range out.Entries {
		lines = append(lines, fmt.Sprintf("`%d.` %s — %s", out.Offset+n+1, trackLine(item.Track), requesterMention(item.RequesterID)))
	}
	if len(lines) == 0 {
		embed.Description = "The queue is empty."
		return embed
	}
	embed.Description = strings.Join(lines, "\n")

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Page %d of %d • %d tracks • %s total",
			out.Page, out.TotalPages, out.TotalTracks, fmtDuration(out.TotalLength)),
	}
	return embed
}

// PlayResultEmbed renders the outcome of a play request
func (r *Renderer) PlayResultEmbed(out *session.PlayOutput) *discordgo.MessageEmbed {
	if out.PlaylistName != "" {
		verb := "Playing"
		if out.Queued {
			verb = "Queued"
		}
		return &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("%s Playlist", verb),
			Description: fmt.Sprintf("**%s** — %d tracks added", out.PlaylistName, out.PlaylistCount),
			Color:       r.EmbedColor,
		}
	}

	if out.Queued {
		return &discordgo.MessageEmbed{
			Title:       "Queued",
			Description: fmt.Sprintf("%s\nPosition **%d** in queue", trackLine(out.Track), out.Position),
			Color:       r.EmbedColor,
		}
	}

	return &discordgo.MessageEmbed{
		Title:       "Now Playing",
		Description: trackLine(out.Track),
		Color:       r.EmbedColor,
	}
}
