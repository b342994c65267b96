package discord

import (
	"github.com/bwmarrin/discordgo"
)

// StateOccupancy answers voice-channel occupancy questions from the
// gateway state cache
type StateOccupancy struct {
	session *discordgo.Session
}

// NewStateOccupancy creates an occupancy provider over a gateway session
func NewStateOccupancy(session *discordgo.Session) *StateOccupancy {
	return &StateOccupancy{session: session}
}

// HumanCount counts the non-bot members in a voice channel. Members the
// state cache cannot classify count as humans, so an incomplete cache
// never causes a premature disconnect.
func (o *StateOccupancy) HumanCount(guildID, channelID string) int {
	guild, err := o.session.State.Guild(guildID)
	if err != nil {
		return 0
	}

	var selfID string
	if o.session.State.User != nil {
		selfID = o.session.State.User.ID
	}

	count := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != channelID || vs.UserID == selfID {
			continue
		}
		member, err := o.session.State.Member(guildID, vs.UserID)
		if err == nil && member.User != nil && member.User.Bot {
			continue
		}
		count++
	}
	return count
}
