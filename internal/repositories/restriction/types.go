package restriction

type GetRestrictionInput struct {
	GuildID string
}

type GetRestrictionOutput struct {
	ChannelID string
}

type SetRestrictionInput struct {
	GuildID   string
	ChannelID string
}

type RemoveRestrictionInput struct {
	GuildID string
}

type HasRestrictionInput struct {
	GuildID string
}
