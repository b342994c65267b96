package restriction

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/dopplerdeck/dopplerdeck/internal/repositories/restriction Repository

import (
	"context"
)

// Repository defines the interface for voice restriction persistence.
// A restriction limits which voice channel the bot may join in a guild.
// The session engine only reads this store; writes come from admin
// commands.
type Repository interface {
	// GetRestriction retrieves the restricted channel for a guild
	GetRestriction(ctx context.Context, input *GetRestrictionInput) (*GetRestrictionOutput, error)

	// SetRestriction sets or replaces the restricted channel for a guild
	SetRestriction(ctx context.Context, input *SetRestrictionInput) error

	// RemoveRestriction clears the restriction for a guild
	RemoveRestriction(ctx context.Context, input *RemoveRestrictionInput) error

	// HasRestriction reports whether a guild has a restriction set
	HasRestriction(ctx context.Context, input *HasRestrictionInput) (bool, error)
}
