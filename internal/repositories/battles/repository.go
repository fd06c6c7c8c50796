// Package battles provides the repository interface and types for
// persisted battle records.
package battles

import (
	"context"
	"time"

	"github.com/skirmishlabs/combat-api/internal/combat"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=battlesmock github.com/skirmishlabs/combat-api/internal/repositories/battles Repository

// BattleRecord is the durable snapshot of a finished battle: the verdict
// plus the full intent log, which together with the seed replays the
// battle exactly.
type BattleRecord struct {
	// Battle identifier, unique across the service
	ID string `json:"id"`

	// Stage the battle was fought on
	StageID string `json:"stage_id"`

	// RNG seed the battle ran with
	Seed int64 `json:"seed"`

	// Final verdict
	Winner             string   `json:"winner"`
	SurvivingPlayerIDs []string `json:"surviving_player_ids"`
	TurnsElapsed       int      `json:"turns_elapsed"`

	// Ordered animation-intent log
	Intents []combat.Intent `json:"intents"`

	// When the battle was created and decided
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// SaveInput contains parameters for persisting a battle record
type SaveInput struct {
	Record *BattleRecord
}

// SaveOutput contains the result of persisting a battle record
type SaveOutput struct {
	Record *BattleRecord
}

// GetInput contains parameters for retrieving a battle record
type GetInput struct {
	ID string
}

// GetOutput contains the result of retrieving a battle record
type GetOutput struct {
	Record *BattleRecord
}

// DeleteInput contains parameters for deleting a battle record
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a battle record
type DeleteOutput struct{}

// Repository defines the interface for battle record storage operations
type Repository interface {
	// Save stores or replaces a battle record
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a battle record by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a battle record
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
