package battle

import (
	"time"

	"github.com/skirmishlabs/combat-api/internal/combat"
)

// CharacterSpec describes one player squad member in a create request.
// Stats are derived server-side from the class and level; the client never
// supplies raw numbers.
type CharacterSpec struct {
	// Optional; generated when empty
	ID string

	Name    string
	ClassID string
	Level   int

	// Equipment item IDs folded into stat derivation
	EquipmentIDs []string

	// Skills brought into battle, at most four
	SkillIDs []string
}

// CharacterState is a read-only snapshot of one combatant.
type CharacterState struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Class     string                `json:"class"`
	Team      combat.Team           `json:"team"`
	Level     int                   `json:"level"`
	IsBoss    bool                  `json:"is_boss,omitempty"`
	Position  *combat.Position      `json:"position,omitempty"`
	Stats     combat.Stats          `json:"stats"`
	SkillIDs  []string              `json:"skill_ids,omitempty"`
	Modifiers []combat.StatModifier `json:"modifiers,omitempty"`
	HasMoved  bool                  `json:"has_moved"`
	HasActed  bool                  `json:"has_acted"`
	AnimState combat.AnimState      `json:"anim_state"`
}

// BattleState is a read-only snapshot of a battle for host layers. For a
// finished battle served from storage only the verdict fields are set.
type BattleState struct {
	ID                 string           `json:"id"`
	StageID            string           `json:"stage_id"`
	Phase              combat.Phase     `json:"phase"`
	Round              int              `json:"round"`
	Terrain            [][]string       `json:"terrain,omitempty"`
	TurnOrder          []string         `json:"turn_order,omitempty"`
	CurrentCharacterID string           `json:"current_character_id,omitempty"`
	Characters         []CharacterState `json:"characters,omitempty"`
	Result             *combat.Result   `json:"result,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// CreateBattleInput contains parameters for creating a battle
type CreateBattleInput struct {
	StageID string
	Squad   []CharacterSpec

	// Consumables carried into battle, item ID to count
	Items map[string]int

	// Optional fixed RNG seed; derived from the clock when nil
	Seed *int64
}

// CreateBattleOutput contains the result of creating a battle
type CreateBattleOutput struct {
	State *BattleState

	// Intents emitted during initialization and any leading enemy turns
	Intents []combat.Intent
}

// SubmitActionInput contains parameters for submitting a player action
type SubmitActionInput struct {
	BattleID string
	Action   combat.Action
}

// SubmitActionOutput contains the state after the action and the enemy
// turns it triggered
type SubmitActionOutput struct {
	State *BattleState

	// Intents emitted by this action and the enemy turns that followed
	Intents []combat.Intent
}

// GetBattleInput contains parameters for retrieving a battle
type GetBattleInput struct {
	BattleID string
}

// GetBattleOutput contains the result of retrieving a battle
type GetBattleOutput struct {
	State *BattleState
}

// ListEventsInput contains parameters for reading the intent stream
type ListEventsInput struct {
	BattleID string

	// Return intents with sequence >= SinceSeq
	SinceSeq int
}

// ListEventsOutput contains an ordered slice of the intent stream
type ListEventsOutput struct {
	Intents []combat.Intent

	// NextSeq is the offset to pass on the next poll
	NextSeq int
}

// ForfeitBattleInput contains parameters for conceding a battle
type ForfeitBattleInput struct {
	BattleID string
}

// ForfeitBattleOutput contains the final state after conceding
type ForfeitBattleOutput struct {
	State *BattleState
}
