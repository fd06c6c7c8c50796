package combat

// IntentType labels an entry in the animation-intent stream.
type IntentType string

// Intent types
const (
	IntentBattleStart IntentType = "battle_start"
	IntentRoundStart  IntentType = "round_start"
	IntentTurnStart   IntentType = "turn_start"
	IntentMove        IntentType = "move"
	IntentAttack      IntentType = "attack"
	IntentSkill       IntentType = "skill"
	IntentItem        IntentType = "item"
	IntentWait        IntentType = "wait"
	IntentDefeat      IntentType = "defeat"
	IntentBattleOver  IntentType = "battle_over"
)

// Outcome describes how an offensive action landed.
type Outcome string

// Outcomes
const (
	OutcomeHit    Outcome = "hit"
	OutcomeCrit   Outcome = "crit"
	OutcomeMiss   Outcome = "miss"
	OutcomeDefeat Outcome = "defeat"
)

// Intent is one entry in the stream of animation intents a rendering layer
// consumes. It describes what visually happened; nothing in the simulation
// reads intents back. The Seq field makes the stream strictly ordered.
type Intent struct {
	Seq       int        `json:"seq"`
	Round     int        `json:"round"`
	Type      IntentType `json:"type"`
	ActorID   string     `json:"actor_id,omitempty"`
	TargetID  string     `json:"target_id,omitempty"`
	From      *Position  `json:"from,omitempty"`
	To        *Position  `json:"to,omitempty"`
	SkillID   string     `json:"skill_id,omitempty"`
	ItemID    string     `json:"item_id,omitempty"`
	Outcome   Outcome    `json:"outcome,omitempty"`
	Damage    int        `json:"damage,omitempty"`
	Healing   int        `json:"healing,omitempty"`
	AnimState AnimState  `json:"anim_state,omitempty"`
	// TargetAnim is the defender's reaction on offensive intents:
	// evaded on a miss, hit on damage, defeated on a kill.
	TargetAnim AnimState `json:"target_anim,omitempty"`
	Winner     string    `json:"winner,omitempty"`
}

// Event bus topics mirroring the intent stream, for hosts that prefer
// subscription over polling.
const (
	TopicMove       = "combat.move"
	TopicAttack     = "combat.attack"
	TopicSkill      = "combat.skill"
	TopicItem       = "combat.item"
	TopicDefeat     = "combat.defeat"
	TopicBattleOver = "combat.battle_over"
)
