package combat

// ActionKind tags the action variant.
type ActionKind string

// Action kinds
const (
	ActionMove   ActionKind = "move"
	ActionAttack ActionKind = "attack"
	ActionSkill  ActionKind = "skill"
	ActionItem   ActionKind = "item"
	ActionWait   ActionKind = "wait"
)

// Action is one requested character action. Exactly one variant's fields
// are read, selected by Kind:
//
//	Move:   To
//	Attack: TargetID
//	Skill:  SkillID and TargetID (character-targeted) or TargetPos (cell-targeted)
//	Item:   ItemID and TargetID
//	Wait:   nothing
type Action struct {
	Kind      ActionKind `json:"kind"`
	ActorID   string     `json:"actor_id"`
	To        *Position  `json:"to,omitempty"`
	TargetID  string     `json:"target_id,omitempty"`
	TargetPos *Position  `json:"target_pos,omitempty"`
	SkillID   string     `json:"skill_id,omitempty"`
	ItemID    string     `json:"item_id,omitempty"`
}
