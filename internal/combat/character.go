package combat

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/skirmishlabs/combat-api/internal/rules"
)

// Team identifies which squad a character fights for.
type Team string

// Teams
const (
	TeamPlayer Team = "player"
	TeamEnemy  Team = "enemy"
)

// AnimState is the reported animation transition for a character. It is a
// rendering hint carried on the intent stream; simulation decisions never
// read it.
type AnimState string

// Animation states
const (
	AnimIdle      AnimState = "idle"
	AnimMoving    AnimState = "moving"
	AnimAttacking AnimState = "attacking"
	AnimCasting   AnimState = "casting"
	AnimHit       AnimState = "hit"
	AnimEvaded    AnimState = "evaded"
	AnimDefeated  AnimState = "defeated"
)

// MaxEquippedSkills caps how many skills a character brings into battle.
const MaxEquippedSkills = 4

// StatModifier is a timed buff or debuff. TurnsLeft is decremented at the
// start of the affected character's own turn; the modifier is dropped when
// it reaches zero.
type StatModifier struct {
	SkillID   string `json:"skill_id"`
	Stat      string `json:"stat"`
	Delta     int    `json:"delta"`
	TurnsLeft int    `json:"turns_left"`
}

// Character is one combatant. It is owned exclusively by the Battle;
// everything else references it by ID.
type Character struct {
	ID       string
	Name     string
	Class    string
	Team     Team
	Level    int
	IsBoss   bool
	Position *Position

	Stats     Stats
	SkillIDs  []string
	Modifiers []StatModifier

	HasMoved  bool
	HasActed  bool
	AnimState AnimState
}

// NewCharacter constructs a battle-ready character from external
// definitions. Equipment bonuses are folded into the derived stats; the
// character is unplaced until the battle assigns a position.
func NewCharacter(id, name string, team Team, class rules.ClassDef, level int, equipment []rules.ItemDef, skillIDs []string, isBoss bool) (*Character, error) {
	stats, err := DeriveStats(class, level, equipment)
	if err != nil {
		return nil, err
	}

	if len(skillIDs) > MaxEquippedSkills {
		skillIDs = skillIDs[:MaxEquippedSkills]
	}
	equipped := make([]string, len(skillIDs))
	copy(equipped, skillIDs)

	return &Character{
		ID:        id,
		Name:      name,
		Class:     class.ID,
		Team:      team,
		Level:     level,
		IsBoss:    isBoss,
		Stats:     stats,
		SkillIDs:  equipped,
		AnimState: AnimIdle,
	}, nil
}

// Alive reports whether the character is still in the fight.
func (c *Character) Alive() bool {
	return c.Stats.HP > 0
}

// EffectiveStats returns the stat block with active buffs and debuffs
// applied. HP and Mana pass through unmodified.
func (c *Character) EffectiveStats() Stats {
	s := c.Stats
	for _, m := range c.Modifiers {
		switch m.Stat {
		case rules.StatAtk:
			s.Atk = clampMin(s.Atk+m.Delta, 0)
		case rules.StatMag:
			s.Mag = clampMin(s.Mag+m.Delta, 0)
		case rules.StatDef:
			s.Def = clampMin(s.Def+m.Delta, 0)
		case rules.StatRes:
			s.Res = clampMin(s.Res+m.Delta, 0)
		case rules.StatSpd:
			s.Spd = clampMin(s.Spd+m.Delta, 0)
		case rules.StatEva:
			s.Eva = clampMin(s.Eva+m.Delta, 0)
		case rules.StatCrit:
			s.Crit = clampMin(s.Crit+m.Delta, 0)
		}
	}
	return s
}

// TickModifiers decrements every modifier's remaining duration and drops
// the expired ones. Called at the start of the character's own turn.
func (c *Character) TickModifiers() {
	kept := c.Modifiers[:0]
	for _, m := range c.Modifiers {
		m.TurnsLeft--
		if m.TurnsLeft > 0 {
			kept = append(kept, m)
		}
	}
	c.Modifiers = kept
}

// ClearDebuffs removes every modifier with a negative delta. Used by
// cleanse items.
func (c *Character) ClearDebuffs() int {
	kept := c.Modifiers[:0]
	removed := 0
	for _, m := range c.Modifiers {
		if m.Delta < 0 {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	c.Modifiers = kept
	return removed
}

// MovementBudget returns how far the character may move this turn, as a
// function of effective speed and the externally configured tuning.
func (c *Character) MovementBudget(tuning rules.Tuning) int {
	budget := tuning.MoveBase
	if tuning.MoveSpdDivisor > 0 {
		budget += c.EffectiveStats().Spd / tuning.MoveSpdDivisor
	}
	if tuning.MoveMax > 0 && budget > tuning.MoveMax {
		budget = tuning.MoveMax
	}
	return budget
}

// GetID implements core.Entity.
func (c *Character) GetID() string {
	return c.ID
}

// GetType implements core.Entity.
func (c *Character) GetType() string {
	return "combat.character"
}

var _ core.Entity = (*Character)(nil)
