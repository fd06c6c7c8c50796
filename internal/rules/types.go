// Package rules holds the static game data the combat engine consumes:
// class definitions, skills, items, and stage layouts. Everything is loaded
// once at startup and handed to the engine as already-resolved data, so a
// missing definition is a construction-time error rather than a silent
// empty fallback at battle time.
package rules

// Stat keys required of every class definition. DeriveStats fails with
// InvalidClassData when a base or growth table omits one of these.
const (
	StatHP   = "hp"
	StatMana = "mana"
	StatAtk  = "atk"
	StatMag  = "mag"
	StatDef  = "def"
	StatRes  = "res"
	StatSpd  = "spd"
	StatEva  = "eva"
	StatCrit = "crit"
)

// RequiredStatKeys lists every stat key a class must define.
var RequiredStatKeys = []string{
	StatHP, StatMana, StatAtk, StatMag, StatDef, StatRes, StatSpd, StatEva, StatCrit,
}

// ClassDef defines a character class: base stats at level 1 and per-level
// growth rates. Growth may be fractional; derived stats floor the result.
type ClassDef struct {
	ID     string             `yaml:"id"`
	Name   string             `yaml:"name"`
	Base   map[string]int     `yaml:"base"`
	Growth map[string]float64 `yaml:"growth"`
}

// SkillKind distinguishes what a skill does when it resolves.
type SkillKind string

// Skill kinds
const (
	SkillDamage SkillKind = "damage"
	SkillHeal   SkillKind = "heal"
	SkillBuff   SkillKind = "buff"
	SkillDebuff SkillKind = "debuff"
)

// SkillDef defines a castable skill. Damage skills scale the caster's
// atk or mag depending on Physical; buffs and debuffs apply Modifiers to
// the target for Duration turns.
type SkillDef struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Kind      SkillKind      `yaml:"kind"`
	Physical  bool           `yaml:"physical"`
	Element   string         `yaml:"element"`
	Power     int            `yaml:"power"`
	ManaCost  int            `yaml:"mana_cost"`
	Range     int            `yaml:"range"`
	Area      int            `yaml:"area"`
	Duration  int            `yaml:"duration"`
	Modifiers map[string]int `yaml:"modifiers"`
}

// ItemKind distinguishes equipment from consumables.
type ItemKind string

// Item kinds
const (
	ItemEquipment  ItemKind = "equipment"
	ItemConsumable ItemKind = "consumable"
)

// ItemEffectType is what a consumable does when used.
type ItemEffectType string

// Consumable effects
const (
	EffectHeal        ItemEffectType = "heal"
	EffectRestoreMana ItemEffectType = "restore_mana"
	EffectCleanse     ItemEffectType = "cleanse"
)

// ItemDef defines an item. Equipment contributes StatBonuses at stat
// derivation; consumables carry an Effect resolved in battle.
type ItemDef struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Kind        ItemKind       `yaml:"kind"`
	StatBonuses map[string]int `yaml:"stat_bonuses"`
	Effect      ItemEffectType `yaml:"effect"`
	Amount      int            `yaml:"amount"`
}

// EnemyUnit is one enemy slot in a stage definition.
type EnemyUnit struct {
	Class    string   `yaml:"class"`
	Level    int      `yaml:"level"`
	Name     string   `yaml:"name"`
	IsBoss   bool     `yaml:"is_boss"`
	SkillIDs []string `yaml:"skills"`
}

// StageDef defines an enemy squad and whether the stage is a boss stage.
// Terrain for the stage is generated deterministically from the stage ID.
type StageDef struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Boss    bool        `yaml:"boss"`
	Enemies []EnemyUnit `yaml:"enemies"`
}

// Tuning carries the externally configured combat constants.
type Tuning struct {
	// Movement budget = MoveBase + spd/MoveSpdDivisor, capped at MoveMax.
	MoveBase       int `yaml:"move_base"`
	MoveSpdDivisor int `yaml:"move_spd_divisor"`
	MoveMax        int `yaml:"move_max"`
	// AttackRange is the basic-attack Manhattan range.
	AttackRange int `yaml:"attack_range"`
	// RoundLimit forces a draw when exceeded.
	RoundLimit int `yaml:"round_limit"`
}

// DefaultTuning returns the tuning used when the data files do not
// override it.
func DefaultTuning() Tuning {
	return Tuning{
		MoveBase:       2,
		MoveSpdDivisor: 5,
		MoveMax:        5,
		AttackRange:    1,
		RoundLimit:     50,
	}
}
