package combat

import (
	"math"

	"github.com/skirmishlabs/combat-api/internal/errors"
	"github.com/skirmishlabs/combat-api/internal/rules"
)

// Stats is the combat stat block. Everything except HP and Mana is frozen
// for the battle once derived; HP and Mana mutate through actions.
type Stats struct {
	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	Mana    int `json:"mana"`
	MaxMana int `json:"max_mana"`
	Atk     int `json:"atk"`
	Mag     int `json:"mag"`
	Def     int `json:"def"`
	Res     int `json:"res"`
	Spd     int `json:"spd"`
	Eva     int `json:"eva"`
	Crit    int `json:"crit"`
}

// DeriveStats computes the stat block for a class at a level with the
// given equipment: floor(base + growth*(level-1)) + sum of equipment
// bonuses, clamped at zero. HP and Mana start at their maximums.
func DeriveStats(class rules.ClassDef, level int, equipment []rules.ItemDef) (Stats, error) {
	if level < 1 {
		return Stats{}, errors.InvalidArgumentf("level must be >= 1, got %d", level)
	}

	derived := make(map[string]int, len(rules.RequiredStatKeys))
	for _, key := range rules.RequiredStatKeys {
		base, ok := class.Base[key]
		if !ok {
			return Stats{}, errors.InvalidClassDataf("class %q base stats missing %q", class.ID, key)
		}
		growth, ok := class.Growth[key]
		if !ok {
			return Stats{}, errors.InvalidClassDataf("class %q growth rates missing %q", class.ID, key)
		}

		value := int(math.Floor(float64(base) + growth*float64(level-1)))
		for _, item := range equipment {
			value += item.StatBonuses[key]
		}
		derived[key] = clampMin(value, 0)
	}

	s := Stats{
		MaxHP:   derived[rules.StatHP],
		MaxMana: derived[rules.StatMana],
		Atk:     derived[rules.StatAtk],
		Mag:     derived[rules.StatMag],
		Def:     derived[rules.StatDef],
		Res:     derived[rules.StatRes],
		Spd:     derived[rules.StatSpd],
		Eva:     derived[rules.StatEva],
		Crit:    derived[rules.StatCrit],
	}
	s.HP = s.MaxHP
	s.Mana = s.MaxMana
	return s, nil
}
