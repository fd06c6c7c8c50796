package combat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skirmishlabs/combat-api/internal/combat"
	"github.com/skirmishlabs/combat-api/internal/rules"
)

// flatStats builds a class whose level-1 stats are exactly the given
// values, with zero growth, so tests control every number.
func flatStats(id string, stats map[string]int) rules.ClassDef {
	base := make(map[string]int, len(rules.RequiredStatKeys))
	growth := make(map[string]float64, len(rules.RequiredStatKeys))
	for _, key := range rules.RequiredStatKeys {
		base[key] = stats[key]
		growth[key] = 0
	}
	return rules.ClassDef{ID: id, Name: id, Base: base, Growth: growth}
}

func testClasses() []rules.ClassDef {
	return []rules.ClassDef{
		flatStats("warrior", map[string]int{
			"hp": 100, "mana": 20, "atk": 20, "def": 10, "spd": 10,
		}),
		flatStats("goblin", map[string]int{
			"hp": 30, "mana": 0, "atk": 8, "def": 5, "spd": 4,
		}),
		flatStats("mage", map[string]int{
			"hp": 60, "mana": 50, "atk": 4, "mag": 18, "res": 8, "spd": 7,
		}),
		flatStats("novice", map[string]int{
			"hp": 40, "mana": 5, "mag": 10, "spd": 9,
		}),
		flatStats("scout", map[string]int{
			"hp": 45, "mana": 10, "atk": 9, "spd": 5,
		}),
		flatStats("duelist", map[string]int{
			"hp": 70, "mana": 10, "atk": 15, "def": 6, "spd": 8, "eva": 30, "crit": 50,
		}),
		flatStats("ogre_boss", map[string]int{
			"hp": 120, "mana": 40, "atk": 14, "def": 8, "spd": 6,
		}),
		// Evades every attack: the evasion die rolls 1..100.
		flatStats("wisp", map[string]int{
			"hp": 40, "eva": 100, "spd": 1,
		}),
	}
}

func testSkills() []rules.SkillDef {
	return []rules.SkillDef{
		{ID: "fireball", Name: "Fireball", Kind: rules.SkillDamage, Element: "fire", Power: 12, ManaCost: 10, Range: 16},
		{ID: "quake", Name: "Quake", Kind: rules.SkillDamage, Physical: true, Power: 8, ManaCost: 15, Range: 16, Area: 2},
		{ID: "mend", Name: "Mend", Kind: rules.SkillHeal, Power: 10, ManaCost: 8, Range: 16},
		{ID: "war_cry", Name: "War Cry", Kind: rules.SkillBuff, ManaCost: 5, Range: 16, Duration: 3, Modifiers: map[string]int{"atk": 5}},
		{ID: "hex", Name: "Hex", Kind: rules.SkillDebuff, ManaCost: 5, Range: 16, Duration: 2, Modifiers: map[string]int{"def": -5}},
	}
}

func testItems() []rules.ItemDef {
	return []rules.ItemDef{
		{ID: "iron_sword", Name: "Iron Sword", Kind: rules.ItemEquipment, StatBonuses: map[string]int{"atk": 5}},
		{ID: "potion", Name: "Potion", Kind: rules.ItemConsumable, Effect: rules.EffectHeal, Amount: 25},
		{ID: "tonic", Name: "Tonic", Kind: rules.ItemConsumable, Effect: rules.EffectCleanse},
	}
}

// meleeTuning keeps the default rules: 1-cell attack range.
func meleeTuning() rules.Tuning {
	return rules.DefaultTuning()
}

// skirmishTuning uses a board-wide attack range so resolver tests do not
// need to walk characters across the map first.
func skirmishTuning() rules.Tuning {
	t := rules.DefaultTuning()
	t.AttackRange = 16
	return t
}

func testRegistry(t *testing.T, tuning rules.Tuning) *rules.Registry {
	t.Helper()
	reg, err := rules.NewRegistry(testClasses(), testSkills(), testItems(), nil, tuning)
	require.NoError(t, err)
	return reg
}

func mustCharacter(t *testing.T, reg *rules.Registry, id, class string, team combat.Team, skills []string, boss bool) *combat.Character {
	t.Helper()
	def, err := reg.Class(class)
	require.NoError(t, err)
	c, err := combat.NewCharacter(id, id, team, def, 1, nil, skills, boss)
	require.NoError(t, err)
	return c
}

// newBattle assembles a battle on all-grassland terrain (the TerrainMap
// zero value) with a fixed seed.
func newBattle(t *testing.T, reg *rules.Registry, players, enemies []*combat.Character, seed int64, inv combat.Inventory) *combat.Battle {
	t.Helper()
	b, err := combat.New(&combat.Config{
		ID:        "battle-1",
		StageID:   "stage-1",
		Players:   players,
		Enemies:   enemies,
		Rules:     reg,
		Roller:    combat.NewSeededRoller(seed),
		Inventory: inv,
	})
	require.NoError(t, err)
	return b
}

// newDuel builds a warrior-versus-goblin battle with board-wide attack
// range. The warrior deploys at (3,0), the goblin at (3,7); the warrior
// is faster and acts first.
func newDuel(t *testing.T, seed int64) (*combat.Battle, *combat.Character, *combat.Character) {
	t.Helper()
	reg := testRegistry(t, skirmishTuning())
	warrior := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false)
	goblin := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)
	return newBattle(t, reg, []*combat.Character{warrior}, []*combat.Character{goblin}, seed, nil), warrior, goblin
}
