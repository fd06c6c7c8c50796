package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skirmishlabs/combat-api/internal/combat"
)

func TestComputeTurnOrder_DescendingSpeed(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	warrior := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false) // spd 10
	mage := mustCharacter(t, reg, "p2", "mage", combat.TeamPlayer, nil, false)       // spd 7
	goblin := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)    // spd 4

	order := combat.ComputeTurnOrder([]*combat.Character{goblin, mage, warrior})
	assert.Equal(t, []string{"p1", "p2", "e1"}, order)
}

func TestComputeTurnOrder_PlayerWinsSpeedTies(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	player := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false)
	enemy := mustCharacter(t, reg, "e1", "warrior", combat.TeamEnemy, nil, false)

	// Same class, same speed: the player goes first regardless of roster order.
	order := combat.ComputeTurnOrder([]*combat.Character{enemy, player})
	assert.Equal(t, []string{"p1", "e1"}, order)
}

func TestComputeTurnOrder_SquadOrderBreaksRemainingTies(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	first := mustCharacter(t, reg, "p9", "warrior", combat.TeamPlayer, nil, false)
	second := mustCharacter(t, reg, "p2", "warrior", combat.TeamPlayer, nil, false)
	enemy := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)

	// Equal speed, same team: deployment order decides, not ID.
	order := combat.ComputeTurnOrder([]*combat.Character{first, second, enemy})
	assert.Equal(t, []string{"p9", "p2", "e1"}, order)
}

func TestComputeTurnOrder_ExcludesDefeated(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	warrior := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false)
	goblin := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)
	goblin.Stats.HP = 0

	order := combat.ComputeTurnOrder([]*combat.Character{warrior, goblin})
	assert.Equal(t, []string{"p1"}, order)
}

func TestComputeTurnOrder_BuffedSpeedCounts(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	warrior := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false) // spd 10
	goblin := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)    // spd 4
	goblin.Modifiers = append(goblin.Modifiers, combat.StatModifier{Stat: "spd", Delta: 10, TurnsLeft: 2})

	order := combat.ComputeTurnOrder([]*combat.Character{warrior, goblin})
	assert.Equal(t, []string{"e1", "p1"}, order)
}
