package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirmishlabs/combat-api/internal/combat"
)

func placeAll(t *testing.T, board *combat.Board, placements map[*combat.Character]combat.Position) {
	t.Helper()
	for c, p := range placements {
		require.NoError(t, board.Place(c, p))
	}
}

func TestValidMoves_GrasslandRadius(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	scout := mustCharacter(t, reg, "p1", "scout", combat.TeamPlayer, nil, false)
	require.Equal(t, 3, scout.MovementBudget(reg.Tuning()))

	board := combat.NewBoard()
	var terrain combat.TerrainMap // zero value: all grassland
	start := combat.Position{Row: 0, Col: 0}
	placeAll(t, board, map[*combat.Character]combat.Position{scout: start})

	got := combat.ValidMoves(board, &terrain, scout, reg.Tuning())

	// On uniform cost-1 terrain the reachable set is exactly the in-bounds
	// Manhattan ball of radius 3, minus the start cell.
	want := make(map[combat.Position]bool)
	for row := 0; row < combat.BoardSize; row++ {
		for col := 0; col < combat.BoardSize; col++ {
			p := combat.Position{Row: row, Col: col}
			if p != start && start.Manhattan(p) <= 3 {
				want[p] = true
			}
		}
	}
	assert.Equal(t, want, got)
}

func TestValidMoves_OccupiedCellsBlock(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	scout := mustCharacter(t, reg, "p1", "scout", combat.TeamPlayer, nil, false)
	wallA := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)
	wallB := mustCharacter(t, reg, "e2", "goblin", combat.TeamEnemy, nil, false)

	board := combat.NewBoard()
	var terrain combat.TerrainMap
	placeAll(t, board, map[*combat.Character]combat.Position{
		scout: {Row: 0, Col: 0},
		wallA: {Row: 0, Col: 1},
		wallB: {Row: 1, Col: 0},
	})

	// Both exits from the corner are occupied: nothing is reachable.
	got := combat.ValidMoves(board, &terrain, scout, reg.Tuning())
	assert.Empty(t, got)
}

func TestValidMoves_TerrainCost(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	scout := mustCharacter(t, reg, "p1", "scout", combat.TeamPlayer, nil, false)

	board := combat.NewBoard()
	var terrain combat.TerrainMap
	for row := 0; row < combat.BoardSize; row++ {
		for col := 0; col < combat.BoardSize; col++ {
			terrain[row][col] = combat.TerrainForest // cost 2
		}
	}
	placeAll(t, board, map[*combat.Character]combat.Position{scout: {Row: 0, Col: 0}})

	// Budget 3 on cost-2 cells: only the two adjacent cells fit.
	got := combat.ValidMoves(board, &terrain, scout, reg.Tuning())
	want := map[combat.Position]bool{
		{Row: 0, Col: 1}: true,
		{Row: 1, Col: 0}: true,
	}
	assert.Equal(t, want, got)
}

func TestValidMoves_DefeatedCharacter(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	scout := mustCharacter(t, reg, "p1", "scout", combat.TeamPlayer, nil, false)

	board := combat.NewBoard()
	var terrain combat.TerrainMap
	placeAll(t, board, map[*combat.Character]combat.Position{scout: {Row: 3, Col: 3}})
	scout.Stats.HP = 0

	assert.Empty(t, combat.ValidMoves(board, &terrain, scout, reg.Tuning()))
}

func TestValidAttackTargets_ManhattanRangeAndOrder(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	actor := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false)
	near1 := mustCharacter(t, reg, "e2", "goblin", combat.TeamEnemy, nil, false)
	near2 := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)
	dead := mustCharacter(t, reg, "e3", "goblin", combat.TeamEnemy, nil, false)
	far := mustCharacter(t, reg, "e4", "goblin", combat.TeamEnemy, nil, false)
	ally := mustCharacter(t, reg, "p2", "scout", combat.TeamPlayer, nil, false)

	board := combat.NewBoard()
	placeAll(t, board, map[*combat.Character]combat.Position{
		actor: {Row: 3, Col: 3},
		near1: {Row: 3, Col: 4},
		near2: {Row: 2, Col: 3},
		dead:  {Row: 4, Col: 3},
		far:   {Row: 0, Col: 0},
		ally:  {Row: 3, Col: 2},
	})
	dead.Stats.HP = 0

	chars := map[string]*combat.Character{
		"p1": actor, "p2": ally, "e1": near2, "e2": near1, "e3": dead, "e4": far,
	}

	got := combat.ValidAttackTargets(board, chars, actor, reg.Tuning())
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e2", got[1].ID)
}

func TestValidSkillTargets_ManaGate(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	caster := mustCharacter(t, reg, "p1", "novice", combat.TeamPlayer, []string{"fireball"}, false)
	enemy := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)

	board := combat.NewBoard()
	placeAll(t, board, map[*combat.Character]combat.Position{
		caster: {Row: 3, Col: 3},
		enemy:  {Row: 3, Col: 4},
	})
	chars := map[string]*combat.Character{"p1": caster, "e1": enemy}

	fireball, err := reg.Skill("fireball")
	require.NoError(t, err)

	// Novice has 5 mana, fireball costs 10: empty set, not an error.
	assert.Empty(t, combat.ValidSkillTargets(board, chars, caster, fireball))

	caster.Stats.Mana = 10
	got := combat.ValidSkillTargets(board, chars, caster, fireball)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
}

func TestValidSkillTargets_HealTargetsAllies(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	caster := mustCharacter(t, reg, "p1", "mage", combat.TeamPlayer, []string{"mend"}, false)
	ally := mustCharacter(t, reg, "p2", "warrior", combat.TeamPlayer, nil, false)
	enemy := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)

	board := combat.NewBoard()
	placeAll(t, board, map[*combat.Character]combat.Position{
		caster: {Row: 3, Col: 3},
		ally:   {Row: 3, Col: 4},
		enemy:  {Row: 2, Col: 3},
	})
	chars := map[string]*combat.Character{"p1": caster, "p2": ally, "e1": enemy}

	mend, err := reg.Skill("mend")
	require.NoError(t, err)

	got := combat.ValidSkillTargets(board, chars, caster, mend)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID) // the caster may heal itself
	assert.Equal(t, "p2", got[1].ID)
}
