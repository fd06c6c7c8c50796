package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirmishlabs/combat-api/internal/combat"
	"github.com/skirmishlabs/combat-api/internal/errors"
)

func lastIntentOfType(intents []combat.Intent, typ combat.IntentType) (combat.Intent, bool) {
	for i := len(intents) - 1; i >= 0; i-- {
		if intents[i].Type == typ {
			return intents[i], true
		}
	}
	return combat.Intent{}, false
}

func TestPlayEnemyTurn_RequiresEnemyTurn(t *testing.T) {
	b, _, _ := newDuel(t, 1)

	err := b.PlayEnemyTurn()
	require.Error(t, err)
	assert.True(t, errors.IsFailedPrecondition(err))
}

func TestPlayEnemyTurn_AttacksWeakestInRange(t *testing.T) {
	reg := testRegistry(t, skirmishTuning())
	warrior := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false) // hp 100
	novice := mustCharacter(t, reg, "p2", "novice", combat.TeamPlayer, nil, false)   // hp 40
	goblin := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)
	b := newBattle(t, reg, []*combat.Character{warrior, novice}, []*combat.Character{goblin}, 1, nil)

	require.NoError(t, b.Submit(combat.Action{Kind: combat.ActionWait, ActorID: "p1"}))
	require.NoError(t, b.Submit(combat.Action{Kind: combat.ActionWait, ActorID: "p2"}))

	require.NoError(t, b.PlayEnemyTurn())

	attack, ok := lastIntentOfType(b.Intents(0), combat.IntentAttack)
	require.True(t, ok)
	assert.Equal(t, "e1", attack.ActorID)
	assert.Equal(t, "p2", attack.TargetID)
	assert.Equal(t, 32, novice.Stats.HP) // atk 8, def 0
	assert.Equal(t, 2, b.Round())
}

func TestPlayEnemyTurn_WeakestTieBreaksOnID(t *testing.T) {
	reg := testRegistry(t, skirmishTuning())
	first := mustCharacter(t, reg, "p2", "warrior", combat.TeamPlayer, nil, false)
	second := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false)
	goblin := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)
	b := newBattle(t, reg, []*combat.Character{first, second}, []*combat.Character{goblin}, 1, nil)

	require.NoError(t, b.Submit(combat.Action{Kind: combat.ActionWait, ActorID: "p2"}))
	require.NoError(t, b.Submit(combat.Action{Kind: combat.ActionWait, ActorID: "p1"}))

	require.NoError(t, b.PlayEnemyTurn())

	attack, ok := lastIntentOfType(b.Intents(0), combat.IntentAttack)
	require.True(t, ok)
	assert.Equal(t, "p1", attack.TargetID, "equal HP and max HP: lowest ID")
}

func TestPlayEnemyTurn_ApproachesNearestPlayer(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	warrior := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false)
	goblin := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)
	b := newBattle(t, reg, []*combat.Character{warrior}, []*combat.Character{goblin}, 1, nil)

	require.NoError(t, b.Submit(combat.Action{Kind: combat.ActionWait, ActorID: "p1"}))

	// Budget 2 from (3,7): (3,5) is the unique reachable cell closest to
	// the warrior at (3,0). Still out of melee range, so the goblin waits.
	require.NoError(t, b.PlayEnemyTurn())

	assert.Equal(t, combat.Position{Row: 3, Col: 5}, *goblin.Position)
	assert.Equal(t, 100, warrior.Stats.HP)
	wait, waited := lastIntentOfType(b.Intents(0), combat.IntentWait)
	require.True(t, waited)
	assert.Equal(t, "e1", wait.ActorID)
	assert.Equal(t, 2, b.Round())

	_, attacked := lastIntentOfType(b.Intents(0), combat.IntentAttack)
	assert.False(t, attacked)
}

func TestPlayEnemyTurn_MovesThenAttacks(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	warrior := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false)
	goblin := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)
	b := newBattle(t, reg, []*combat.Character{warrior}, []*combat.Character{goblin}, 1, nil)

	// Warrior closes most of the gap: (3,0) -> (3,4).
	to := combat.Position{Row: 3, Col: 4}
	require.NoError(t, b.Submit(combat.Action{Kind: combat.ActionMove, ActorID: "p1", To: &to}))
	require.NoError(t, b.Submit(combat.Action{Kind: combat.ActionWait, ActorID: "p1"}))

	// Goblin steps (3,7) -> (3,5) and is now in melee range.
	require.NoError(t, b.PlayEnemyTurn())

	assert.Equal(t, combat.Position{Row: 3, Col: 5}, *goblin.Position)
	assert.Equal(t, 99, warrior.Stats.HP) // atk 8 - def 10 floors at 1

	intents := b.Intents(0)
	move, ok := lastIntentOfType(intents, combat.IntentMove)
	require.True(t, ok)
	attack, ok := lastIntentOfType(intents, combat.IntentAttack)
	require.True(t, ok)
	assert.Less(t, move.Seq, attack.Seq, "move before attack, never after")
}

func TestPlayEnemyTurn_WaitsWithoutStrictImprovement(t *testing.T) {
	reg := testRegistry(t, meleeTuning())
	warrior := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false)
	goblin := mustCharacter(t, reg, "e1", "goblin", combat.TeamEnemy, nil, false)
	b := newBattle(t, reg, []*combat.Character{warrior}, []*combat.Character{goblin}, 1, nil)

	// Diagonal adjacency: Chebyshev distance 1 but Manhattan distance 2,
	// so the goblin can neither attack nor reduce the Chebyshev distance.
	require.NoError(t, b.Board().Move(goblin, combat.Position{Row: 2, Col: 1}))

	require.NoError(t, b.Submit(combat.Action{Kind: combat.ActionWait, ActorID: "p1"}))
	require.NoError(t, b.PlayEnemyTurn())

	assert.Equal(t, combat.Position{Row: 2, Col: 1}, *goblin.Position)
	assert.Equal(t, 100, warrior.Stats.HP)

	wait, ok := lastIntentOfType(b.Intents(0), combat.IntentWait)
	require.True(t, ok)
	assert.Equal(t, "e1", wait.ActorID)
}

func TestPlayEnemyTurn_BossCastsStrongestSkill(t *testing.T) {
	reg := testRegistry(t, skirmishTuning())
	warrior := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false)
	boss := mustCharacter(t, reg, "e1", "ogre_boss", combat.TeamEnemy, []string{"quake", "fireball"}, true)
	b := newBattle(t, reg, []*combat.Character{warrior}, []*combat.Character{boss}, 1, nil)

	require.NoError(t, b.Submit(combat.Action{Kind: combat.ActionWait, ActorID: "p1"}))
	require.NoError(t, b.PlayEnemyTurn())

	skill, ok := lastIntentOfType(b.Intents(0), combat.IntentSkill)
	require.True(t, ok)
	assert.Equal(t, "fireball", skill.SkillID, "highest power first")
	assert.Equal(t, "p1", skill.TargetID)
	assert.Equal(t, 88, warrior.Stats.HP) // mag 0 + power 12 - res 0
	assert.Equal(t, 30, boss.Stats.Mana)
}

func TestPlayEnemyTurn_BossFallsBackToAttackWithoutMana(t *testing.T) {
	reg := testRegistry(t, skirmishTuning())
	warrior := mustCharacter(t, reg, "p1", "warrior", combat.TeamPlayer, nil, false)
	boss := mustCharacter(t, reg, "e1", "ogre_boss", combat.TeamEnemy, []string{"fireball"}, true)
	b := newBattle(t, reg, []*combat.Character{warrior}, []*combat.Character{boss}, 1, nil)

	boss.Stats.Mana = 0
	require.NoError(t, b.Submit(combat.Action{Kind: combat.ActionWait, ActorID: "p1"}))
	require.NoError(t, b.PlayEnemyTurn())

	attack, ok := lastIntentOfType(b.Intents(0), combat.IntentAttack)
	require.True(t, ok)
	assert.Equal(t, "p1", attack.TargetID)
	assert.Equal(t, 96, warrior.Stats.HP) // atk 14 - def 10
}
