package combat

import (
	"sort"

	"github.com/skirmishlabs/combat-api/internal/errors"
	"github.com/skirmishlabs/combat-api/internal/rules"
)

// PlayEnemyTurn runs the enemy decision policy for the character whose
// turn it is. The AI is greedy and single-ply, and goes through Submit so
// it is bound by exactly the query and resolver surface a human player
// gets:
//
//  1. A boss casts its strongest affordable damage skill if a target is in
//     range. Regular enemies skip this step and never use skills or items.
//  2. Attack the lowest-HP target in basic-attack range (ties: lowest max
//     HP, then lowest ID).
//  3. Otherwise move to the reachable cell that best closes the Chebyshev
//     distance to the nearest living player, then try steps 1-2 once more
//     from the new position. An enemy may move-then-attack, never
//     attack-then-move.
//  4. Otherwise wait.
func (b *Battle) PlayEnemyTurn() error {
	actor := b.Current()
	if actor == nil {
		return errors.FailedPrecondition("no character is waiting to act")
	}
	if actor.Team != TeamEnemy {
		return errors.FailedPrecondition("it is not an enemy turn")
	}

	if acted, err := b.tryEnemyStrike(actor); err != nil || acted {
		return err
	}

	if moved, err := b.tryEnemyApproach(actor); err != nil {
		return err
	} else if moved {
		if acted, err := b.tryEnemyStrike(actor); err != nil || acted {
			return err
		}
	}

	return b.Submit(Action{Kind: ActionWait, ActorID: actor.ID})
}

// tryEnemyStrike attempts the offensive steps: boss skill first, then the
// basic attack.
func (b *Battle) tryEnemyStrike(actor *Character) (bool, error) {
	if actor.IsBoss {
		if skill, target, ok := b.pickBossSkill(actor); ok {
			err := b.Submit(Action{
				Kind:     ActionSkill,
				ActorID:  actor.ID,
				SkillID:  skill.ID,
				TargetID: target.ID,
			})
			return err == nil, err
		}
	}

	targets := ValidAttackTargets(b.board, b.chars, actor, b.tuning)
	if len(targets) == 0 {
		return false, nil
	}
	target := weakestTarget(targets)
	err := b.Submit(Action{Kind: ActionAttack, ActorID: actor.ID, TargetID: target.ID})
	return err == nil, err
}

// pickBossSkill selects the highest-power affordable damage skill that has
// at least one legal target, and the weakest such target.
func (b *Battle) pickBossSkill(actor *Character) (rules.SkillDef, *Character, bool) {
	var skills []rules.SkillDef
	for _, id := range actor.SkillIDs {
		skill, err := b.reg.Skill(id)
		if err != nil {
			continue
		}
		if skill.Kind == rules.SkillDamage && actor.Stats.Mana >= skill.ManaCost {
			skills = append(skills, skill)
		}
	}
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Power != skills[j].Power {
			return skills[i].Power > skills[j].Power
		}
		return skills[i].ID < skills[j].ID
	})

	for _, skill := range skills {
		if targets := ValidSkillTargets(b.board, b.chars, actor, skill); len(targets) > 0 {
			return skill, weakestTarget(targets), true
		}
	}
	return rules.SkillDef{}, nil, false
}

// weakestTarget picks the lowest-HP target, breaking ties by lowest max
// HP, then lowest ID. The input is already ID-sorted, so a strict
// less-than scan preserves the final tie-break.
func weakestTarget(targets []*Character) *Character {
	best := targets[0]
	for _, t := range targets[1:] {
		switch {
		case t.Stats.HP < best.Stats.HP:
			best = t
		case t.Stats.HP == best.Stats.HP && t.Stats.MaxHP < best.Stats.MaxHP:
			best = t
		}
	}
	return best
}

// tryEnemyApproach moves toward the nearest living player if any reachable
// cell strictly improves the Chebyshev distance.
func (b *Battle) tryEnemyApproach(actor *Character) (bool, error) {
	reachable := ValidMoves(b.board, &b.terrain, actor, b.tuning)
	if len(reachable) == 0 || actor.HasMoved {
		return false, nil
	}

	currentDist, _ := b.nearestPlayer(*actor.Position)

	cells := make([]Position, 0, len(reachable))
	for p := range reachable {
		cells = append(cells, p)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })

	var (
		bestCell Position
		bestDist = currentDist
		bestID   string
		found    bool
	)
	for _, cell := range cells {
		dist, playerID := b.nearestPlayer(cell)
		if playerID == "" {
			break
		}
		better := dist < bestDist ||
			(found && dist == bestDist && playerID < bestID)
		if better {
			bestCell, bestDist, bestID, found = cell, dist, playerID, true
		}
	}
	if !found {
		return false, nil
	}

	err := b.Submit(Action{Kind: ActionMove, ActorID: actor.ID, To: &bestCell})
	return err == nil, err
}

// nearestPlayer returns the Chebyshev distance from p to the closest
// living player character and that character's ID (lowest ID on ties).
func (b *Battle) nearestPlayer(p Position) (int, string) {
	bestDist, bestID := 0, ""
	for _, c := range b.roster {
		if c.Team != TeamPlayer || !c.Alive() || c.Position == nil {
			continue
		}
		d := p.Chebyshev(*c.Position)
		if bestID == "" || d < bestDist || (d == bestDist && c.ID < bestID) {
			bestDist, bestID = d, c.ID
		}
	}
	return bestDist, bestID
}
