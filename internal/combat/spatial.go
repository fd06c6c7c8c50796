package combat

import (
	"sort"

	"github.com/skirmishlabs/combat-api/internal/rules"
)

// ValidMoves computes the set of cells the character can end a move on: a
// terrain-cost flood fill from its position up to its movement budget.
// Occupied cells can be neither crossed nor landed on. The character's own
// cell is not part of the result.
func ValidMoves(board *Board, terrain *TerrainMap, ch *Character, tuning rules.Tuning) map[Position]bool {
	result := make(map[Position]bool)
	if ch.Position == nil || !ch.Alive() {
		return result
	}

	budget := ch.MovementBudget(tuning)
	start := *ch.Position

	// Dijkstra-style expansion; costs are small integers so a simple
	// frontier scan is enough for an 8x8 board.
	best := map[Position]int{start: 0}
	frontier := []Position{start}

	for len(frontier) > 0 {
		// Pop the cheapest frontier cell.
		minIdx := 0
		for i := 1; i < len(frontier); i++ {
			if best[frontier[i]] < best[frontier[minIdx]] {
				minIdx = i
			}
		}
		cur := frontier[minIdx]
		frontier = append(frontier[:minIdx], frontier[minIdx+1:]...)
		curCost := best[cur]

		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			next := Position{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if !next.InBounds() || board.Occupied(next) {
				continue
			}
			cost := curCost + terrain.At(next).MoveCost
			if cost > budget {
				continue
			}
			if prev, seen := best[next]; seen && prev <= cost {
				continue
			}
			best[next] = cost
			frontier = append(frontier, next)
			result[next] = true
		}
	}

	return result
}

// ValidAttackTargets returns the living opposing characters within the
// character's basic-attack Manhattan range.
func ValidAttackTargets(board *Board, chars map[string]*Character, ch *Character, tuning rules.Tuning) []*Character {
	return targetsInRange(chars, ch, opposing(ch.Team), tuning.AttackRange)
}

// ValidSkillTargets returns the legal targets for a skill cast. Damage and
// debuff skills target opposing characters; heals and buffs target allies
// (including the caster). An unaffordable skill yields an empty set rather
// than an error, so a UI can grey the option out.
func ValidSkillTargets(board *Board, chars map[string]*Character, ch *Character, skill rules.SkillDef) []*Character {
	if ch.Stats.Mana < skill.ManaCost {
		return nil
	}

	team := opposing(ch.Team)
	if skill.Kind == rules.SkillHeal || skill.Kind == rules.SkillBuff {
		team = ch.Team
	}
	return targetsInRange(chars, ch, team, skill.Range)
}

func opposing(t Team) Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

// targetsInRange returns living characters of the wanted team within
// Manhattan range, ordered by ascending ID for determinism.
func targetsInRange(chars map[string]*Character, ch *Character, team Team, rng int) []*Character {
	if ch.Position == nil {
		return nil
	}

	var out []*Character
	for _, other := range chars {
		if other.Team != team || !other.Alive() || other.Position == nil {
			continue
		}
		if other.ID == ch.ID && team != ch.Team {
			continue
		}
		if ch.Position.Manhattan(*other.Position) <= rng {
			out = append(out, other)
		}
	}
	sortCharactersByID(out)
	return out
}

func sortCharactersByID(cs []*Character) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
}

// charactersInArea returns living characters of the given team within a
// Manhattan radius of center, ordered by ascending ID.
func charactersInArea(chars map[string]*Character, center Position, radius int, team Team) []*Character {
	var out []*Character
	for _, c := range chars {
		if c.Team != team || !c.Alive() || c.Position == nil {
			continue
		}
		if c.Position.Manhattan(center) <= radius {
			out = append(out, c)
		}
	}
	sortCharactersByID(out)
	return out
}
