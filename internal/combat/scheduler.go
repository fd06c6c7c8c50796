package combat

import "sort"

// ComputeTurnOrder returns the per-round initiative sequence: living
// characters by descending effective speed, ties broken by stable
// insertion order (players before enemies at equal speed, then original
// squad order). The input slice is the battle's canonical roster order.
func ComputeTurnOrder(roster []*Character) []string {
	type entry struct {
		id   string
		spd  int
		team Team
		idx  int
	}

	entries := make([]entry, 0, len(roster))
	for i, c := range roster {
		if !c.Alive() {
			continue
		}
		entries = append(entries, entry{
			id:   c.ID,
			spd:  c.EffectiveStats().Spd,
			team: c.Team,
			idx:  i,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].spd != entries[j].spd {
			return entries[i].spd > entries[j].spd
		}
		if entries[i].team != entries[j].team {
			return entries[i].team == TeamPlayer
		}
		return entries[i].idx < entries[j].idx
	})

	order := make([]string, len(entries))
	for i, e := range entries {
		order[i] = e.id
	}
	return order
}
