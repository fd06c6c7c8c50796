package combat

import (
	"hash/fnv"
	"math/rand"
)

// TerrainType classifies a board cell.
type TerrainType string

// Terrain types
const (
	TerrainGrassland TerrainType = "grassland"
	TerrainForest    TerrainType = "forest"
	TerrainMountain  TerrainType = "mountain"
	TerrainWater     TerrainType = "water"
	TerrainRoad      TerrainType = "road"
	TerrainRuins     TerrainType = "ruins"
)

// TerrainCell carries the modifiers a terrain type applies to characters
// standing on it. ElementMods is a percent adjustment to incoming skill
// damage of the given element.
type TerrainCell struct {
	Type        TerrainType
	MoveCost    int
	DefenseMod  int
	EvasionMod  int
	ElementMods map[string]int
}

var terrainCells = map[TerrainType]TerrainCell{
	TerrainGrassland: {Type: TerrainGrassland, MoveCost: 1},
	TerrainForest:    {Type: TerrainForest, MoveCost: 2, EvasionMod: 15, ElementMods: map[string]int{"fire": 25}},
	TerrainMountain:  {Type: TerrainMountain, MoveCost: 3, DefenseMod: 5, ElementMods: map[string]int{"lightning": 25}},
	TerrainWater:     {Type: TerrainWater, MoveCost: 3, EvasionMod: -10, ElementMods: map[string]int{"ice": 25, "fire": -25}},
	TerrainRoad:      {Type: TerrainRoad, MoveCost: 1, EvasionMod: -5},
	TerrainRuins:     {Type: TerrainRuins, MoveCost: 2, DefenseMod: 10, ElementMods: map[string]int{"shadow": 25}},
}

// CellFor returns the cell definition for a terrain type. Unknown types
// fall back to grassland.
func CellFor(t TerrainType) TerrainCell {
	if c, ok := terrainCells[t]; ok {
		return c
	}
	return terrainCells[TerrainGrassland]
}

// TerrainMap is the fixed 8x8 terrain grid, generated once per battle and
// immutable thereafter.
type TerrainMap [BoardSize][BoardSize]TerrainType

// At returns the cell definition at p. Out-of-bounds positions read as
// grassland; callers validate bounds before pathing.
func (m *TerrainMap) At(p Position) TerrainCell {
	if !p.InBounds() {
		return terrainCells[TerrainGrassland]
	}
	return CellFor(m[p.Row][p.Col])
}

// GenerateTerrainMap produces the terrain for a stage. Generation is
// deterministic per stage ID so a battle on the same stage always replays
// on the same map. Boss stages bias toward ruins and mountains.
func GenerateTerrainMap(stageID string, isBossStage bool) TerrainMap {
	h := fnv.New64a()
	_, _ = h.Write([]byte(stageID))
	rng := rand.New(rand.NewSource(int64(h.Sum64()))) // #nosec G404 -- deterministic map generation, not security

	weighted := []struct {
		t TerrainType
		w int
	}{
		{TerrainGrassland, 40},
		{TerrainForest, 18},
		{TerrainRoad, 15},
		{TerrainMountain, 12},
		{TerrainWater, 10},
		{TerrainRuins, 5},
	}
	if isBossStage {
		weighted = []struct {
			t TerrainType
			w int
		}{
			{TerrainRuins, 30},
			{TerrainGrassland, 25},
			{TerrainMountain, 20},
			{TerrainForest, 15},
			{TerrainRoad, 10},
		}
	}

	total := 0
	for _, wt := range weighted {
		total += wt.w
	}

	var m TerrainMap
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			// Keep the two deployment columns walkable so squads never
			// spawn in high-cost terrain.
			if col == 0 || col == BoardSize-1 {
				m[row][col] = TerrainGrassland
				continue
			}
			roll := rng.Intn(total)
			for _, wt := range weighted {
				if roll < wt.w {
					m[row][col] = wt.t
					break
				}
				roll -= wt.w
			}
		}
	}
	return m
}

// ApplyTerrainModifiers returns a copy of stats adjusted by the cell's
// defense and evasion modifiers. The input is never mutated; derived
// values clamp at zero.
func ApplyTerrainModifiers(stats Stats, cell TerrainCell) Stats {
	adjusted := stats
	adjusted.Def = clampMin(stats.Def+cell.DefenseMod, 0)
	adjusted.Eva = clampMin(stats.Eva+cell.EvasionMod, 0)
	return adjusted
}

func clampMin(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
