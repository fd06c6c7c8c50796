package combat

import (
	"math/rand"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/skirmishlabs/combat-api/internal/errors"
)

// SeededRoller is a battle-scoped dice.Roller backed by a seeded PRNG, so
// a battle log replays exactly given the same seed and input actions.
type SeededRoller struct {
	rng *rand.Rand
}

// NewSeededRoller creates a roller from a battle seed.
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{
		rng: rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay RNG, reproducibility is the point
	}
}

// Roll returns a value in [1, size].
func (r *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	return r.rng.Intn(size) + 1, nil
}

// RollN returns count values in [1, size].
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	if count <= 0 {
		return nil, errors.InvalidArgumentf("die count must be positive, got %d", count)
	}
	results := make([]int, count)
	for i := range results {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

var _ dice.Roller = (*SeededRoller)(nil)
