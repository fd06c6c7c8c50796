package battles_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirmishlabs/combat-api/internal/errors"
	"github.com/skirmishlabs/combat-api/internal/pkg/clock"
	"github.com/skirmishlabs/combat-api/internal/repositories/battles"
)

func TestInMemoryRepository_RoundTrip(t *testing.T) {
	clk := &clock.Fixed{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := battles.NewInMemoryRepository(clk)
	ctx := context.Background()

	record := &battles.BattleRecord{ID: "btl_1", StageID: "stage-1", Winner: "player"}

	saved, err := repo.Save(ctx, battles.SaveInput{Record: record})
	require.NoError(t, err)
	assert.Equal(t, clk.Now(), saved.Record.CompletedAt)

	got, err := repo.Get(ctx, battles.GetInput{ID: "btl_1"})
	require.NoError(t, err)
	assert.Equal(t, saved.Record, got.Record)

	// The stored copy is independent of the caller's record.
	record.Winner = "enemy"
	got, err = repo.Get(ctx, battles.GetInput{ID: "btl_1"})
	require.NoError(t, err)
	assert.Equal(t, "player", got.Record.Winner)

	_, err = repo.Delete(ctx, battles.DeleteInput{ID: "btl_1"})
	require.NoError(t, err)
	_, err = repo.Get(ctx, battles.GetInput{ID: "btl_1"})
	assert.True(t, errors.IsNotFound(err))
}
