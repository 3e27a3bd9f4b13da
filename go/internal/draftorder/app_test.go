package draftorder

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandlot-league/clubhouse/go/internal/league/leaguetest"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

func setup(t *testing.T, numUsers int) (*leaguetest.Store, *App, models.Season, []uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	store := leaguetest.NewStore()
	season, err := store.CreateSeason(ctx, models.DefaultSeasonSettings())
	require.NoError(t, err)
	var users []uuid.UUID
	for i := 0; i < numUsers; i++ {
		userID := uuid.New()
		require.NoError(t, store.InsertEntry(ctx, season.ID, userID, i+1))
		users = append(users, userID)
	}
	return store, NewApp(store), season, users
}

func orderedUsers(t *testing.T, store *leaguetest.Store, seasonID uuid.UUID) []uuid.UUID {
	t.Helper()
	order, err := store.ListDraftOrder(context.Background(), seasonID)
	require.NoError(t, err)
	var out []uuid.UUID
	for i, entry := range order {
		assert.Equal(t, i+1, entry.TurnIndex, "turn indexes must stay dense")
		out = append(out, entry.UserID)
	}
	return out
}

func TestAdjustDraftingOrder(t *testing.T) {
	ctx := context.Background()
	store, app, season, users := setup(t, 3)
	admin := uuid.New()

	result, err := app.AdjustDraftingOrder(ctx, admin, users[2], DirectionUp)
	require.NoError(t, err)
	require.True(t, result.OK, result.Reason)
	assert.Equal(t, []uuid.UUID{users[0], users[2], users[1]}, orderedUsers(t, store, season.ID))

	result, err = app.AdjustDraftingOrder(ctx, admin, users[0], DirectionDown)
	require.NoError(t, err)
	require.True(t, result.OK)
	assert.Equal(t, []uuid.UUID{users[2], users[0], users[1]}, orderedUsers(t, store, season.ID))
}

func TestAdjustDraftingOrderEdges(t *testing.T) {
	ctx := context.Background()
	store, app, season, users := setup(t, 2)
	admin := uuid.New()

	result, err := app.AdjustDraftingOrder(ctx, admin, users[0], DirectionUp)
	require.NoError(t, err)
	assert.False(t, result.OK)

	result, err = app.AdjustDraftingOrder(ctx, admin, users[1], DirectionDown)
	require.NoError(t, err)
	assert.False(t, result.OK)

	result, err = app.AdjustDraftingOrder(ctx, admin, uuid.New(), DirectionUp)
	require.NoError(t, err)
	assert.False(t, result.OK)

	_, err = app.AdjustDraftingOrder(ctx, admin, users[0], Direction("sideways"))
	assert.Error(t, err)

	assert.Equal(t, []uuid.UUID{users[0], users[1]}, orderedUsers(t, store, season.ID))
}

func TestRegisterDrafter(t *testing.T) {
	ctx := context.Background()
	store, app, season, users := setup(t, 2)

	newcomer := uuid.New()
	result, err := app.RegisterDrafter(ctx, newcomer)
	require.NoError(t, err)
	require.True(t, result.OK)
	assert.Equal(t, []uuid.UUID{users[0], users[1], newcomer}, orderedUsers(t, store, season.ID))

	result, err = app.RegisterDrafter(ctx, newcomer)
	require.NoError(t, err)
	assert.False(t, result.OK)

	require.NoError(t, store.UpdatePhase(ctx, season.ID, models.SeasonPhaseDrafting))
	result, err = app.RegisterDrafter(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, result.OK)
}
