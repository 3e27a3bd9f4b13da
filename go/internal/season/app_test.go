package season

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league/leaguetest"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

func setup(t *testing.T) (*leaguetest.Store, *App, models.Season, *clockwork.FakeClock) {
	t.Helper()
	store := leaguetest.NewStore()
	season, err := store.CreateSeason(context.Background(), models.DefaultSeasonSettings())
	require.NoError(t, err)
	clock := clockwork.NewFakeClock()
	return store, NewApp(store, clock), season, clock
}

func TestSetSeasonStatePreSeasonToDrafting(t *testing.T) {
	ctx := context.Background()
	store, app, season, _ := setup(t)
	admin := uuid.New()

	// Draft order [U2(turn 1), U1(turn 2)]; U1 still has leftover
	// roster state from a previous year.
	u1, u2 := uuid.New(), uuid.New()
	teamID := uuid.New()
	store.Teams[teamID] = models.Team{ID: teamID, OwnerID: u1, CaptainID: &u1}
	playerID := uuid.New()
	pos := models.PositionCatcher
	ord := 2
	store.Players[playerID] = models.Player{
		ID:           playerID,
		TeamID:       &teamID,
		Position:     &pos,
		BattingOrder: &ord,
		IsStarred:    true,
	}
	require.NoError(t, store.InsertEntry(ctx, season.ID, u2, 1))
	require.NoError(t, store.InsertEntry(ctx, season.ID, u1, 2))

	result, err := app.SetSeasonState(ctx, admin, models.SeasonPhaseDrafting)
	require.NoError(t, err)
	require.True(t, result.OK, result.Reason)

	current, err := store.GetCurrentSeason(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SeasonPhaseDrafting, current.Phase)
	require.NotNil(t, current.CurrentDrafterID)
	assert.Equal(t, u2, *current.CurrentDrafterID)

	player := store.Players[playerID]
	assert.Nil(t, player.TeamID)
	assert.Nil(t, player.Position)
	assert.Nil(t, player.BattingOrder)
	assert.False(t, player.IsStarred)
	assert.Nil(t, store.Teams[teamID].CaptainID)

	count, err := store.CountByType(ctx, season.ID, events.EventTypeSeasonStateUpdate)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSetSeasonStateDraftingRequiresOrder(t *testing.T) {
	ctx := context.Background()
	_, app, _, _ := setup(t)

	result, err := app.SetSeasonState(ctx, uuid.New(), models.SeasonPhaseDrafting)
	require.NoError(t, err)
	assert.False(t, result.OK)
}

func TestSetSeasonStateDraftingToPlayingClearsDrafter(t *testing.T) {
	ctx := context.Background()
	store, app, season, _ := setup(t)
	u1 := uuid.New()
	require.NoError(t, store.InsertEntry(ctx, season.ID, u1, 1))

	result, err := app.SetSeasonState(ctx, uuid.New(), models.SeasonPhaseDrafting)
	require.NoError(t, err)
	require.True(t, result.OK)

	result, err = app.SetSeasonState(ctx, uuid.New(), models.SeasonPhasePlaying)
	require.NoError(t, err)
	require.True(t, result.OK)

	current, err := store.GetCurrentSeason(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SeasonPhasePlaying, current.Phase)
	assert.Nil(t, current.CurrentDrafterID)
}

func TestSetCurrentDraftingUser(t *testing.T) {
	ctx := context.Background()
	store, app, season, _ := setup(t)
	u1, u2 := uuid.New(), uuid.New()
	require.NoError(t, store.InsertEntry(ctx, season.ID, u1, 1))
	require.NoError(t, store.InsertEntry(ctx, season.ID, u2, 2))
	require.NoError(t, store.UpdatePhase(ctx, season.ID, models.SeasonPhaseDrafting))
	require.NoError(t, store.SetCurrentDrafter(ctx, season.ID, &u1))

	result, err := app.SetCurrentDraftingUser(ctx, uuid.New(), u2)
	require.NoError(t, err)
	require.True(t, result.OK)
	current, err := store.GetCurrentSeason(ctx)
	require.NoError(t, err)
	assert.Equal(t, u2, *current.CurrentDrafterID)

	// Only seated drafters qualify.
	result, err = app.SetCurrentDraftingUser(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, result.OK)

	// Only during drafting.
	require.NoError(t, store.UpdatePhase(ctx, season.ID, models.SeasonPhasePlaying))
	result, err = app.SetCurrentDraftingUser(ctx, uuid.New(), u1)
	require.NoError(t, err)
	assert.False(t, result.OK)
}

func TestDraftTimer(t *testing.T) {
	ctx := context.Background()
	store, app, _, clock := setup(t)

	require.NoError(t, app.StartDraftTimer(ctx, 90))
	current, err := store.GetCurrentSeason(ctx)
	require.NoError(t, err)
	require.NotNil(t, current.TimerStartedAt)
	assert.Equal(t, clock.Now(), *current.TimerStartedAt)
	assert.Nil(t, current.TimerPausedAt)
	assert.Equal(t, 90, current.TimerDurationSec)

	clock.Advance(30 * time.Second)
	require.NoError(t, app.PauseDraftTimer(ctx))
	current, err = store.GetCurrentSeason(ctx)
	require.NoError(t, err)
	require.NotNil(t, current.TimerPausedAt)
	assert.Equal(t, 30*time.Second, current.TimerPausedAt.Sub(*current.TimerStartedAt))

	require.NoError(t, app.ResetDraftTimer(ctx))
	current, err = store.GetCurrentSeason(ctx)
	require.NoError(t, err)
	assert.Nil(t, current.TimerStartedAt)
	assert.Nil(t, current.TimerPausedAt)
	assert.Equal(t, 90, current.TimerDurationSec)
}

func TestCreateSeasonValidatesSettings(t *testing.T) {
	ctx := context.Background()
	_, app, _, _ := setup(t)
	_, err := app.CreateSeason(ctx, models.SeasonSettings{TeamSize: 5, LineupSize: 9})
	assert.Error(t, err)
}
