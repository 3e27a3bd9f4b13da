package draft

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandlot-league/clubhouse/go/internal/events"
	"github.com/sandlot-league/clubhouse/go/internal/league/leaguetest"
	"github.com/sandlot-league/clubhouse/go/internal/models"
)

type fixture struct {
	store   *leaguetest.Store
	app     *App
	season  models.Season
	users   []uuid.UUID
	teams   []uuid.UUID
	players []uuid.UUID
}

// newFixture seats numUsers drafters in a drafting-phase season with
// numPlayers free agents. The first drafter is on the clock.
func newFixture(t *testing.T, numUsers, numPlayers int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := leaguetest.NewStore()
	season, err := store.CreateSeason(ctx, models.DefaultSeasonSettings())
	require.NoError(t, err)

	f := &fixture{store: store, season: season}
	for i := 0; i < numUsers; i++ {
		userID := uuid.New()
		teamID := uuid.New()
		store.Users[userID] = models.User{ID: userID}
		store.Teams[teamID] = models.Team{ID: teamID, OwnerID: userID}
		require.NoError(t, store.InsertEntry(ctx, season.ID, userID, i+1))
		f.users = append(f.users, userID)
		f.teams = append(f.teams, teamID)
	}
	for i := 0; i < numPlayers; i++ {
		playerID := uuid.New()
		store.Players[playerID] = models.Player{ID: playerID, Name: "player"}
		f.players = append(f.players, playerID)
	}

	require.NoError(t, store.UpdatePhase(ctx, season.ID, models.SeasonPhaseDrafting))
	require.NoError(t, store.SetCurrentDrafter(ctx, season.ID, &f.users[0]))
	f.season, err = store.GetCurrentSeason(ctx)
	require.NoError(t, err)

	f.app = &App{
		runner: store,
		clock:  clockwork.NewFakeClock(),
		rng:    rand.New(rand.NewSource(1)),
	}
	return f
}

func (f *fixture) currentDrafter(t *testing.T) uuid.UUID {
	t.Helper()
	season, err := f.store.GetCurrentSeason(context.Background())
	require.NoError(t, err)
	require.NotNil(t, season.CurrentDrafterID)
	return *season.CurrentDrafterID
}

func TestDraftPlayerSnakeOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3, 9)

	// Rounds of 3 alternate direction: forward, reverse, forward.
	want := []int{0, 1, 2, 2, 1, 0, 0, 1, 2}
	for pick, userIdx := range want {
		drafter := f.currentDrafter(t)
		assert.Equal(t, f.users[userIdx], drafter, "pick %d", pick)

		result, err := f.app.DraftPlayer(ctx, drafter, f.players[pick])
		require.NoError(t, err)
		require.True(t, result.OK, "pick %d rejected: %s", pick, result.Reason)
	}
}

func TestDraftPlayerAssignsRosterAndLineup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3, 12)

	result, err := f.app.DraftPlayer(ctx, f.users[0], f.players[0])
	require.NoError(t, err)
	require.True(t, result.OK)

	player := f.store.Players[f.players[0]]
	require.NotNil(t, player.TeamID)
	assert.Equal(t, f.teams[0], *player.TeamID)
	require.True(t, player.InLineup())
	assert.Contains(t, models.FieldingPositions, *player.Position)
	assert.GreaterOrEqual(t, *player.BattingOrder, 1)
	assert.LessOrEqual(t, *player.BattingOrder, 9)
}

func TestDraftPlayerFirstPickStarred(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, 4)

	result, err := f.app.DraftPlayer(ctx, f.users[0], f.players[0])
	require.NoError(t, err)
	require.True(t, result.OK)
	assert.True(t, f.store.Players[f.players[0]].IsStarred)

	// U2 then U2 again (snake turn-around with N=2).
	for _, pick := range []int{1, 2} {
		result, err = f.app.DraftPlayer(ctx, f.currentDrafter(t), f.players[pick])
		require.NoError(t, err)
		require.True(t, result.OK)
	}
	// U1's second pick must not star.
	result, err = f.app.DraftPlayer(ctx, f.users[0], f.players[3])
	require.NoError(t, err)
	require.True(t, result.OK)
	assert.True(t, f.store.Players[f.players[0]].IsStarred)
	assert.False(t, f.store.Players[f.players[3]].IsStarred)
}

func TestDraftPlayerCaptainAssignment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, 4)

	eligible := uuid.New()
	ineligible := uuid.New()
	f.store.Characters[eligible] = models.Character{ID: eligible, CaptainEligible: true}
	f.store.Characters[ineligible] = models.Character{ID: ineligible, CaptainEligible: false}

	first := f.store.Players[f.players[0]]
	first.CharacterID = &ineligible
	f.store.Players[f.players[0]] = first
	second := f.store.Players[f.players[1]]
	second.CharacterID = &eligible
	f.store.Players[f.players[1]] = second

	result, err := f.app.DraftPlayer(ctx, f.users[0], f.players[0])
	require.NoError(t, err)
	require.True(t, result.OK)
	assert.Nil(t, f.store.Teams[f.teams[0]].CaptainID, "ineligible character must not become captain")

	// Snake: U2 drafts twice, then U1 again.
	for _, pick := range []int{2, 3} {
		result, err = f.app.DraftPlayer(ctx, f.currentDrafter(t), f.players[pick])
		require.NoError(t, err)
		require.True(t, result.OK)
	}
	result, err = f.app.DraftPlayer(ctx, f.users[0], f.players[1])
	require.NoError(t, err)
	require.True(t, result.OK)
	require.NotNil(t, f.store.Teams[f.teams[0]].CaptainID)
	assert.Equal(t, f.players[1], *f.store.Teams[f.teams[0]].CaptainID)
}

func TestDraftPlayerRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("not drafting phase", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		require.NoError(t, f.store.UpdatePhase(ctx, f.season.ID, models.SeasonPhasePlaying))
		result, err := f.app.DraftPlayer(ctx, f.users[0], f.players[0])
		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Contains(t, result.Reason, "drafting")
	})

	t.Run("not your turn", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		result, err := f.app.DraftPlayer(ctx, f.users[1], f.players[0])
		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Contains(t, result.Reason, "turn")
	})

	t.Run("player already taken", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		result, err := f.app.DraftPlayer(ctx, f.users[0], f.players[0])
		require.NoError(t, err)
		require.True(t, result.OK)
		result, err = f.app.DraftPlayer(ctx, f.users[1], f.players[0])
		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Contains(t, result.Reason, "already")
	})

	t.Run("unknown player", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		result, err := f.app.DraftPlayer(ctx, f.users[0], uuid.New())
		require.NoError(t, err)
		assert.False(t, result.OK)
	})

	t.Run("rejection mutates nothing", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		before := len(f.store.Events)
		result, err := f.app.DraftPlayer(ctx, f.users[1], f.players[0])
		require.NoError(t, err)
		require.False(t, result.OK)
		assert.Nil(t, f.store.Players[f.players[0]].TeamID)
		assert.Len(t, f.store.Events, before)
		assert.Equal(t, f.users[0], f.currentDrafter(t))
	})
}

func TestDraftPlayerTeamFull(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, 25)

	// Fill both rosters to TEAM_SIZE via alternating picks.
	for pick := 0; pick < 20; pick++ {
		result, err := f.app.DraftPlayer(ctx, f.currentDrafter(t), f.players[pick])
		require.NoError(t, err)
		require.True(t, result.OK, "pick %d: %s", pick, result.Reason)
	}
	drafter := f.currentDrafter(t)
	result, err := f.app.DraftPlayer(ctx, drafter, f.players[20])
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "full")
}

func TestDraftPlayerLineupCapacity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1, 10)

	// Single drafter keeps the turn in a one-person order.
	for pick := 0; pick < 10; pick++ {
		result, err := f.app.DraftPlayer(ctx, f.users[0], f.players[pick])
		require.NoError(t, err)
		require.True(t, result.OK)
	}

	inLineup := 0
	positions := make(map[models.FieldingPosition]bool)
	orders := make(map[int]bool)
	for _, playerID := range f.players {
		p := f.store.Players[playerID]
		if !p.InLineup() {
			continue
		}
		inLineup++
		assert.False(t, positions[*p.Position], "duplicate position %s", *p.Position)
		assert.False(t, orders[*p.BattingOrder], "duplicate batting order %d", *p.BattingOrder)
		positions[*p.Position] = true
		orders[*p.BattingOrder] = true
	}
	// LINEUP_SIZE is 9; the tenth player stays benched.
	assert.Equal(t, 9, inLineup)
}

func TestDraftPlayerEmitsPickEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, 4)

	result, err := f.app.DraftPlayer(ctx, f.users[0], f.players[0])
	require.NoError(t, err)
	require.True(t, result.OK)

	require.Len(t, f.store.Events, 1)
	event := f.store.Events[0]
	assert.Equal(t, events.EventTypeDraftUpdate, event.Type)
	assert.Equal(t, f.users[0], event.ActorID)

	result, err = f.app.DraftPlayer(ctx, f.users[1], f.players[1])
	require.NoError(t, err)
	require.True(t, result.OK)
	count, err := f.store.CountByType(ctx, f.season.ID, events.EventTypeDraftUpdate)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAutoDraftResolvesQueuedPicks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3, 9)

	// U2 and U3 both have queued picks; U1's pick should chain through
	// both, leaving the turn at U3 (snake turn-around) with its queue
	// consumed.
	_, err := f.store.SetPreDraft(ctx, f.season.ID, f.users[1], &f.players[1])
	require.NoError(t, err)
	_, err = f.store.SetPreDraft(ctx, f.season.ID, f.users[2], &f.players[2])
	require.NoError(t, err)

	result, err := f.app.DraftPlayer(ctx, f.users[0], f.players[0])
	require.NoError(t, err)
	require.True(t, result.OK)

	assert.Equal(t, f.teams[1], *f.store.Players[f.players[1]].TeamID)
	assert.Equal(t, f.teams[2], *f.store.Players[f.players[2]].TeamID)
	assert.Equal(t, f.users[2], f.currentDrafter(t))

	for _, entry := range f.store.Order[f.season.ID] {
		assert.Nil(t, entry.PreDraftPlayerID)
	}
	count, err := f.store.CountByType(ctx, f.season.ID, events.EventTypeDraftUpdate)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDraftPlayerSweepsQueuesForTakenPlayer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3, 9)

	// U3 queued the same player U1 is about to take.
	_, err := f.store.SetPreDraft(ctx, f.season.ID, f.users[2], &f.players[0])
	require.NoError(t, err)

	result, err := f.app.DraftPlayer(ctx, f.users[0], f.players[0])
	require.NoError(t, err)
	require.True(t, result.OK)

	entry, err := f.store.GetEntry(ctx, f.season.ID, f.users[2])
	require.NoError(t, err)
	assert.Nil(t, entry.PreDraftPlayerID)
	assert.Equal(t, f.users[1], f.currentDrafter(t))
}

func TestAutoDraftClearsStaleQueueEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3, 9)

	// Seed U2's queue with a player that no longer exists; the sweep
	// never saw it because no pick ever referenced the id.
	ghost := uuid.New()
	_, err := f.store.SetPreDraft(ctx, f.season.ID, f.users[1], &ghost)
	require.NoError(t, err)

	result, err := f.app.DraftPlayer(ctx, f.users[0], f.players[0])
	require.NoError(t, err)
	require.True(t, result.OK)

	// Queue cleared, no auto pick, turn stays with U2.
	entry, err := f.store.GetEntry(ctx, f.season.ID, f.users[1])
	require.NoError(t, err)
	assert.Nil(t, entry.PreDraftPlayerID)
	assert.Equal(t, f.users[1], f.currentDrafter(t))
	count, err := f.store.CountByType(ctx, f.season.ID, events.EventTypeDraftUpdate)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSetPreDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("queues a free agent", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		result, err := f.app.SetPreDraft(ctx, f.users[1], f.players[1])
		require.NoError(t, err)
		require.True(t, result.OK)
		queued, err := f.app.GetPreDraft(ctx, f.users[1])
		require.NoError(t, err)
		require.NotNil(t, queued)
		assert.Equal(t, f.players[1], *queued)
	})

	t.Run("rejects outside drafting phase", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		require.NoError(t, f.store.UpdatePhase(ctx, f.season.ID, models.SeasonPhasePlaying))
		result, err := f.app.SetPreDraft(ctx, f.users[1], f.players[1])
		require.NoError(t, err)
		assert.False(t, result.OK)
	})

	t.Run("rejects taken player", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		taken := f.store.Players[f.players[0]]
		taken.TeamID = &f.teams[0]
		f.store.Players[f.players[0]] = taken
		result, err := f.app.SetPreDraft(ctx, f.users[1], f.players[0])
		require.NoError(t, err)
		assert.False(t, result.OK)
	})

	t.Run("rejects user outside the order", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		result, err := f.app.SetPreDraft(ctx, uuid.New(), f.players[0])
		require.NoError(t, err)
		assert.False(t, result.OK)
	})

	t.Run("clear resets the queue", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		result, err := f.app.SetPreDraft(ctx, f.users[1], f.players[1])
		require.NoError(t, err)
		require.True(t, result.OK)
		result, err = f.app.ClearPreDraft(ctx, f.users[1])
		require.NoError(t, err)
		require.True(t, result.OK)
		queued, err := f.app.GetPreDraft(ctx, f.users[1])
		require.NoError(t, err)
		assert.Nil(t, queued)
	})
}

func TestSetPlayerStarred(t *testing.T) {
	ctx := context.Background()

	assign := func(t *testing.T, f *fixture, playerID uuid.UUID, teamID uuid.UUID) {
		t.Helper()
		p := f.store.Players[playerID]
		p.TeamID = &teamID
		f.store.Players[playerID] = p
	}

	t.Run("starring unstars teammates", func(t *testing.T) {
		f := newFixture(t, 2, 3)
		assign(t, f, f.players[0], f.teams[0])
		assign(t, f, f.players[1], f.teams[0])

		result, err := f.app.SetPlayerStarred(ctx, f.users[0], f.players[0])
		require.NoError(t, err)
		require.True(t, result.OK)
		result, err = f.app.SetPlayerStarred(ctx, f.users[0], f.players[1])
		require.NoError(t, err)
		require.True(t, result.OK)

		assert.False(t, f.store.Players[f.players[0]].IsStarred)
		assert.True(t, f.store.Players[f.players[1]].IsStarred)
	})

	t.Run("toggles off", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		assign(t, f, f.players[0], f.teams[0])
		for i := 0; i < 2; i++ {
			result, err := f.app.SetPlayerStarred(ctx, f.users[0], f.players[0])
			require.NoError(t, err)
			require.True(t, result.OK)
		}
		assert.False(t, f.store.Players[f.players[0]].IsStarred)
	})

	t.Run("rejects player on another team", func(t *testing.T) {
		f := newFixture(t, 2, 2)
		assign(t, f, f.players[0], f.teams[1])
		result, err := f.app.SetPlayerStarred(ctx, f.users[0], f.players[0])
		require.NoError(t, err)
		assert.False(t, result.OK)
	})
}
