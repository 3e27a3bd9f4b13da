package trade

import (
	"context"
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
	store  *leaguetest.Store
	app    *App
	season models.Season
	userA  uuid.UUID
	userB  uuid.UUID
	teamA  uuid.UUID
	teamB  uuid.UUID
	// rosterA and rosterB hold TEAM_SIZE players each.
	rosterA []uuid.UUID
	rosterB []uuid.UUID
}

// newFixture builds a playing-phase season with two full rosters, so a
// balanced trade is always within the size bounds.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := leaguetest.NewStore()
	season, err := store.CreateSeason(ctx, models.DefaultSeasonSettings())
	require.NoError(t, err)
	require.NoError(t, store.UpdatePhase(ctx, season.ID, models.SeasonPhasePlaying))

	f := &fixture{
		store: store,
		userA: uuid.New(),
		userB: uuid.New(),
		teamA: uuid.New(),
		teamB: uuid.New(),
	}
	f.season, err = store.GetCurrentSeason(ctx)
	require.NoError(t, err)
	store.Teams[f.teamA] = models.Team{ID: f.teamA, OwnerID: f.userA}
	store.Teams[f.teamB] = models.Team{ID: f.teamB, OwnerID: f.userB}

	seed := func(teamID uuid.UUID) []uuid.UUID {
		var roster []uuid.UUID
		for i := 0; i < f.season.Settings.TeamSize; i++ {
			playerID := uuid.New()
			player := models.Player{ID: playerID, Name: "player", TeamID: &teamID}
			if i < f.season.Settings.LineupSize {
				pos := models.FieldingPositions[i]
				ord := i + 1
				player.Position = &pos
				player.BattingOrder = &ord
			}
			store.Players[playerID] = player
			roster = append(roster, playerID)
		}
		return roster
	}
	f.rosterA = seed(f.teamA)
	f.rosterB = seed(f.teamB)

	f.app = NewApp(store, clockwork.NewFakeClock())
	return f
}

func (f *fixture) propose(t *testing.T, fromIDs, toIDs []uuid.UUID) uuid.UUID {
	t.Helper()
	resp, err := f.app.CreateTradeRequest(context.Background(), CreateTradeRequest{
		FromUserID:    f.userA,
		ToUserID:      f.userB,
		FromPlayerIDs: fromIDs,
		ToPlayerIDs:   toIDs,
	})
	require.NoError(t, err)
	require.True(t, resp.OK, resp.Reason)
	require.NotNil(t, resp.TradeID)
	return *resp.TradeID
}

func TestCreateTradeRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tradeID := f.propose(t, []uuid.UUID{f.rosterA[0], f.rosterA[1]}, []uuid.UUID{f.rosterB[0]})

	trade, err := f.app.GetTradeByID(ctx, tradeID)
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusPending, trade.Status)
	require.Len(t, trade.Players, 3)
	for _, leg := range trade.Players {
		if leg.PlayerID == f.rosterB[0] {
			assert.Equal(t, f.teamB, leg.FromTeamID)
			assert.Equal(t, f.teamA, leg.ToTeamID)
		} else {
			assert.Equal(t, f.teamA, leg.FromTeamID)
			assert.Equal(t, f.teamB, leg.ToTeamID)
		}
	}

	count, err := f.store.CountByType(ctx, f.season.ID, events.EventTypeTradeProposed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestValidateTradeRequestRejections(t *testing.T) {
	ctx := context.Background()

	check := func(t *testing.T, f *fixture, req CreateTradeRequest, wantReason string) {
		t.Helper()
		result, err := f.app.ValidateTradeRequest(ctx, req)
		require.NoError(t, err)
		require.False(t, result.OK)
		assert.Contains(t, result.Reason, wantReason)
	}

	t.Run("wrong phase", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.UpdatePhase(ctx, f.season.ID, models.SeasonPhaseDrafting))
		check(t, f, CreateTradeRequest{
			FromUserID:    f.userA,
			ToUserID:      f.userB,
			FromPlayerIDs: []uuid.UUID{f.rosterA[0]},
			ToPlayerIDs:   []uuid.UUID{f.rosterB[0]},
		}, "playing")
	})

	t.Run("self trade", func(t *testing.T) {
		f := newFixture(t)
		check(t, f, CreateTradeRequest{
			FromUserID:    f.userA,
			ToUserID:      f.userA,
			FromPlayerIDs: []uuid.UUID{f.rosterA[0]},
		}, "yourself")
	})

	t.Run("recipient without team", func(t *testing.T) {
		f := newFixture(t)
		check(t, f, CreateTradeRequest{
			FromUserID:    f.userA,
			ToUserID:      uuid.New(),
			FromPlayerIDs: []uuid.UUID{f.rosterA[0]},
		}, "no team")
	})

	t.Run("player not on offering roster", func(t *testing.T) {
		f := newFixture(t)
		check(t, f, CreateTradeRequest{
			FromUserID:    f.userA,
			ToUserID:      f.userB,
			FromPlayerIDs: []uuid.UUID{f.rosterB[0]},
			ToPlayerIDs:   []uuid.UUID{f.rosterB[1]},
		}, "not on the offering team")
	})

	t.Run("no players", func(t *testing.T) {
		f := newFixture(t)
		check(t, f, CreateTradeRequest{
			FromUserID: f.userA,
			ToUserID:   f.userB,
		}, "at least one player")
	})

	t.Run("captain protected", func(t *testing.T) {
		f := newFixture(t)
		team := f.store.Teams[f.teamA]
		team.CaptainID = &f.rosterA[0]
		f.store.Teams[f.teamA] = team
		check(t, f, CreateTradeRequest{
			FromUserID:    f.userA,
			ToUserID:      f.userB,
			FromPlayerIDs: []uuid.UUID{f.rosterA[0]},
			ToPlayerIDs:   []uuid.UUID{f.rosterB[0]},
		}, "captain")
	})

	t.Run("unbalanced trade breaks size bounds", func(t *testing.T) {
		f := newFixture(t)
		// A gives two, receives one: A drops to 9 which is still the
		// lineup floor, B rises to 11 which exceeds TEAM_SIZE.
		check(t, f, CreateTradeRequest{
			FromUserID:    f.userA,
			ToUserID:      f.userB,
			FromPlayerIDs: []uuid.UUID{f.rosterA[0], f.rosterA[1], f.rosterA[2]},
			ToPlayerIDs:   []uuid.UUID{f.rosterB[0]},
		}, "minimum roster size")
	})
}

func TestPendingTradeConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.propose(t, []uuid.UUID{f.rosterA[0]}, []uuid.UUID{f.rosterB[0]})

	resp, err := f.app.CreateTradeRequest(ctx, CreateTradeRequest{
		FromUserID:    f.userA,
		ToUserID:      f.userB,
		FromPlayerIDs: []uuid.UUID{f.rosterA[0]},
		ToPlayerIDs:   []uuid.UUID{f.rosterB[1]},
	})
	require.NoError(t, err)
	require.False(t, resp.OK)
	assert.Contains(t, resp.Reason, "pending trade")
}

func TestPendingConflictReleasedOnResolution(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	blocking := f.propose(t, []uuid.UUID{f.rosterA[0]}, []uuid.UUID{f.rosterB[0]})
	result, err := f.app.DenyTrade(ctx, blocking, f.userB, nil)
	require.NoError(t, err)
	require.True(t, result.OK)

	// Same players are proposable again once the blocker is terminal.
	f.propose(t, []uuid.UUID{f.rosterA[0]}, []uuid.UUID{f.rosterB[0]})
}

func TestAcceptTradeSettlesRosters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tradeID := f.propose(t, []uuid.UUID{f.rosterA[0], f.rosterA[1]}, []uuid.UUID{f.rosterB[0]})

	result, err := f.app.AcceptTrade(ctx, tradeID, f.userB, nil)
	require.NoError(t, err)
	require.True(t, result.OK, result.Reason)

	for _, playerID := range []uuid.UUID{f.rosterA[0], f.rosterA[1]} {
		player := f.store.Players[playerID]
		require.NotNil(t, player.TeamID)
		assert.Equal(t, f.teamB, *player.TeamID)
		assert.Nil(t, player.Position)
		assert.Nil(t, player.BattingOrder)
	}
	player := f.store.Players[f.rosterB[0]]
	require.NotNil(t, player.TeamID)
	assert.Equal(t, f.teamA, *player.TeamID)
	assert.Nil(t, player.Position)
	assert.Nil(t, player.BattingOrder)

	trade, err := f.app.GetTradeByID(ctx, tradeID)
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusAccepted, trade.Status)

	count, err := f.store.CountByType(ctx, f.season.ID, events.EventTypeTradeAccepted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAcceptTradeGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("only recipient may accept", func(t *testing.T) {
		f := newFixture(t)
		tradeID := f.propose(t, []uuid.UUID{f.rosterA[0]}, []uuid.UUID{f.rosterB[0]})
		result, err := f.app.AcceptTrade(ctx, tradeID, f.userA, nil)
		require.NoError(t, err)
		require.False(t, result.OK)
		assert.Contains(t, result.Reason, "recipient")
	})

	t.Run("second accept fails not pending", func(t *testing.T) {
		f := newFixture(t)
		tradeID := f.propose(t, []uuid.UUID{f.rosterA[0]}, []uuid.UUID{f.rosterB[0]})
		result, err := f.app.AcceptTrade(ctx, tradeID, f.userB, nil)
		require.NoError(t, err)
		require.True(t, result.OK)
		result, err = f.app.AcceptTrade(ctx, tradeID, f.userB, nil)
		require.NoError(t, err)
		require.False(t, result.OK)
		assert.Contains(t, result.Reason, "not pending")
	})

	t.Run("stale proposal rejected and stays pending", func(t *testing.T) {
		f := newFixture(t)
		tradeID := f.propose(t, []uuid.UUID{f.rosterA[0]}, []uuid.UUID{f.rosterB[0]})

		// The offered player left the roster after the proposal.
		moved := f.store.Players[f.rosterA[0]]
		moved.TeamID = nil
		f.store.Players[f.rosterA[0]] = moved

		result, err := f.app.AcceptTrade(ctx, tradeID, f.userB, nil)
		require.NoError(t, err)
		require.False(t, result.OK)

		trade, err := f.app.GetTradeByID(ctx, tradeID)
		require.NoError(t, err)
		assert.Equal(t, models.TradeStatusPending, trade.Status)
		// No half-applied settlement.
		assert.Equal(t, f.teamB, *f.store.Players[f.rosterB[0]].TeamID)
	})
}

func TestDenyTrade(t *testing.T) {
	ctx := context.Background()

	t.Run("recipient denies", func(t *testing.T) {
		f := newFixture(t)
		tradeID := f.propose(t, []uuid.UUID{f.rosterA[0]}, []uuid.UUID{f.rosterB[0]})
		note := "no thanks"
		result, err := f.app.DenyTrade(ctx, tradeID, f.userB, &note)
		require.NoError(t, err)
		require.True(t, result.OK)

		trade, err := f.app.GetTradeByID(ctx, tradeID)
		require.NoError(t, err)
		assert.Equal(t, models.TradeStatusDenied, trade.Status)
		require.NotNil(t, trade.ResponseText)
		assert.Equal(t, note, *trade.ResponseText)
		// No roster movement on deny.
		assert.Equal(t, f.teamA, *f.store.Players[f.rosterA[0]].TeamID)
	})

	t.Run("proposer withdraws as cancelled", func(t *testing.T) {
		f := newFixture(t)
		tradeID := f.propose(t, []uuid.UUID{f.rosterA[0]}, []uuid.UUID{f.rosterB[0]})
		result, err := f.app.DenyTrade(ctx, tradeID, f.userA, nil)
		require.NoError(t, err)
		require.True(t, result.OK)

		trade, err := f.app.GetTradeByID(ctx, tradeID)
		require.NoError(t, err)
		assert.Equal(t, models.TradeStatusCancelled, trade.Status)
		count, err := f.store.CountByType(ctx, f.season.ID, events.EventTypeTradeCancelled)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("outsider rejected", func(t *testing.T) {
		f := newFixture(t)
		tradeID := f.propose(t, []uuid.UUID{f.rosterA[0]}, []uuid.UUID{f.rosterB[0]})
		result, err := f.app.DenyTrade(ctx, tradeID, uuid.New(), nil)
		require.NoError(t, err)
		require.False(t, result.OK)
	})
}

func TestGetPendingTradesForUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.propose(t, []uuid.UUID{f.rosterA[0]}, []uuid.UUID{f.rosterB[0]})
	second := f.propose(t, []uuid.UUID{f.rosterA[1]}, []uuid.UUID{f.rosterB[1]})
	result, err := f.app.DenyTrade(ctx, second, f.userB, nil)
	require.NoError(t, err)
	require.True(t, result.OK)

	pending, err := f.app.GetPendingTradesForUser(ctx, f.userB)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first, pending[0].ID)
	assert.Len(t, pending[0].Players, 2)
}

func TestGetTradesPagination(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		tradeID := f.propose(t, []uuid.UUID{f.rosterA[i]}, []uuid.UUID{f.rosterB[i]})
		result, err := f.app.DenyTrade(ctx, tradeID, f.userB, nil)
		require.NoError(t, err)
		require.True(t, result.OK)
	}

	page, err := f.app.GetTrades(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	rest, err := f.app.GetTrades(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
