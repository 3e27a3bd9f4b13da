package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/models"
	"github.com/sandlot-league/clubhouse/go/internal/sqlutil"
	"github.com/sandlot-league/clubhouse/go/internal/store/db"
)

type Querier interface {
	AssignFreeAgentToTeam(ctx context.Context, arg db.AssignFreeAgentToTeamParams) (int64, error)
	ClearTeamCaptains(ctx context.Context) error
	CountAssignedPlayers(ctx context.Context) (int64, error)
	CountTeamPlayers(ctx context.Context, teamID uuid.NullUUID) (int64, error)
	GetCharacter(ctx context.Context, id uuid.UUID) (db.Character, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (db.Player, error)
	GetPlayerForUpdate(ctx context.Context, id uuid.UUID) (db.Player, error)
	GetTeam(ctx context.Context, id uuid.UUID) (db.Team, error)
	GetTeamByOwner(ctx context.Context, ownerID uuid.UUID) (db.Team, error)
	ListTeamPlayers(ctx context.Context, teamID uuid.NullUUID) ([]db.Player, error)
	SetLineupSlot(ctx context.Context, arg db.SetLineupSlotParams) error
	SetPlayerStarred(ctx context.Context, arg db.SetPlayerStarredParams) error
	SetTeamCaptain(ctx context.Context, arg db.SetTeamCaptainParams) error
	TransferPlayer(ctx context.Context, arg db.TransferPlayerParams) error
	UnstarTeamPlayers(ctx context.Context, teamID uuid.NullUUID) error
	WipeRosters(ctx context.Context) error
}

// Repository implements league.RosterStore on top of sqlc queries.
type Repository struct {
	queries Querier
}

func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (models.Player, error) {
	row, err := r.queries.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Player{}, fmt.Errorf("player %s: %w", id, league.ErrNotFound)
		}
		return models.Player{}, fmt.Errorf("failed to get player: %w", err)
	}
	return r.dbPlayerToModel(row), nil
}

func (r *Repository) GetPlayerForUpdate(ctx context.Context, id uuid.UUID) (models.Player, error) {
	row, err := r.queries.GetPlayerForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Player{}, fmt.Errorf("player %s: %w", id, league.ErrNotFound)
		}
		return models.Player{}, fmt.Errorf("failed to lock player: %w", err)
	}
	return r.dbPlayerToModel(row), nil
}

func (r *Repository) GetCharacter(ctx context.Context, id uuid.UUID) (models.Character, error) {
	row, err := r.queries.GetCharacter(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Character{}, fmt.Errorf("character %s: %w", id, league.ErrNotFound)
		}
		return models.Character{}, fmt.Errorf("failed to get character: %w", err)
	}
	return models.Character{
		ID:              row.ID,
		Name:            row.Name,
		CaptainEligible: row.CaptainEligible,
	}, nil
}

func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (models.Team, error) {
	row, err := r.queries.GetTeam(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Team{}, fmt.Errorf("team %s: %w", id, league.ErrNotFound)
		}
		return models.Team{}, fmt.Errorf("failed to get team: %w", err)
	}
	return r.dbTeamToModel(row), nil
}

func (r *Repository) GetTeamByOwner(ctx context.Context, ownerID uuid.UUID) (models.Team, error) {
	row, err := r.queries.GetTeamByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Team{}, fmt.Errorf("team for owner %s: %w", ownerID, league.ErrNotFound)
		}
		return models.Team{}, fmt.Errorf("failed to get team by owner: %w", err)
	}
	return r.dbTeamToModel(row), nil
}

func (r *Repository) ListTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	rows, err := r.queries.ListTeamPlayers(ctx, uuid.NullUUID{UUID: teamID, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list team players: %w", err)
	}
	players := make([]models.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, r.dbPlayerToModel(row))
	}
	return players, nil
}

func (r *Repository) CountTeamPlayers(ctx context.Context, teamID uuid.UUID) (int64, error) {
	count, err := r.queries.CountTeamPlayers(ctx, uuid.NullUUID{UUID: teamID, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("failed to count team players: %w", err)
	}
	return count, nil
}

func (r *Repository) AssignFreeAgent(ctx context.Context, playerID, teamID uuid.UUID) (bool, error) {
	affected, err := r.queries.AssignFreeAgentToTeam(ctx, db.AssignFreeAgentToTeamParams{
		ID:     playerID,
		TeamID: uuid.NullUUID{UUID: teamID, Valid: true},
	})
	if err != nil {
		return false, fmt.Errorf("failed to assign free agent: %w", err)
	}
	return affected == 1, nil
}

func (r *Repository) SetLineupSlot(ctx context.Context, playerID uuid.UUID, position *models.FieldingPosition, battingOrder *int) error {
	var pos *string
	if position != nil {
		s := string(*position)
		pos = &s
	}
	if err := r.queries.SetLineupSlot(ctx, db.SetLineupSlotParams{
		ID:           playerID,
		Position:     sqlutil.ToSqlString(pos),
		BattingOrder: sqlutil.ToSqlInt32(battingOrder),
	}); err != nil {
		return fmt.Errorf("failed to set lineup slot: %w", err)
	}
	return nil
}

func (r *Repository) SetPlayerStarred(ctx context.Context, playerID uuid.UUID, starred bool) error {
	if err := r.queries.SetPlayerStarred(ctx, db.SetPlayerStarredParams{
		ID:        playerID,
		IsStarred: starred,
	}); err != nil {
		return fmt.Errorf("failed to set player starred: %w", err)
	}
	return nil
}

func (r *Repository) UnstarTeamPlayers(ctx context.Context, teamID uuid.UUID) error {
	if err := r.queries.UnstarTeamPlayers(ctx, uuid.NullUUID{UUID: teamID, Valid: true}); err != nil {
		return fmt.Errorf("failed to unstar team players: %w", err)
	}
	return nil
}

func (r *Repository) SetTeamCaptain(ctx context.Context, teamID uuid.UUID, captainID *uuid.UUID) error {
	if err := r.queries.SetTeamCaptain(ctx, db.SetTeamCaptainParams{
		ID:        teamID,
		CaptainID: sqlutil.ToNullUUID(captainID),
	}); err != nil {
		return fmt.Errorf("failed to set team captain: %w", err)
	}
	return nil
}

func (r *Repository) TransferPlayer(ctx context.Context, playerID, teamID uuid.UUID) error {
	if err := r.queries.TransferPlayer(ctx, db.TransferPlayerParams{
		ID:     playerID,
		TeamID: uuid.NullUUID{UUID: teamID, Valid: true},
	}); err != nil {
		return fmt.Errorf("failed to transfer player: %w", err)
	}
	return nil
}

func (r *Repository) WipeRosters(ctx context.Context) error {
	if err := r.queries.WipeRosters(ctx); err != nil {
		return fmt.Errorf("failed to wipe rosters: %w", err)
	}
	return nil
}

func (r *Repository) ClearTeamCaptains(ctx context.Context) error {
	if err := r.queries.ClearTeamCaptains(ctx); err != nil {
		return fmt.Errorf("failed to clear team captains: %w", err)
	}
	return nil
}

func (r *Repository) CountAssignedPlayers(ctx context.Context) (int64, error) {
	count, err := r.queries.CountAssignedPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count assigned players: %w", err)
	}
	return count, nil
}

func (r *Repository) dbPlayerToModel(row db.Player) models.Player {
	var position *models.FieldingPosition
	if row.Position.Valid {
		p := models.FieldingPosition(row.Position.String)
		position = &p
	}
	return models.Player{
		ID:           row.ID,
		Name:         row.Name,
		CharacterID:  sqlutil.FromNullUUID(row.CharacterID),
		TeamID:       sqlutil.FromNullUUID(row.TeamID),
		Position:     position,
		BattingOrder: sqlutil.FromSqlInt32(row.BattingOrder),
		IsStarred:    row.IsStarred,
		CreatedAt:    row.CreatedAt,
	}
}

func (r *Repository) dbTeamToModel(row db.Team) models.Team {
	return models.Team{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		CaptainID: sqlutil.FromNullUUID(row.CaptainID),
		CreatedAt: row.CreatedAt,
	}
}
