// Command seed_league loads the league fixture (users, teams, characters,
// players) into Postgres. Rows that already exist are counted as skipped.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sandlot-league/clubhouse/go/internal/dbconfig"
	"github.com/sandlot-league/clubhouse/go/internal/store/db"
)

type fixture struct {
	Users []struct {
		ID       uuid.UUID `json:"id"`
		Username string    `json:"username"`
		Email    string    `json:"email"`
		IsAdmin  bool      `json:"is_admin"`
	} `json:"users"`
	Teams []struct {
		ID      uuid.UUID `json:"id"`
		OwnerID uuid.UUID `json:"owner_id"`
		Name    string    `json:"name"`
	} `json:"teams"`
	Characters []struct {
		ID              uuid.UUID `json:"id"`
		Name            string    `json:"name"`
		CaptainEligible bool      `json:"captain_eligible"`
	} `json:"characters"`
	Players []struct {
		ID          uuid.UUID  `json:"id"`
		Name        string     `json:"name"`
		CharacterID *uuid.UUID `json:"character_id"`
	} `json:"players"`
}

func main() {
	ctx := context.Background()

	path := "go/internal/assets/league.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal fixture: %v\n", err)
		os.Exit(1)
	}

	cfg := dbconfig.NewConfigFromEnv()
	conn, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	queries := db.New(conn)

	inserted, skipped, errs := 0, 0, 0
	for _, u := range fx.Users {
		_, err := queries.CreateUser(ctx, db.CreateUserParams{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			IsAdmin:  u.IsAdmin,
		})
		tally(err, &inserted, &skipped, &errs)
	}
	fmt.Printf("Users seed: total=%d inserted=%d skipped=%d errors=%d\n",
		len(fx.Users), inserted, skipped, errs)

	inserted, skipped, errs = 0, 0, 0
	for _, t := range fx.Teams {
		_, err := queries.CreateTeam(ctx, db.CreateTeamParams{
			ID:      t.ID,
			OwnerID: t.OwnerID,
			Name:    t.Name,
		})
		tally(err, &inserted, &skipped, &errs)
	}
	fmt.Printf("Teams seed: total=%d inserted=%d skipped=%d errors=%d\n",
		len(fx.Teams), inserted, skipped, errs)

	inserted, skipped, errs = 0, 0, 0
	for _, c := range fx.Characters {
		_, err := queries.CreateCharacter(ctx, db.CreateCharacterParams{
			ID:              c.ID,
			Name:            c.Name,
			CaptainEligible: c.CaptainEligible,
		})
		tally(err, &inserted, &skipped, &errs)
	}
	fmt.Printf("Characters seed: total=%d inserted=%d skipped=%d errors=%d\n",
		len(fx.Characters), inserted, skipped, errs)

	inserted, skipped, errs = 0, 0, 0
	for _, p := range fx.Players {
		characterID := uuid.NullUUID{}
		if p.CharacterID != nil {
			characterID = uuid.NullUUID{UUID: *p.CharacterID, Valid: true}
		}
		_, err := queries.CreatePlayer(ctx, db.CreatePlayerParams{
			ID:          p.ID,
			Name:        p.Name,
			CharacterID: characterID,
		})
		tally(err, &inserted, &skipped, &errs)
	}
	fmt.Printf("Players seed: total=%d inserted=%d skipped=%d errors=%d\n",
		len(fx.Players), inserted, skipped, errs)
}

// tally counts an insert result, treating unique violations as skips.
func tally(err error, inserted, skipped, errs *int) {
	if err == nil {
		*inserted++
		return
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		*skipped++
		return
	}
	fmt.Fprintf(os.Stderr, "insert error: %v\n", err)
	*errs++
}
