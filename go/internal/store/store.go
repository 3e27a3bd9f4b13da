// Package store wires the sqlc query layer into the league storage
// contracts. It provides both pool-bound stores for plain reads and a
// transaction runner that hands services a fully bound league.Tx.
package store

import (
	"context"
	"database/sql"

	"github.com/sandlot-league/clubhouse/go/internal/draftorder"
	"github.com/sandlot-league/clubhouse/go/internal/eventlog"
	"github.com/sandlot-league/clubhouse/go/internal/league"
	"github.com/sandlot-league/clubhouse/go/internal/roster"
	"github.com/sandlot-league/clubhouse/go/internal/season"
	"github.com/sandlot-league/clubhouse/go/internal/sqlutil"
	"github.com/sandlot-league/clubhouse/go/internal/store/db"
	"github.com/sandlot-league/clubhouse/go/internal/trade"
	"github.com/sandlot-league/clubhouse/go/internal/users"
)

// Store owns the connection pool and implements league.Runner.
type Store struct {
	conn *sql.DB
}

func New(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// RunTx opens a transaction, binds every repository to it, and runs fn.
// Any error from fn rolls the transaction back.
func (s *Store) RunTx(ctx context.Context, fn func(tx league.Tx) error) error {
	return sqlutil.Run(ctx, s.conn, db.New(s.conn).WithTx, func(q *db.Queries) error {
		return fn(bind(q))
	})
}

// Stores returns repositories bound to the pool, outside any transaction.
// Use for single-statement reads; mutations go through RunTx.
func (s *Store) Stores() league.Tx {
	return bind(db.New(s.conn))
}

func bind(q *db.Queries) league.Tx {
	return league.Tx{
		Seasons:    season.NewRepository(q),
		Rosters:    roster.NewRepository(q),
		DraftOrder: draftorder.NewRepository(q),
		Trades:     trade.NewRepository(q),
		Events:     eventlog.NewRepository(q),
		Users:      users.NewRepository(q),
	}
}
