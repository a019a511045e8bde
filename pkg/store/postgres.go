package store

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"
)

// Postgres is the persistent store backed by PostgreSQL. It satisfies
// both UserStore and GameStore.
type Postgres struct {
	db           *sql.DB
	defaultChips int
}

// NewPostgres returns a PostgreSQL-backed store. Players without a row
// in users buy in with defaultChips.
func NewPostgres(db *sql.DB, defaultChips int) *Postgres {
	return &Postgres{
		db:           db,
		defaultChips: defaultChips,
	}
}

// StartingChips implements UserStore
func (p *Postgres) StartingChips(ctx context.Context, playerID string) (int, error) {
	const query = `
SELECT chips
FROM users
WHERE id = $1`

	var chips int
	row := p.db.QueryRowContext(ctx, query, playerID)
	if err := row.Scan(&chips); err != nil {
		if err == sql.ErrNoRows {
			return p.defaultChips, nil
		}

		return 0, err
	}

	return chips, nil
}

// RecordHand implements GameStore
func (p *Postgres) RecordHand(ctx context.Context, record *HandRecord) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO hands (game_id, finished_at)
VALUES ($1, $2)
RETURNING id`

	var handID int64
	row := tx.QueryRowContext(ctx, query, record.GameID, record.FinishedAt)
	if err := row.Scan(&handID); err != nil {
		rollback(tx)
		return err
	}

	const query2 = `
INSERT INTO hand_winners (hand_id, player_id, amount)
VALUES ($1, $2, $3)`

	for _, winner := range record.Winners {
		if _, err := tx.ExecContext(ctx, query2, handID, winner.PlayerID, winner.Amount); err != nil {
			rollback(tx)
			return err
		}
	}

	return tx.Commit()
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
