package store

import (
	"context"
	"embed"
	"encoding/json"

	"pokergym/poker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// SaveHand records a finished hand: its header row, the full action log,
// and one episode per seat that acted. Everything goes in one transaction
// so a hand is either fully persisted or absent.
func (db *DB) SaveHand(
	ctx context.Context,
	handID uuid.UUID,
	ruleset string,
	handNumber int64,
	log []poker.HistoricalPoint,
	episodes map[poker.Position]*poker.Episode,
) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // safe if already committed

	if _, err := tx.Exec(ctx, `
        INSERT INTO hands(hand_id, ruleset, hand_number)
        VALUES ($1,$2,$3)
        ON CONFLICT (hand_id) DO NOTHING
    `, handID, ruleset, handNumber); err != nil {
		return err
	}

	for i, pt := range log {
		if _, err := tx.Exec(ctx, `
            INSERT INTO hand_actions(hand_id, ordinal, position, action, betsize)
            VALUES ($1,$2,$3,$4,$5)
        `, handID, i, pt.Position, pt.Action, pt.Betsize); err != nil {
			return err
		}
	}

	for position, ep := range episodes {
		obs, err := json.Marshal(ep.Observations)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
            INSERT INTO episodes(hand_id, position, actions, action_probs, betsizes, rewards, observations)
            VALUES ($1,$2,$3,$4,$5,$6,$7)
        `, handID, position, ep.Actions, ep.ActionProbs, ep.Betsizes, ep.Rewards, obs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (db *DB) CountHands(ctx context.Context) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM hands`).Scan(&n)
	return n, err
}

func (db *DB) CountEpisodes(ctx context.Context) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM episodes`).Scan(&n)
	return n, err
}

// SeatNet sums persisted rewards per seat, a cheap sanity query for
// checking that self-play stays zero sum in aggregate.
func (db *DB) SeatNet(ctx context.Context) (map[poker.Position]float64, error) {
	rows, err := db.Query(ctx, `
        SELECT position, COALESCE(SUM(rewards[1]), 0)
          FROM episodes
         GROUP BY position
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[poker.Position]float64)
	for rows.Next() {
		var position poker.Position
		var net float64
		if err := rows.Scan(&position, &net); err != nil {
			return nil, err
		}
		out[position] = net
	}
	return out, rows.Err()
}
