package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS tx_outcomes (
	id          BIGSERIAL PRIMARY KEY,
	kind        TEXT        NOT NULL,
	chain_id    BIGINT      NOT NULL,
	account     TEXT        NOT NULL,
	tx_hash     TEXT        NOT NULL DEFAULT '',
	success     BOOLEAN     NOT NULL,
	error       TEXT        NOT NULL DEFAULT '',
	asset_in    TEXT        NOT NULL DEFAULT '',
	asset_out   TEXT        NOT NULL DEFAULT '',
	amount_in   TEXT        NOT NULL DEFAULT '',
	amount_out  TEXT        NOT NULL DEFAULT '',
	transfer_id TEXT        NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS tx_outcomes_hash_idx
	ON tx_outcomes (chain_id, tx_hash, kind) WHERE tx_hash <> '';
`

// Store journals outcomes in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore opens a connection pool for dsn.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the outcome table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// PutOutcomes upserts records keyed by (chain_id, tx_hash, kind). Records
// without a hash never submitted a transaction and are always inserted.
func (s *Store) PutOutcomes(ctx context.Context, records []model.OutcomeRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO tx_outcomes (
				kind, chain_id, account, tx_hash, success, error,
				asset_in, asset_out, amount_in, amount_out, transfer_id, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now())
			ON CONFLICT (chain_id, tx_hash, kind) WHERE tx_hash <> ''
			DO UPDATE SET
				success = EXCLUDED.success,
				error = EXCLUDED.error,
				amount_out = EXCLUDED.amount_out,
				transfer_id = COALESCE(NULLIF(EXCLUDED.transfer_id, ''), tx_outcomes.transfer_id),
				updated_at = now()
		`,
			string(r.Kind),
			int64(r.ChainID),
			r.Account,
			r.TxHash,
			r.Success,
			r.Error,
			r.AssetIn,
			r.AssetOut,
			r.AmountIn,
			r.AmountOut,
			r.TransferID,
			r.CreatedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert outcome: %w", err)
		}
	}
	return nil
}

// RecentOutcomes returns the newest records for an account, newest first.
func (s *Store) RecentOutcomes(ctx context.Context, account string, limit int) ([]model.OutcomeRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT kind, chain_id, account, tx_hash, success, error,
			asset_in, asset_out, amount_in, amount_out, transfer_id, created_at
		FROM tx_outcomes
		WHERE account = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, account, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OutcomeRecord
	for rows.Next() {
		var (
			r       model.OutcomeRecord
			kind    string
			chainID int64
		)
		if err := rows.Scan(&kind, &chainID, &r.Account, &r.TxHash, &r.Success, &r.Error,
			&r.AssetIn, &r.AssetOut, &r.AmountIn, &r.AmountOut, &r.TransferID, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Kind = model.OutcomeKind(kind)
		r.ChainID = uint64(chainID)
		out = append(out, r)
	}
	return out, rows.Err()
}
