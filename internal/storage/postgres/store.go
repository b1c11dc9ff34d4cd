package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SteveYuOWO/token-tide/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS token_pairs (
	id                 BIGSERIAL PRIMARY KEY,
	chain_id           TEXT NOT NULL,
	base_token_symbol  TEXT NOT NULL,
	quote_token_symbol TEXT NOT NULL,
	token_address      TEXT NOT NULL,
	pair_address       TEXT NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (base_token_symbol, quote_token_symbol, token_address, pair_address)
)`

// Store provides Postgres persistence for resolved pairs.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the token_pairs table if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, pair model.PairIdentity) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM token_pairs
			WHERE base_token_symbol = $1 AND quote_token_symbol = $2
			  AND token_address = $3 AND pair_address = $4
		)
	`, pair.BaseSymbol, pair.QuoteSymbol, pair.TokenAddress, pair.PairAddress).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// FindByIdentifier returns the earliest inserted record whose token address,
// pair address, base symbol or quote symbol equals key.
func (s *Store) FindByIdentifier(ctx context.Context, key string) (model.PairIdentity, bool, error) {
	var p model.PairIdentity
	row := s.pool.QueryRow(ctx, `
		SELECT chain_id, base_token_symbol, quote_token_symbol, token_address, pair_address
		FROM token_pairs
		WHERE token_address = $1 OR pair_address = $1
		   OR base_token_symbol = $1 OR quote_token_symbol = $1
		ORDER BY id
		LIMIT 1
	`, key)
	if err := row.Scan(&p.ChainID, &p.BaseSymbol, &p.QuoteSymbol, &p.TokenAddress, &p.PairAddress); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PairIdentity{}, false, nil
		}
		return model.PairIdentity{}, false, err
	}
	return p, true, nil
}

// Append inserts pair unless a duplicate exists.
func (s *Store) Append(ctx context.Context, pair model.PairIdentity) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO token_pairs (
			chain_id, base_token_symbol, quote_token_symbol, token_address, pair_address
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (base_token_symbol, quote_token_symbol, token_address, pair_address)
		DO NOTHING
	`, pair.ChainID, pair.BaseSymbol, pair.QuoteSymbol, pair.TokenAddress, pair.PairAddress)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Remove deletes the record that is a duplicate of pair.
func (s *Store) Remove(ctx context.Context, pair model.PairIdentity) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM token_pairs
		WHERE base_token_symbol = $1 AND quote_token_symbol = $2
		  AND token_address = $3 AND pair_address = $4
	`, pair.BaseSymbol, pair.QuoteSymbol, pair.TokenAddress, pair.PairAddress)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM token_pairs`)
	return err
}

func (s *Store) Pairs(ctx context.Context) ([]model.PairIdentity, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT chain_id, base_token_symbol, quote_token_symbol, token_address, pair_address
		FROM token_pairs
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.PairIdentity, 0)
	for rows.Next() {
		var p model.PairIdentity
		if err := rows.Scan(&p.ChainID, &p.BaseSymbol, &p.QuoteSymbol, &p.TokenAddress, &p.PairAddress); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
