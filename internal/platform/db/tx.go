package db

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

const txKey contextKey = "db_tx"

// TxFromContext retrieves the transaction started by WithTx, if any.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey).(pgx.Tx)
	return tx
}

// WithTx runs fn inside a single transaction. The transaction is stashed
// in the context so repositories called from fn execute on it instead of
// the pool. A transaction already present in ctx is reused; the outermost
// caller owns commit and rollback.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// DayLockKey derives the 64-bit advisory lock key for a resource-day pair.
// The same (resource, date) always hashes to the same key, so two
// transactions booking the same therapist or room on the same date
// serialize on pg_advisory_xact_lock.
func DayLockKey(resourceID uuid.UUID, day time.Time) int64 {
	h := fnv.New64a()
	h.Write(resourceID[:])
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(day.UTC().Truncate(24*time.Hour).Unix()))
	h.Write(b[:])
	return int64(h.Sum64())
}

// AcquireDayLocks takes a transaction-scoped advisory lock for every key.
// Keys are locked in ascending order so that two transactions locking
// overlapping key sets cannot deadlock. Must be called from inside WithTx.
func AcquireDayLocks(ctx context.Context, keys ...int64) error {
	tx := TxFromContext(ctx)
	if tx == nil {
		return fmt.Errorf("advisory locks require a transaction")
	}

	sorted := make([]int64, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var prev int64
	for i, key := range sorted {
		if i > 0 && key == prev {
			continue
		}
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, key); err != nil {
			return fmt.Errorf("acquire advisory lock %d: %w", key, err)
		}
		prev = key
	}
	return nil
}
