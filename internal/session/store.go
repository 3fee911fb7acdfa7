package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefixes. One record per live session, one summary list per
// user with at least one live session.
const (
	recordKeyPrefix   = "session:"
	userListKeyPrefix = "user-sessions:"
)

// Store is the durable key-value layer for session state. Absence is a
// valid, non-error outcome everywhere: a missing record means "no such
// session", a missing list means "no sessions for this user".
//
// The TTL on records is advisory defense -- expired keys become unreadable
// after it elapses -- but callers must not rely on it alone; the Service
// independently compares ExpiresAt.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a session store backed by the given Redis client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// PutRecord persists a session record under its raw identifier with the
// given time-to-live.
func (s *Store) PutRecord(ctx context.Context, rawID string, rec *Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling session record: %w", err)
	}
	if err := s.rdb.Set(ctx, recordKeyPrefix+rawID, data, ttl).Err(); err != nil {
		return fmt.Errorf("storing session record: %w", err)
	}
	return nil
}

// GetRecord loads a session record by its raw identifier. Returns
// (nil, nil) when the key is absent or TTL-evicted. A record that exists
// but cannot be decoded is returned as an error -- verification fails
// closed on it rather than guessing at fields.
func (s *Store) GetRecord(ctx context.Context, rawID string) (*Record, error) {
	data, err := s.rdb.Get(ctx, recordKeyPrefix+rawID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	return &rec, nil
}

// DeleteRecord removes a session record. Deleting a record that no longer
// exists is not an error.
func (s *Store) DeleteRecord(ctx context.Context, rawID string) error {
	if err := s.rdb.Del(ctx, recordKeyPrefix+rawID).Err(); err != nil {
		return fmt.Errorf("deleting session record: %w", err)
	}
	return nil
}

// GetSummaries loads the per-user session list. Absence yields an empty
// list. A corrupt list also yields an empty list with a warning log: losing
// the summary view must never block a login, and the next write simply
// replaces the bad value. This degradation is deliberate, not swallowed.
func (s *Store) GetSummaries(ctx context.Context, userID string) ([]Summary, error) {
	data, err := s.rdb.Get(ctx, userListKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading user session list: %w", err)
	}

	var list []Summary
	if err := json.Unmarshal(data, &list); err != nil {
		slog.Warn("user session list corrupt, treating as empty",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil, nil
	}
	return list, nil
}

// PutSummaries persists the per-user session list. The list key carries no
// TTL of its own -- entries are pruned against their ExpiresAt on every
// write, and the key is deleted when the list empties.
func (s *Store) PutSummaries(ctx context.Context, userID string, list []Summary) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshaling user session list: %w", err)
	}
	if err := s.rdb.Set(ctx, userListKeyPrefix+userID, data, 0).Err(); err != nil {
		return fmt.Errorf("storing user session list: %w", err)
	}
	return nil
}

// DeleteSummaries removes the per-user session list. Idempotent.
func (s *Store) DeleteSummaries(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, userListKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("deleting user session list: %w", err)
	}
	return nil
}
