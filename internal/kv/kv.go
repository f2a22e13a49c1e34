// Package kv wraps a local bbolt file behind the save/load/update contract
// the domain stores persist through. Every value is stored as a JSON
// envelope carrying creation/update times and an optional expiry.
package kv

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"
)

// envelope is the on-disk wrapper around every stored value. Its shape is a
// stable external surface; do not rename fields.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	ExpiresAt *time.Time      `json:"expiresAt"`
}

type Store struct {
	db        *bolt.DB
	namespace []byte
	now       func() time.Time
}

// Open opens (or creates) the bbolt file at path and ensures the namespace
// bucket exists. The file lock makes this process the sole writer.
func Open(path, namespace string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	ns := []byte(namespace)

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(ns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating namespace bucket: %w", err)
	}

	return &Store{db: db, namespace: ns, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes value under key, wrapped in an envelope. A zero ttl means the
// entry never expires. The original createdAt survives overwrites.
func (s *Store) Save(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling %q: %w", key, err)
	}

	now := s.now()

	env := envelope{
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if ttl > 0 {
		exp := now.Add(ttl)
		env.ExpiresAt = &exp
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.namespace)

		if raw := b.Get([]byte(key)); raw != nil {
			var prev envelope
			if err := json.Unmarshal(raw, &prev); err == nil && !prev.CreatedAt.IsZero() {
				env.CreatedAt = prev.CreatedAt
			}
		}

		raw, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("marshaling envelope for %q: %w", key, err)
		}

		return b.Put([]byte(key), raw)
	})
}

// Load reads key into a value of type T. A missing key, unparseable payload
// or elapsed expiry yields def; corrupt and expired entries are purged.
// No failure ever reaches the caller.
func Load[T any](s *Store, key string, def T) T {
	var (
		raw   []byte
		value = def
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		if stored := tx.Bucket(s.namespace).Get([]byte(key)); stored != nil {
			raw = append(raw, stored...)
		}

		return nil
	})
	if err != nil || raw == nil {
		return def
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.purge(key)
		return def
	}

	if env.ExpiresAt != nil && s.now().After(*env.ExpiresAt) {
		s.purge(key)
		return def
	}

	if err := json.Unmarshal(env.Data, &value); err != nil {
		s.purge(key)
		return def
	}

	return value
}

// Update merges partial into the object payload stored under key,
// preserving the original createdAt. Missing keys start from an empty
// object.
func (s *Store) Update(key string, partial map[string]any) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.namespace)
		now := s.now()

		env := envelope{CreatedAt: now}
		payload := map[string]any{}

		if raw := b.Get([]byte(key)); raw != nil {
			if err := json.Unmarshal(raw, &env); err == nil {
				_ = json.Unmarshal(env.Data, &payload)
			}
		}

		for k, v := range partial {
			payload[k] = v
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling payload for %q: %w", key, err)
		}

		env.Data = data
		env.UpdatedAt = now

		raw, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("marshaling envelope for %q: %w", key, err)
		}

		return b.Put([]byte(key), raw)
	})
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.namespace).Delete([]byte(key))
	})
}

// Clear drops every key in the namespace.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.namespace); err != nil {
			return err
		}

		_, err := tx.CreateBucket(s.namespace)

		return err
	})
}

// Has reports whether key currently holds a live (non-expired) entry.
func (s *Store) Has(key string) bool {
	found := false

	_ = s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.namespace).Get([]byte(key))
		if raw == nil {
			return nil
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil
		}

		if env.ExpiresAt != nil && s.now().After(*env.ExpiresAt) {
			return nil
		}

		found = true

		return nil
	})

	return found
}

func (s *Store) purge(key string) {
	if err := s.Remove(key); err != nil {
		slog.Warn("failed to purge key", "key", key, "error", err)
	}
}
