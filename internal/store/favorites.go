package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketFavorites = []byte("favorites")

// FavoriteStore implements domain.FavoriteStore using BoltDB with an
// in-memory mirror of the id set for lock-cheap membership reads.
//
// A corrupted or unopenable database file is treated as an empty set:
// the file is removed and recreated once, and if that also fails the
// store runs memory-only for the session.
type FavoriteStore struct {
	db *bolt.DB
	mu sync.RWMutex

	ids map[string]struct{}

	logger *slog.Logger
}

// NewFavoriteStore opens (or creates) the favorites database under dataDir.
// An empty dataDir yields a memory-only store with no persistence.
func NewFavoriteStore(dataDir string, logger *slog.Logger) (*FavoriteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &FavoriteStore{ids: make(map[string]struct{}), logger: logger}

	if dataDir == "" {
		return s, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "favorites.db")
	db, err := openOrReset(dbPath, logger)
	if err != nil {
		// Unrecoverable backing state behaves as an empty set.
		logger.Warn("favorites db unavailable, running memory-only", "path", dbPath, "error", err)
		return s, nil
	}

	s.db = db
	if err := s.loadIDs(); err != nil {
		logger.Warn("favorites bucket unreadable, starting empty", "error", err)
	}

	return s, nil
}

// openOrReset opens the database, removing and recreating it once if the
// existing file is corrupt.
func openOrReset(dbPath string, logger *slog.Logger) (*bolt.DB, error) {
	opts := &bolt.Options{Timeout: 1 * time.Second}

	db, err := bolt.Open(dbPath, 0600, opts)
	if err != nil {
		logger.Warn("favorites db corrupt or locked, recreating", "path", dbPath, "error", err)
		if rmErr := os.Remove(dbPath); rmErr != nil && !os.IsNotExist(rmErr) {
			return nil, err
		}
		db, err = bolt.Open(dbPath, 0600, opts)
		if err != nil {
			return nil, err
		}
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFavorites)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// loadIDs populates the in-memory set from the bucket.
func (s *FavoriteStore) loadIDs() error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFavorites)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			s.ids[string(k)] = struct{}{}
			return nil
		})
	})
}

// Contains reports whether id is favorited.
func (s *FavoriteStore) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Add marks id as a favorite. Adding an existing favorite is a no-op.
func (s *FavoriteStore) Add(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(id)
}

// Remove unmarks id. Removing an absent id is a no-op.
func (s *FavoriteStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

// Toggle flips membership for id as one atomic read-modify-write.
func (s *FavoriteStore) Toggle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return s.removeLocked(id)
	}
	return s.addLocked(id)
}

func (s *FavoriteStore) addLocked(id string) error {
	s.ids[id] = struct{}{}

	if s.db == nil {
		return nil // Memory-only mode
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFavorites)
		return b.Put([]byte(id), []byte{1})
	})
}

func (s *FavoriteStore) removeLocked(id string) error {
	delete(s.ids, id)

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFavorites)
		return b.Delete([]byte(id))
	})
}

// Close closes the backing database.
func (s *FavoriteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
