// Package store persists the cache-ahead artwork slot in BoltDB.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/marchand/easel/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketGallery = []byte("gallery")

// GalleryStore implements domain.Store using BoltDB. There is deliberately
// no in-memory read cache: the slot has read-once-delete semantics and a
// memory copy would serve stale repeats.
type GalleryStore struct {
	db *bolt.DB

	// Memory-only mode backing (no persistence)
	mu  sync.Mutex
	mem map[string][]byte
}

// Open opens the slot store in dir, creating it if needed. An empty dir
// selects memory-only mode, where every session is a cold start.
func Open(dir string) (*GalleryStore, error) {
	if dir == "" {
		return &GalleryStore{mem: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "easel.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketGallery)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &GalleryStore{db: db}, nil
}

// Artwork reads the artwork stored under key.
func (s *GalleryStore) Artwork(key string) (*domain.Artwork, bool) {
	var data []byte

	if s.db == nil {
		s.mu.Lock()
		data = s.mem[key]
		s.mu.Unlock()
	} else {
		s.db.View(func(tx *bolt.Tx) error {
			if v := tx.Bucket(bucketGallery).Get([]byte(key)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
	}

	if data == nil {
		return nil, false
	}

	var a domain.Artwork
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, false
	}
	return &a, true
}

// SaveArtwork writes the artwork under key, overwriting any existing entry
// (last-write-wins, no queue).
func (s *GalleryStore) SaveArtwork(key string, a *domain.Artwork) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}

	if s.db == nil {
		s.mu.Lock()
		s.mem[key] = data
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketGallery).Put([]byte(key), data)
	})
}

// Remove deletes the entry under key.
func (s *GalleryStore) Remove(key string) error {
	if s.db == nil {
		s.mu.Lock()
		delete(s.mem, key)
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketGallery).Delete([]byte(key))
	})
}

// Close closes the underlying database.
func (s *GalleryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
