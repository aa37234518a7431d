package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/flix/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketBookmarks = []byte("bookmarks")

// BookmarkStore implements domain.BookmarkStore using BoltDB.
// Keys are "<userID>:<itemID>" in a single bucket so one user's bookmarks
// are a contiguous prefix range.
type BookmarkStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// Write-through copy of every record; the only copy in memory-only mode
	cache map[string][]byte
}

// NewBookmarkStore opens the database at path. An empty path selects
// memory-only mode (nothing survives the process).
func NewBookmarkStore(path string) (*BookmarkStore, error) {
	if path == "" {
		return &BookmarkStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBookmarks)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BookmarkStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *BookmarkStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func userPrefix(userID string) string {
	return userID + ":"
}

// bookmarkKey zero-pads the item id so keys sort numerically
func bookmarkKey(userID string, itemID int) string {
	return fmt.Sprintf("%s%010d", userPrefix(userID), itemID)
}

// Save persists rec under its item id, replacing any previous record.
func (s *BookmarkStore) Save(ctx context.Context, userID string, rec domain.BookmarkRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("save bookmark %d: empty user id", rec.ItemID)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	key := bookmarkKey(userID, rec.ItemID)

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketBookmarks).Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("save bookmark %d: %w", rec.ItemID, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()
	return nil
}

// Remove deletes the bookmark for itemID. Removing a missing bookmark is not an error.
func (s *BookmarkStore) Remove(ctx context.Context, userID string, itemID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := bookmarkKey(userID, itemID)

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketBookmarks).Delete([]byte(key))
		})
		if err != nil {
			return fmt.Errorf("remove bookmark %d: %w", itemID, err)
		}
	}

	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
	return nil
}

// List returns the user's bookmarks ordered by item id.
func (s *BookmarkStore) List(ctx context.Context, userID string) ([]domain.BookmarkRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := userPrefix(userID)

	if s.db == nil {
		return s.listCached(prefix)
	}

	var records []domain.BookmarkRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketBookmarks).Cursor()
		prefixBytes := []byte(prefix)
		for k, v := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, v = c.Next() {
			var rec domain.BookmarkRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode bookmark %s: %w", k, err)
			}
			records = append(records, rec)

			// Promote to memory cache; v is only valid inside the transaction
			data := make([]byte, len(v))
			copy(data, v)
			s.mu.Lock()
			s.cache[string(k)] = data
			s.mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *BookmarkStore) listCached(prefix string) ([]domain.BookmarkRecord, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.cache))
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	records := make([]domain.BookmarkRecord, 0, len(keys))
	for _, k := range keys {
		var rec domain.BookmarkRecord
		if err := json.Unmarshal(s.cache[k], &rec); err != nil {
			s.mu.RUnlock()
			return nil, fmt.Errorf("decode bookmark %s: %w", k, err)
		}
		records = append(records, rec)
	}
	s.mu.RUnlock()
	return records, nil
}
