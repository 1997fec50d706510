package engine

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// CacheEntry is a solved position stored in the cache. Moves are in USI
// notation so rendering can be re-done per output format.
type CacheEntry struct {
	Resolution string   `json:"resolution"`
	Moves      []string `json:"moves"`
	Elapsed    float64  `json:"elapsed"`
}

// Cache is a persistent solved-position store keyed by normalized SFEN.
// A miss or broken entry simply means "solve again".
type Cache struct {
	db *badger.DB
}

// OpenCache opens the cache in the given directory, or in memory if the
// directory is empty.
func OpenCache(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at '%v': %v", dir, err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached answer for the position, if present.
func (c *Cache) Lookup(sfen string) (CacheEntry, bool, error) {
	var entry CacheEntry
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sfen))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &entry); err != nil {
				return nil // broken entry: treat as miss
			}
			found = true
			return nil
		})
	})
	return entry, found, err
}

// Store records the answer for the position.
func (c *Cache) Store(sfen string, entry CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(sfen), data)
	})
}
