package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/kinoart/internal/domain"
)

// Bucket names
var (
	bucketItems    = []byte("items")
	bucketChildren = []byte("children")

	allBuckets = [][]byte{bucketItems, bucketChildren}
)

// viewsKey is the children key of the top-level library list
const viewsKey = "views"

// ItemStore implements domain.ItemStore using BoltDB, with an in-memory
// cache of raw records promoted on access. Without a cache directory it
// runs in memory only.
type ItemStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

var _ domain.ItemStore = (*ItemStore)(nil)

// NewItemStore opens the cache for one server under baseCacheDir
func NewItemStore(baseCacheDir, serverURL string) (*ItemStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &ItemStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, "kinoart.db"), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ItemStore{db: db, cache: make(map[string][]byte)}, nil
}

// hashServerURL keeps caches of different servers apart
func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *ItemStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func cacheKey(bucket []byte, key string) string {
	return string(bucket) + ":" + key
}

func (s *ItemStore) get(bucket []byte, key string, dest any) bool {
	ck := cacheKey(bucket, key)

	s.mu.RLock()
	if data, ok := s.cache[ck]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[ck] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *ItemStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[cacheKey(bucket, key)] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *ItemStore) delete(bucket []byte, key string) {
	s.mu.Lock()
	delete(s.cache, cacheKey(bucket, key))
	s.mu.Unlock()

	if s.db == nil {
		return
	}
	s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(key))
	})
}

// === Items ===

func (s *ItemStore) GetItem(itemID string) (*domain.Item, bool) {
	var item domain.Item
	if !s.get(bucketItems, itemID, &item) {
		return nil, false
	}
	return &item, true
}

func (s *ItemStore) SaveItem(item *domain.Item) error {
	if item == nil || item.ID == "" {
		return fmt.Errorf("cannot cache item without id")
	}
	return s.set(bucketItems, item.ID, item)
}

// === Children (ordered id lists, records live in the items bucket) ===

func childrenKey(parentID string) string {
	if parentID == "" {
		return viewsKey
	}
	return "parent:" + parentID
}

// GetChildren returns the cached children of parentID in server order. A list
// whose records were partly invalidated counts as a miss.
func (s *ItemStore) GetChildren(parentID string) ([]*domain.Item, bool) {
	var ids []string
	if !s.get(bucketChildren, childrenKey(parentID), &ids) {
		return nil, false
	}

	items := make([]*domain.Item, 0, len(ids))
	for _, id := range ids {
		item, ok := s.GetItem(id)
		if !ok {
			return nil, false
		}
		items = append(items, item)
	}
	return items, true
}

func (s *ItemStore) SaveChildren(parentID string, items []*domain.Item) error {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		// A list entry is less complete than a fetched item; keep the richer record
		if existing, ok := s.GetItem(item.ID); ok && len(existing.People) > 0 && len(item.People) == 0 {
			item.People = existing.People
		}
		if err := s.SaveItem(item); err != nil {
			return err
		}
		ids = append(ids, item.ID)
	}
	return s.set(bucketChildren, childrenKey(parentID), ids)
}

// AllItems returns every cached item sorted by name
func (s *ItemStore) AllItems() []*domain.Item {
	raw := make(map[string][]byte)

	if s.db != nil {
		s.db.View(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketItems).ForEach(func(k, v []byte) error {
				data := make([]byte, len(v))
				copy(data, v)
				raw[string(k)] = data
				return nil
			})
		})
	} else {
		prefix := cacheKey(bucketItems, "")
		s.mu.RLock()
		for k, v := range s.cache {
			if strings.HasPrefix(k, prefix) {
				raw[strings.TrimPrefix(k, prefix)] = v
			}
		}
		s.mu.RUnlock()
	}

	items := make([]*domain.Item, 0, len(raw))
	for _, data := range raw {
		var item domain.Item
		if json.Unmarshal(data, &item) == nil {
			items = append(items, &item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// === Invalidation ===

// Invalidate drops an item and its children list
func (s *ItemStore) Invalidate(itemID string) {
	s.delete(bucketItems, itemID)
	s.delete(bucketChildren, childrenKey(itemID))
}

func (s *ItemStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Recreate buckets; deleting keys under a live cursor skips entries
	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if err := tx.DeleteBucket(bucket); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
