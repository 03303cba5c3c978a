package filestore

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
	"github.com/jensneuse/abstractlogger"
	"go.uber.org/atomic"
)

// CachedCollection is a read-through LRU cache in front of another Collection.
// Only ids missing from the cache are looked up in the underlying collection.
type CachedCollection struct {
	source Collection
	cache  *lru.Cache
	log    abstractlogger.Logger
	hits   *atomic.Int64
	misses *atomic.Int64
}

func NewCachedCollection(source Collection, size int, log abstractlogger.Logger) (*CachedCollection, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = abstractlogger.NoopLogger
	}
	return &CachedCollection{
		source: source,
		cache:  cache,
		log:    log,
		hits:   atomic.NewInt64(0),
		misses: atomic.NewInt64(0),
	}, nil
}

func (c *CachedCollection) FindByIDs(ctx context.Context, ids []string) ([]*File, error) {
	found := make(map[string]*File, len(ids))
	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; ok {
			continue
		}
		if cached, ok := c.cache.Get(id); ok {
			if file, ok := cached.(*File); ok {
				found[id] = file
				c.hits.Inc()
				continue
			}
		}
		found[id] = nil
		missing = append(missing, id)
		c.misses.Inc()
	}

	if len(missing) > 0 {
		loaded, err := c.source.FindByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, file := range loaded {
			if file == nil {
				continue
			}
			c.cache.Add(file.ID, file)
			found[file.ID] = file
		}
		c.log.Debug("CachedCollection.FindByIDs",
			abstractlogger.Int("missing", len(missing)),
			abstractlogger.Int("loaded", len(loaded)),
		)
	}

	files := make([]*File, 0, len(ids))
	for _, id := range ids {
		file := found[id]
		if file == nil {
			continue
		}
		files = append(files, file)
		found[id] = nil
	}
	return files, nil
}

// Purge drops every cached record.
func (c *CachedCollection) Purge() {
	c.cache.Purge()
}

func (c *CachedCollection) Hits() int64 {
	return c.hits.Load()
}

func (c *CachedCollection) Misses() int64 {
	return c.misses.Load()
}
