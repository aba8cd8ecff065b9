package services

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
	"github.com/custodia-labs/tramites/internal/logger"
)

// DefaultCollectionTTL is how long a loaded collection is reused.
const DefaultCollectionTTL = 5 * time.Minute

// collectionCacheSize bounds the number of cached collections.
const collectionCacheSize = 32

// collectionCache memoises Find results per collection for a fixed TTL.
type collectionCache struct {
	cache *expirable.LRU[string, []domain.Document]
	store driven.DocumentStore
}

func newCollectionCache(store driven.DocumentStore, ttl time.Duration) *collectionCache {
	if ttl <= 0 {
		ttl = DefaultCollectionTTL
	}
	return &collectionCache{
		cache: expirable.NewLRU[string, []domain.Document](collectionCacheSize, nil, ttl),
		store: store,
	}
}

// Load returns the documents of collection, from cache unless refresh is set.
func (c *collectionCache) Load(ctx context.Context, collection string, refresh bool) ([]domain.Document, error) {
	if !refresh {
		if docs, hit := c.cache.Get(collection); hit {
			logger.Debug("Report: %s served from cache", collection)
			return docs, nil
		}
	}

	docs, err := c.store.Find(ctx, collection)
	if err != nil {
		return nil, err
	}
	c.cache.Add(collection, docs)
	return docs, nil
}
