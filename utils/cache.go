package utils

import (
	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	rstore "github.com/eko/gocache/store/ristretto/v4"
)

// NewCache returns a byte cache bounded to maxCost bytes.
func NewCache(maxCost int64) (*cache.Cache[[]byte], error) {
	rcache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	store_ := rstore.NewRistretto(rcache)
	manager := cache.New[[]byte](store_)
	return manager, nil
}
