package cache

import (
	"github.com/maplebill/maplebill/internal/config"
)

// Initialize builds the cache for dependency injection
func Initialize(cfg *config.Configuration) Cache {
	return NewInMemoryCache(cfg)
}
