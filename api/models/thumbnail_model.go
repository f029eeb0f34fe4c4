package models

import (
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/google/uuid"
)

const ThumbnailTTL = 3600 * time.Second // 1 hour

// Thumbnail holds preview image bytes for one added file.
type Thumbnail struct {
	ContentType string
	Data        []byte
}

// ThumbnailCache keeps preview images for image-type records. Entries expire
// on their own; a record outliving its thumbnail simply renders without one.
type ThumbnailCache struct {
	mu    sync.RWMutex
	cache *ttlworker.Cache[string, *Thumbnail]
}

// NewThumbnailCache creates a thumbnail cache with the default TTL.
func NewThumbnailCache() *ThumbnailCache {
	return &ThumbnailCache{
		cache: ttlworker.NewCache[string, *Thumbnail](ThumbnailTTL),
	}
}

// Put stores the thumbnail and returns its access token.
func (t *ThumbnailCache) Put(contentType string, data []byte) string {
	token := uuid.NewString()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache.Set(token, &Thumbnail{ContentType: contentType, Data: data})
	return token
}

// Get returns the thumbnail for the token, if it has not expired.
func (t *ThumbnailCache) Get(token string) (*Thumbnail, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	thumb := t.cache.Get(token)
	if thumb == nil {
		return nil, false
	}
	return thumb, true
}

// Remove drops the thumbnail for the token.
func (t *ThumbnailCache) Remove(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache.Delete(token)
}
