// Package cache provides caching implementations for detector interfaces.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"ppe_backend/internal/feature/ppedetection/domain/entity"
	"ppe_backend/internal/feature/ppedetection/usecase"
)

// CachingDetector decorates a PPEDetector with Redis caching.
// Identical image bytes and request settings map to the same cache entry,
// so a repeated upload returns the stored response instead of calling the service again.
type CachingDetector struct {
	inner     usecase.PPEDetector
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingDetector implements usecase.PPEDetector.
var _ usecase.PPEDetector = (*CachingDetector)(nil)

// NewCachingDetector decorates a PPEDetector with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "ppe".
func NewCachingDetector(rdb *redis.Client, ttl time.Duration, inner usecase.PPEDetector, namespace string) *CachingDetector {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "ppe"
	}
	return &CachingDetector{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// DetectProtectiveEquipment checks the cache first and falls back to the inner detector.
// Errors are never cached.
func (c *CachingDetector) DetectProtectiveEquipment(ctx context.Context, req entity.DetectionRequest) (*entity.DetectionResponse, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.DetectProtectiveEquipment(ctx, req)
	}

	key := c.cacheKey(req)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.DetectionResponse
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the detection service
	out, err := c.inner.DetectProtectiveEquipment(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key from the image digest and request settings.
func (c *CachingDetector) cacheKey(req entity.DetectionRequest) string {
	sum := sha256.Sum256(req.Image)
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		hex.EncodeToString(sum[:]),
		strconv.FormatFloat(float64(req.MinConfidence), 'f', -1, 32),
		strings.Join(req.RequiredEquipmentTypes, ","),
	)
}
