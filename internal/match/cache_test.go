package match

import (
	"testing"

	"rfq-match/internal/model"
)

func TestCacheHitRequiresExactKey(t *testing.T) {
	t.Parallel()

	c := NewCache()
	key := CacheKey{RequirementVersion: "v1", CatalogVersion: 3}
	c.Put(1, key, []model.MatchResult{{Category: "Laptops"}})

	if _, ok := c.Get(1, key); !ok {
		t.Fatal("expected cache hit for identical key")
	}
	if _, ok := c.Get(1, CacheKey{RequirementVersion: "v2", CatalogVersion: 3}); ok {
		t.Fatal("expected miss after requirement version change")
	}
	if _, ok := c.Get(1, CacheKey{RequirementVersion: "v1", CatalogVersion: 4}); ok {
		t.Fatal("expected miss after catalog version change")
	}
	if _, ok := c.Get(2, key); ok {
		t.Fatal("expected miss for different rfq")
	}
}

func TestCachePutOverwrites(t *testing.T) {
	t.Parallel()

	c := NewCache()
	old := CacheKey{RequirementVersion: "v1", CatalogVersion: 1}
	c.Put(1, old, []model.MatchResult{{Category: "Laptops"}})

	fresh := CacheKey{RequirementVersion: "v1", CatalogVersion: 2}
	c.Put(1, fresh, []model.MatchResult{{Category: "Laptops"}, {Category: "Monitors"}})

	if _, ok := c.Get(1, old); ok {
		t.Fatal("expected old key to be gone")
	}
	matches, ok := c.Get(1, fresh)
	if !ok {
		t.Fatal("expected hit for fresh key")
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 cached matches, got %d", len(matches))
	}
}

func TestCacheInvalidate(t *testing.T) {
	t.Parallel()

	c := NewCache()
	key := CacheKey{RequirementVersion: "v1", CatalogVersion: 1}
	c.Put(1, key, nil)
	c.Invalidate(1)

	if _, ok := c.Get(1, key); ok {
		t.Fatal("expected miss after invalidation")
	}
}
