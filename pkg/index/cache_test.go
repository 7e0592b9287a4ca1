package index

import (
	"testing"

	"github.com/kittclouds/bce/pkg/bceerr"
)

func TestCacheInvalidateAllRunsInvalidators(t *testing.T) {
	c, err := NewCacheRegistry(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Put("k", 1)

	ran := false
	c.RegisterInvalidator("index", func() { ran = true })
	c.InvalidateAll()

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected cache to be purged")
	}
	if !ran {
		t.Fatalf("expected registered invalidator to run")
	}
}

func TestUnknownInvalidatorIsCacheErrorNeverFatal(t *testing.T) {
	c, _ := NewCacheRegistry(4)
	err := c.Invalidate("missing")
	if err == nil {
		t.Fatalf("expected error for unknown invalidator")
	}
	if be, ok := err.(*bceerr.Error); !ok || be.Kind != bceerr.Cache {
		t.Fatalf("expected bceerr.Cache, got %v", err)
	}
}

func TestNegativeCacheSizeRejected(t *testing.T) {
	if _, err := NewCacheRegistry(-1); err == nil {
		t.Fatalf("expected configuration error for negative cache size")
	}
}
