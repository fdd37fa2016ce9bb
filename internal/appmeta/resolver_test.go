package appmeta

import (
	"fmt"
	"testing"
)

func TestStaticResolver(t *testing.T) {
	r := &StaticResolver{
		Names: map[string]string{"com.tencent.mm": "WeChat"},
		Icons: map[string]string{"com.tencent.mm": "icons/wechat.png"},
	}

	if got := r.ResolveName("com.tencent.mm"); got != "WeChat" {
		t.Errorf("ResolveName = %q, want WeChat", got)
	}
	if got := r.ResolveName("com.unknown.app"); got != "com.unknown.app" {
		t.Errorf("ResolveName fallback = %q, want the source id", got)
	}

	icon, ok := r.ResolveIcon("com.tencent.mm")
	if !ok || icon != "icons/wechat.png" {
		t.Errorf("ResolveIcon = %q, %v", icon, ok)
	}
	if _, ok := r.ResolveIcon("com.unknown.app"); ok {
		t.Error("ResolveIcon for unknown source reported an icon")
	}
}

// countingResolver counts how many lookups reach the inner resolver.
type countingResolver struct {
	calls int
}

func (c *countingResolver) ResolveName(sourceID string) string {
	c.calls++
	return "name:" + sourceID
}

func (c *countingResolver) ResolveIcon(sourceID string) (string, bool) {
	return "", false
}

func TestCachedResolverCachesLookups(t *testing.T) {
	inner := &countingResolver{}
	c := NewCached(inner, 10)

	for i := 0; i < 5; i++ {
		if got := c.ResolveName("com.app"); got != "name:com.app" {
			t.Fatalf("ResolveName = %q", got)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner resolver called %d times, want 1", inner.calls)
	}
}

func TestCachedResolverInvalidate(t *testing.T) {
	inner := &countingResolver{}
	c := NewCached(inner, 10)

	c.ResolveName("com.app")
	c.Invalidate("com.app")
	c.ResolveName("com.app")

	if inner.calls != 2 {
		t.Errorf("inner resolver called %d times after invalidation, want 2", inner.calls)
	}
}

func TestCachedResolverBounded(t *testing.T) {
	inner := &countingResolver{}
	c := NewCached(inner, 3)

	for i := 0; i < 10; i++ {
		c.ResolveName(fmt.Sprintf("app-%d", i))
	}
	if c.Len() > 3 {
		t.Errorf("cache holds %d entries, want at most 3", c.Len())
	}
}
