package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnGenerate(ctx, 4, 10, time.Millisecond, nil)
	p.OnRender(ctx, "png", 1024, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "png")
	c.OnCacheMiss(ctx, "svg")
	c.OnCacheSet(ctx, "json", 512)

	NoopHTTPHooks{}.OnResponse(ctx, "GET", "/triangle.png", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	s := NewStats()
	s.Register()
	if Pipeline() != PipelineHooks(s) || Cache() != CacheHooks(s) || HTTP() != HTTPHooks(s) {
		t.Error("Register should install the stats as every hook")
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(s) {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := NewStats()

	s.OnGenerate(ctx, 4, 8, time.Millisecond, nil)
	s.OnGenerate(ctx, 2, 8, 0, errors.New("bad k"))
	s.OnRender(ctx, "png", 100, time.Millisecond, nil)
	s.OnRender(ctx, "png", 50, time.Millisecond, nil)
	s.OnRender(ctx, "svg", 0, time.Millisecond, errors.New("graphviz"))
	s.OnCacheHit(ctx, "png")
	s.OnCacheMiss(ctx, "png")
	s.OnCacheMiss(ctx, "svg")
	s.OnResponse(ctx, "GET", "/triangle", 200, time.Millisecond)
	s.OnResponse(ctx, "GET", "/triangle", 400, time.Millisecond)
	s.OnResponse(ctx, "GET", "/triangle", 200, time.Millisecond)

	snap := s.Snapshot()
	if snap.Generated != 1 || snap.GenerateErrors != 1 {
		t.Errorf("generated = %d/%d errors", snap.Generated, snap.GenerateErrors)
	}
	if snap.Rendered["png"] != 2 || snap.RenderErrors != 1 || snap.RenderedBytes != 150 {
		t.Errorf("rendered = %v, errors %d, bytes %d", snap.Rendered, snap.RenderErrors, snap.RenderedBytes)
	}
	if snap.CacheHits != 1 || snap.CacheMisses != 2 {
		t.Errorf("cache hits/misses = %d/%d", snap.CacheHits, snap.CacheMisses)
	}
	if snap.Requests[200] != 2 || snap.Requests[400] != 1 {
		t.Errorf("requests = %v", snap.Requests)
	}

	// The snapshot is a copy.
	snap.Rendered["png"] = 99
	if s.Snapshot().Rendered["png"] != 2 {
		t.Error("Snapshot should not alias internal maps")
	}
}
