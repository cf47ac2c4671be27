package observability

import (
	"context"
	"sync"
	"time"
)

// Stats counts pipeline, cache and HTTP events. It implements all three
// hook interfaces and is safe for concurrent use.
type Stats struct {
	mu   sync.Mutex
	snap Snapshot
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Generated      int64            `json:"generated"`
	GenerateErrors int64            `json:"generate_errors"`
	Rendered       map[string]int64 `json:"rendered"`
	RenderErrors   int64            `json:"render_errors"`
	RenderedBytes  int64            `json:"rendered_bytes"`
	CacheHits      int64            `json:"cache_hits"`
	CacheMisses    int64            `json:"cache_misses"`
	Requests       map[int]int64    `json:"requests"`
}

// NewStats creates empty counters.
func NewStats() *Stats {
	return &Stats{snap: Snapshot{
		Rendered: make(map[string]int64),
		Requests: make(map[int]int64),
	}}
}

// Register installs s as the pipeline, cache and HTTP hooks.
func (s *Stats) Register() {
	SetPipelineHooks(s)
	SetCacheHooks(s)
	SetHTTPHooks(s)
}

// Snapshot returns a copy of the counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.snap
	out.Rendered = make(map[string]int64, len(s.snap.Rendered))
	for k, v := range s.snap.Rendered {
		out.Rendered[k] = v
	}
	out.Requests = make(map[int]int64, len(s.snap.Requests))
	for k, v := range s.snap.Requests {
		out.Requests[k] = v
	}
	return out
}

func (s *Stats) OnGenerate(_ context.Context, _, _ int, _ time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.snap.GenerateErrors++
		return
	}
	s.snap.Generated++
}

func (s *Stats) OnRender(_ context.Context, format string, size int, _ time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.snap.RenderErrors++
		return
	}
	s.snap.Rendered[format]++
	s.snap.RenderedBytes += int64(size)
}

func (s *Stats) OnCacheHit(context.Context, string) {
	s.mu.Lock()
	s.snap.CacheHits++
	s.mu.Unlock()
}

func (s *Stats) OnCacheMiss(context.Context, string) {
	s.mu.Lock()
	s.snap.CacheMisses++
	s.mu.Unlock()
}

func (s *Stats) OnCacheSet(context.Context, string, int) {}

func (s *Stats) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	s.mu.Lock()
	s.snap.Requests[status]++
	s.mu.Unlock()
}

var (
	_ PipelineHooks = (*Stats)(nil)
	_ CacheHooks    = (*Stats)(nil)
	_ HTTPHooks     = (*Stats)(nil)
)
