package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters is an in-process implementation of every hook interface. It
// keeps running totals that a host can expose, for example on a metrics
// endpoint. The zero value is ready to use.
type Counters struct {
	catalogLoads  atomic.Int64
	layouts       atomic.Int64
	layoutErrors  atomic.Int64
	tiles         atomic.Int64
	layoutNanos   atomic.Int64
	traces        atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	cacheBytes    atomic.Int64
	requests      atomic.Int64
	serverErrors  atomic.Int64
	handlerErrors atomic.Int64
}

// Snapshot is a point-in-time copy of [Counters].
type Snapshot struct {
	CatalogLoads  int64         `json:"catalog_loads"`
	Layouts       int64         `json:"layouts"`
	LayoutErrors  int64         `json:"layout_errors"`
	TilesDrawn    int64         `json:"tiles_drawn"`
	LayoutTime    time.Duration `json:"layout_time_ns"`
	Traces        int64         `json:"traces"`
	CacheHits     int64         `json:"cache_hits"`
	CacheMisses   int64         `json:"cache_misses"`
	CacheBytes    int64         `json:"cache_bytes_written"`
	Requests      int64         `json:"requests"`
	ServerErrors  int64         `json:"server_errors"`
	HandlerErrors int64         `json:"handler_errors"`
}

// NewCounters creates empty counters.
func NewCounters() *Counters { return &Counters{} }

// Register installs c as the pipeline, cache and HTTP hooks.
func (c *Counters) Register() {
	SetPipelineHooks(c)
	SetCacheHooks(c)
	SetHTTPHooks(c)
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		CatalogLoads:  c.catalogLoads.Load(),
		Layouts:       c.layouts.Load(),
		LayoutErrors:  c.layoutErrors.Load(),
		TilesDrawn:    c.tiles.Load(),
		LayoutTime:    time.Duration(c.layoutNanos.Load()),
		Traces:        c.traces.Load(),
		CacheHits:     c.cacheHits.Load(),
		CacheMisses:   c.cacheMisses.Load(),
		CacheBytes:    c.cacheBytes.Load(),
		Requests:      c.requests.Load(),
		ServerErrors:  c.serverErrors.Load(),
		HandlerErrors: c.handlerErrors.Load(),
	}
}

func (c *Counters) OnCatalogLoad(_ context.Context, _ string, _ int, err error) {
	if err == nil {
		c.catalogLoads.Add(1)
	}
}

func (c *Counters) OnLayoutStart(context.Context, string, string) {}

func (c *Counters) OnLayoutComplete(_ context.Context, _, _ string, tiles int, d time.Duration, err error) {
	if err != nil {
		c.layoutErrors.Add(1)
		return
	}
	c.layouts.Add(1)
	c.tiles.Add(int64(tiles))
	c.layoutNanos.Add(int64(d))
}

func (c *Counters) OnTraceRender(_ context.Context, _ string, _ time.Duration, err error) {
	if err == nil {
		c.traces.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.cacheMisses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.cacheBytes.Add(int64(size))
}

func (c *Counters) OnRequest(context.Context, string, string) { c.requests.Add(1) }

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	if status >= 500 {
		c.serverErrors.Add(1)
	}
}

func (c *Counters) OnError(context.Context, string, string, error) { c.handlerErrors.Add(1) }

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
