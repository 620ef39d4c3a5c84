package freegroup

import "sync"

// NewCatalogContext returns a CatalogContext whose Done() fires once Close() was called and every attached Catalog has detached.
func NewCatalogContext() CatalogContext {
	return &catalogContext{
		open: make(map[Catalog]struct{}),
		done: make(chan struct{}),
	}
}

type catalogContext struct {
	mu      sync.Mutex
	open    map[Catalog]struct{}
	closing bool
	done    chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.mu.Lock()
	ctx.open[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	delete(ctx.open, cat)
	ctx.signalIfDone()
	ctx.mu.Unlock()
}

// signalIfDone closes ctx.done after Close() once nothing remains attached.  Caller holds ctx.mu.
func (ctx *catalogContext) signalIfDone() {
	if !ctx.closing || len(ctx.open) > 0 {
		return
	}
	select {
	case <-ctx.done:
	default:
		close(ctx.done)
	}
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.done
}

func (ctx *catalogContext) Close() {
	ctx.mu.Lock()
	if ctx.closing {
		ctx.mu.Unlock()
		return
	}
	ctx.closing = true

	// Catalog.Close() detaches itself, so close from a snapshot rather than under the lock.
	open := make([]Catalog, 0, len(ctx.open))
	for cat := range ctx.open {
		open = append(open, cat)
	}
	ctx.signalIfDone()
	ctx.mu.Unlock()

	for _, cat := range open {
		go cat.Close()
	}
}
