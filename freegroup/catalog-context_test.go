package freegroup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubCatalog struct {
	Catalog
	ctx    CatalogContext
	closed chan struct{}
}

func (cat *stubCatalog) Close() error {
	close(cat.closed)
	cat.ctx.DetachCatalog(cat)
	return nil
}

func TestCatalogContextClose(t *testing.T) {
	ctx := NewCatalogContext()

	cats := make([]*stubCatalog, 3)
	for i := range cats {
		cats[i] = &stubCatalog{ctx: ctx, closed: make(chan struct{})}
		ctx.AttachCatalog(cats[i])
	}

	// detaching twice is harmless
	cats[0].ctx.DetachCatalog(cats[0])
	cats[0].ctx.DetachCatalog(cats[0])

	ctx.Close()
	ctx.Close()

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("catalog context never finished closing")
	}

	for _, cat := range cats[1:] {
		select {
		case <-cat.closed:
		default:
			assert.Fail(t, "attached catalog was not closed")
		}
	}
}

func TestCatalogContextEmpty(t *testing.T) {
	ctx := NewCatalogContext()
	select {
	case <-ctx.Done():
		t.Fatal("done before Close")
	default:
	}

	ctx.Close()
	select {
	case <-ctx.Done():
	default:
		t.Fatal("an empty context should be done as soon as it closes")
	}
}
