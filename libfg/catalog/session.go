package catalog

import (
	"context"

	"github.com/fine-structures/freegroup/freegroup"
	"github.com/plan-systems/klog"
)

// Session holds what a Config describes: an open orbit catalog and, if a Redis address is configured,
// a signature set shared with other processes.
type Session struct {
	Config  freegroup.Config
	Catalog freegroup.Catalog
	Shared  *RedisSet // nil unless cfg.Redis.Addr is set

	catalogs freegroup.CatalogContext
}

// NewSession validates cfg, sets up logging and opens the resources cfg names.
func NewSession(ctx context.Context, cfg freegroup.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	freegroup.InitLogging(cfg.Log)

	sess := &Session{
		Config:   cfg,
		catalogs: freegroup.NewCatalogContext(),
	}

	var err error
	sess.Catalog, err = OpenCatalog(sess.catalogs, cfg.Catalog)
	if err == nil && cfg.Redis.Addr != "" {
		sess.Shared, err = NewRedisSet(ctx, cfg.Redis)
	}
	if err != nil {
		sess.Close()
		return nil, err
	}

	klog.Infof("session: catalog %q, shared set %q", cfg.Catalog.DbPathName, cfg.Redis.Addr)
	return sess, nil
}

// OrbitOpts returns the configured orbit limits, using the shared set (if any) to track visited signatures.
func (sess *Session) OrbitOpts() freegroup.OrbitOpts {
	opts := sess.Config.OrbitOpts()
	if sess.Shared != nil {
		opts.Seen = sess.Shared
	}
	return opts
}

// Close disconnects from the shared set, leaving it for other sessions, and closes the catalog, waiting for it to detach.
func (sess *Session) Close() error {
	var err error
	if sess.Shared != nil {
		err = sess.Shared.Disconnect()
		sess.Shared = nil
	}
	sess.catalogs.Close()
	<-sess.catalogs.Done()
	return err
}
