package catalog

import (
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/freegroup/freegroup"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey                         => CatalogState

	kSigPrefix, SignatureKey                 => OrbitID
	...

	kOrbitPrefix, OrbitID, SignatureKey      => (empty)
	...

The first table answers "which orbit holds this minimal presentation" with a single Get.
The second lists the members of an orbit with one prefix scan.

OrbitIDs are issued per presentation length, so an OrbitID also tells the length of its members.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kSigPrefix   byte = 0x01
	kOrbitPrefix byte = 0x02
)

// catalog is a badger db wrapper for an orbit catalog
type catalog struct {
	mu         sync.Mutex
	ctx        freegroup.CatalogContext
	readOnly   bool
	stateDirty bool
	state      CatalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) an orbit catalog at opts.DbPathName, or an in-memory catalog if no path is given.
// The catalog is attached to ctx until it is closed.
func OpenCatalog(ctx freegroup.CatalogContext, opts freegroup.CatalogOpts) (freegroup.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // writes are serialized by cat.mu
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(freegroup.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, we consider the catalog ctx blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state = CatalogState{
			MajorVers: kMajorVers,
			MinorVers: kMinorVers,
		}
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Errorf("catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(2).Infof("opened catalog %q: %d orbits, %d signatures", opts.DbPathName, cat.NumOrbits(), cat.NumSignatures())
	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.Unmarshal(val)
		})
	})
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty {
		return nil
	}
	stateBuf, err := cat.state.Marshal()
	if err != nil {
		return err
	}
	err = cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err != nil {
		return err
	}
	cat.stateDirty = false
	return nil
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil
	}

	err := cat.flushState()
	if dbErr := cat.db.Close(); err == nil {
		err = dbErr
	}
	cat.db = nil
	cat.ctx.DetachCatalog(cat)
	klog.V(2).Infof("closed catalog: %d orbits, %d signatures", cat.state.TotalOrbits(), cat.state.NumSignatures)
	return err
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumOrbits() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.state.TotalOrbits())
}

func (cat *catalog) NumSignatures() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.state.NumSignatures)
}

func (cat *catalog) issueNextOrbitID(length int) (freegroup.OrbitID, error) {
	if length < 0 || length > freegroup.MaxOrbitLength {
		return 0, errors.Wrapf(freegroup.ErrBadCatalogParam, "presentation length %d exceeds %d", length, freegroup.MaxOrbitLength)
	}
	for len(cat.state.NumOrbits) <= length {
		cat.state.NumOrbits = append(cat.state.NumOrbits, 0)
	}
	series := cat.state.NumOrbits[length] + 1
	cat.state.NumOrbits[length] = series
	cat.stateDirty = true

	return freegroup.FormOrbitID(length, series), nil
}

func formSigKey(sig freegroup.Signature) []byte {
	return sig.AppendKey([]byte{kSigPrefix})
}

func formOrbitPrefix(oid freegroup.OrbitID) []byte {
	return oid.Marshal([]byte{kOrbitPrefix})
}

func formOrbitKey(oid freegroup.OrbitID, sig freegroup.Signature) []byte {
	return sig.AppendKey(formOrbitPrefix(oid))
}

func (cat *catalog) lookupOrbit(txn *badger.Txn, sig freegroup.Signature) (oid freegroup.OrbitID, found bool, err error) {
	item, err := txn.Get(formSigKey(sig))
	if err == badger.ErrKeyNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	err = item.Value(func(val []byte) error {
		return oid.Unmarshal(val)
	})
	return oid, err == nil, err
}

func (cat *catalog) LookupOrbit(sig freegroup.Signature) (oid freegroup.OrbitID, found bool, err error) {
	err = cat.db.View(func(txn *badger.Txn) error {
		oid, found, err = cat.lookupOrbit(txn, sig)
		return err
	})
	return
}

func (cat *catalog) AddOrbit(members []freegroup.Signature) (freegroup.OrbitID, bool, error) {
	if len(members) == 0 {
		return 0, false, errors.Wrap(freegroup.ErrBadCatalogParam, "an orbit has at least one member")
	}
	if cat.readOnly {
		return 0, false, freegroup.ErrCatalogReadOnly
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	// Members already stored pin the orbit; the rest join it.
	var (
		oid   freegroup.OrbitID
		found bool
		fresh []freegroup.Signature
	)
	err := cat.db.View(func(txn *badger.Txn) error {
		batch := make(map[string]struct{}, len(members))
		for _, sig := range members {
			sigKey := string(sig.AppendKey(nil))
			if _, dupe := batch[sigKey]; dupe {
				continue
			}
			batch[sigKey] = struct{}{}

			prev, stored, err := cat.lookupOrbit(txn, sig)
			if err != nil {
				return err
			}
			if !stored {
				fresh = append(fresh, sig)
				continue
			}
			if found && prev != oid {
				return errors.Wrapf(freegroup.ErrBadCatalogParam, "members span orbits %v and %v", oid, prev)
			}
			oid, found = prev, true
		}
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	if len(fresh) == 0 {
		return oid, false, nil
	}
	if !found {
		if oid, err = cat.issueNextOrbitID(members[0].Len()); err != nil {
			return 0, false, err
		}
	}
	oidVal := oid.Marshal(nil)

	// A WriteBatch retains the keys it is given, so each key gets its own buffer.
	wb := cat.db.NewWriteBatch()
	for _, sig := range fresh {
		err = wb.Set(formSigKey(sig), oidVal)
		if err == nil {
			err = wb.Set(formOrbitKey(oid, sig), nil)
		}
		if err != nil {
			wb.Cancel()
			return 0, false, err
		}
	}
	if err = wb.Flush(); err != nil {
		return 0, false, err
	}

	cat.state.NumSignatures += uint64(len(fresh))
	cat.stateDirty = true
	if err = cat.flushState(); err != nil {
		return 0, false, err
	}

	if found {
		klog.V(2).Infof("catalog: %d signatures joined orbit %v", len(fresh), oid)
		return oid, false, nil
	}
	klog.V(2).Infof("catalog: added orbit %v with %d signatures", oid, len(fresh))
	return oid, true, nil
}

func (cat *catalog) SelectOrbit(oid freegroup.OrbitID, onHit freegroup.OnSignatureHit) error {
	prefix := formOrbitPrefix(oid)

	return cat.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         prefix,
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()

			var sig freegroup.Signature
			if err := sig.InitFromKey(key[len(prefix):]); err != nil {
				return errors.Wrapf(err, "orbit %v", oid)
			}
			onHit <- sig
		}
		return nil
	})
}
