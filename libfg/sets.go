package libfg

import (
	"bytes"
	"hash/maphash"

	"github.com/dgraph-io/badger/v3"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/fine-structures/freegroup/freegroup"
	"github.com/pkg/errors"
)

// OrderedSignatureSet is an in-memory SignatureSet that can list its members in signature order.
type OrderedSignatureSet struct {
	tree *redblacktree.Tree
}

func NewOrderedSignatureSet() *OrderedSignatureSet {
	return &OrderedSignatureSet{
		tree: redblacktree.NewWith(func(a, b interface{}) int {
			return freegroup.CompareSignatures(a.(freegroup.Signature), b.(freegroup.Signature))
		}),
	}
}

func (set *OrderedSignatureSet) TryAdd(sig freegroup.Signature) (bool, error) {
	if _, found := set.tree.Get(sig); found {
		return false, nil
	}
	set.tree.Put(sig.Copy(), struct{}{})
	return true, nil
}

func (set *OrderedSignatureSet) Len() int {
	return set.tree.Size()
}

// Signatures returns the members of this set in ascending order (see CompareSignatures).
func (set *OrderedSignatureSet) Signatures() []freegroup.Signature {
	sigs := make([]freegroup.Signature, 0, set.tree.Size())
	for it := set.tree.Iterator(); it.Next(); {
		sigs = append(sigs, it.Key().(freegroup.Signature))
	}
	return sigs
}

func (set *OrderedSignatureSet) Close() error {
	set.tree.Clear()
	return nil
}

// dropDupes is a SignatureSet of hashed signature keys, with key bytes packed into pooled buffers.
type dropDupes struct {
	hashMap   map[uint64]freegroup.SignatureKey
	hasher    maphash.Hash
	bufPool   []byte
	bufPoolSz int
	opts      DropDupeOpts
}

const DefaultPoolSz = 32 * 1024

type DropDupeOpts struct {
	PoolSz int // 0 denotes DefaultPoolSz (32k)
}

// NewDropDupes returns a fast in-memory SignatureSet.
func NewDropDupes(opts DropDupeOpts) freegroup.SignatureSet {
	if opts.PoolSz <= 0 {
		opts.PoolSz = DefaultPoolSz
	}
	return &dropDupes{
		hashMap: make(map[uint64]freegroup.SignatureKey),
		opts:    opts,
	}
}

func (set *dropDupes) Close() error {
	set.bufPoolSz = 0
	set.bufPool = nil
	set.hashMap = make(map[uint64]freegroup.SignatureKey)
	return nil
}

func (set *dropDupes) TryAdd(sig freegroup.Signature) (bool, error) {
	var keyBuf [256]byte
	key := sig.AppendKey(keyBuf[:0])

	set.hasher.Reset()
	set.hasher.Write(key)
	hash := set.hasher.Sum64()

	existing, found := set.hashMap[hash]
	for found {
		if bytes.Equal(existing, key) {
			return false, nil
		}
		hash++
		existing, found = set.hashMap[hash]
	}

	// New entry: place a copy of the key in the pool, starting a new pool when this one is full.
	pos := set.bufPoolSz
	itemLen := len(key)
	if pos+itemLen > cap(set.bufPool) {
		set.bufPool = make([]byte, max(set.opts.PoolSz, itemLen))
		set.bufPoolSz = 0
		pos = 0
	}

	set.hashMap[hash] = append(set.bufPool[pos:pos], key...)
	set.bufPoolSz += itemLen
	return true, nil
}

// lsmSet is a SignatureSet backed by an in-memory badger db.
type lsmSet struct {
	db *badger.DB
}

// NewLSMSignatureSet returns a SignatureSet suited to very large orbits.
func NewLSMSignatureSet() freegroup.SignatureSet {
	return &lsmSet{}
}

func (set *lsmSet) autoOpen() error {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			return errors.Wrap(err, "open in-memory signature set")
		}
	}
	return nil
}

func (set *lsmSet) TryAdd(sig freegroup.Signature) (bool, error) {
	if err := set.autoOpen(); err != nil {
		return false, err
	}

	var keyBuf [256]byte
	key := sig.AppendKey(keyBuf[:0])

	added := false
	err := set.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, nil)
	})
	if err != nil {
		return false, errors.Wrap(err, "signature set")
	}
	return added, nil
}

func (set *lsmSet) Close() error {
	if set.db != nil {
		err := set.db.Close()
		set.db = nil
		return err
	}
	return nil
}
