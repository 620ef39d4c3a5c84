package freegroup

import (
	"io"
)

// Signature is the canonical form of a presentation: its relators rewritten through the generator
// ranking chosen by canonization, so each letter is a signed one-based rank.
//
// Equal Signatures denote presentations that differ only by generator renaming, relator rotation,
// relator inversion or relator order.  The converse does not always hold: canonization commits to
// the first ordering that places every relator, so two such presentations can canonize differently.
type Signature [][]int

// SignatureKey is a binary encoding of a Signature (see Signature.AppendKey).
// It is usable as a map key (via string conversion) or as a db key.
type SignatureKey []byte

// OrbitID identifies a level orbit in a Catalog.
// The most significant 16 bits hold the total length of the orbit's presentations and the lower bits are a series number.
type OrbitID uint64

// PresentationState is a presentation as seen by streams, sets and catalogs.
type PresentationState interface {

	// Len returns the total length (sum of relator lengths).
	Len() int

	// Signature returns the canonical signature of this presentation.
	Signature() Signature

	// WriteAsString prints a human readable form of this presentation.
	WriteAsString(out io.Writer)

	// Returns a new copy of this instance.
	MakeCopy() PresentationState
}

// SignatureSet allows adding signatures and reports if an equal signature was already added.
type SignatureSet interface {

	// TryAdd adds the given signature if it is not already present.
	//
	// If sig is already in this set, this call has no effect and TryAdd returns false.
	// If sig isn't in this set, a copy of sig is added and TryAdd returns true.
	TryAdd(sig Signature) (bool, error)

	// Close removes all previously added items from this set and releases its resources.
	Close() error
}

// OrbitOpts bounds and instruments a level orbit search.
type OrbitOpts struct {
	Verbose  bool         // report the parent presentation and move producing each node
	MaxNodes int          // stop after this many nodes; 0 means no limit
	Seen     SignatureSet // signatures already reached; nil uses a fresh in-memory set
}

// OnSignatureHit is used to return signatures meeting a selection.
type OnSignatureHit chan<- Signature

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a Catalog
type CatalogOpts struct {
	DbPathName string `toml:"db_path" yaml:"db_path"`     // omit for an in-memory db
	ReadOnly   bool   `toml:"read_only" yaml:"read_only"` // open in read-only mode
}

// Catalog wraps a database of level orbits of minimal presentations.
//
// Every member of an orbit is stored by its Signature.  Two minimal presentations whose signatures
// map to the same OrbitID are equivalent under length preserving Whitehead moves.  Since equivalent
// presentations can canonize differently, a miss is not proof that a presentation lies outside every
// stored orbit.
type Catalog interface {

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumOrbits returns the number of orbits in this catalog.
	NumOrbits() int64

	// NumSignatures returns the number of signatures in this catalog, summed over all orbits.
	NumSignatures() int64

	// AddOrbit stores the given signatures under a newly issued OrbitID and returns it with true.
	// If any member is already stored, the others join that orbit and its OrbitID is returned with false.
	// Members stored under two different orbits, or a length beyond MaxOrbitLength, give ErrBadCatalogParam.
	AddOrbit(members []Signature) (OrbitID, bool, error)

	// LookupOrbit returns the OrbitID a signature was stored under.
	LookupOrbit(sig Signature) (OrbitID, bool, error)

	// SelectOrbit sends every signature of the given orbit to onHit, in key order.
	// onHit is not closed; the caller closes it once SelectOrbit returns.
	SelectOrbit(orbit OrbitID, onHit OnSignatureHit) error

	Close() error
}
