package catalog

import (
	"github.com/fine-structures/freegroup/freegroup"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

const (
	kMajorVers = 2024
	kMinorVers = 1
)

// CatalogState is the catalog's bookkeeping record, stored under gCatalogStateKey.
type CatalogState struct {
	MajorVers     uint64
	MinorVers     uint64
	NumSignatures uint64
	NumOrbits     []uint64 // orbits issued, indexed by presentation length
}

func (state *CatalogState) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(make([]byte, 0, 16+4*len(state.NumOrbits)))

	fields := []uint64{
		state.MajorVers,
		state.MinorVers,
		state.NumSignatures,
		uint64(len(state.NumOrbits)),
	}
	fields = append(fields, state.NumOrbits...)
	for _, x := range fields {
		if err := buf.EncodeVarint(x); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (state *CatalogState) Unmarshal(in []byte) error {
	buf := proto.NewBuffer(in)

	var hdr [4]uint64
	for i := range hdr {
		x, err := buf.DecodeVarint()
		if err != nil {
			return errors.Wrap(freegroup.ErrUnmarshal, "catalog state header")
		}
		hdr[i] = x
	}
	state.MajorVers = hdr[0]
	state.MinorVers = hdr[1]
	state.NumSignatures = hdr[2]

	if hdr[3] > uint64(len(in)) {
		return errors.Wrap(freegroup.ErrUnmarshal, "catalog state orbit counts")
	}
	state.NumOrbits = make([]uint64, hdr[3])
	for i := range state.NumOrbits {
		x, err := buf.DecodeVarint()
		if err != nil {
			return errors.Wrap(freegroup.ErrUnmarshal, "catalog state orbit counts")
		}
		state.NumOrbits[i] = x
	}
	return nil
}

// TotalOrbits is the number of orbits issued over all lengths.
func (state *CatalogState) TotalOrbits() uint64 {
	total := uint64(0)
	for _, n := range state.NumOrbits {
		total += n
	}
	return total
}
