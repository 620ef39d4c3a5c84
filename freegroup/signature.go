package freegroup

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

func mini(a, b int) int {
	if a < b {
		return a
	} else {
		return b
	}
}

// Len returns the total number of letters in this signature.
func (sig Signature) Len() int {
	N := 0
	for _, Ri := range sig {
		N += len(Ri)
	}
	return N
}

// IsEqual returns true if two signatures have the same relators in the same order.
func (sig Signature) IsEqual(other Signature) bool {
	return CompareSignatures(sig, other) == 0
}

// Copy returns a deep copy of this signature.
func (sig Signature) Copy() Signature {
	dup := make(Signature, len(sig))
	for i, Ri := range sig {
		dup[i] = append([]int(nil), Ri...)
	}
	return dup
}

// CompareSignatures is a total order on Signatures: fewer relators sort first,
// then relators are compared in turn, shorter first and then letter by letter.
func CompareSignatures(A, B Signature) int {
	if d := len(A) - len(B); d != 0 {
		return d
	}

	for i, Ai := range A {
		Bi := B[i]
		if d := len(Ai) - len(Bi); d != 0 {
			return d
		}
		N := mini(len(Ai), len(Bi))
		for j := 0; j < N; j++ {
			if d := Ai[j] - Bi[j]; d != 0 {
				return d
			}
		}
	}

	return 0
}

// AppendKey appends a canonical binary encoding of sig to []out, returning it as a SignatureKey.
//
// The encoding is the relator count followed by, for each relator, its length and its letters as signed varints.
func (sig Signature) AppendKey(out []byte) SignatureKey {
	var scrap [binary.MaxVarintLen64]byte

	key := out
	n := binary.PutUvarint(scrap[:], uint64(len(sig)))
	key = append(key, scrap[:n]...)

	for _, Ri := range sig {
		n = binary.PutUvarint(scrap[:], uint64(len(Ri)))
		key = append(key, scrap[:n]...)
		for _, letter := range Ri {
			n = binary.PutVarint(scrap[:], int64(letter))
			key = append(key, scrap[:n]...)
		}
	}

	return key
}

// InitFromKey assigns this Signature from a binary encoding made from AppendKey()
func (sig *Signature) InitFromKey(key SignatureKey) error {
	rdr := bytes.NewReader(key)

	numRelators, err := binary.ReadUvarint(rdr)
	if err != nil || numRelators > uint64(len(key)) {
		return ErrUnmarshal
	}

	out := make(Signature, numRelators)
	for i := range out {
		relLen, err := binary.ReadUvarint(rdr)
		if err != nil || relLen > uint64(len(key)) {
			return ErrUnmarshal
		}
		Ri := make([]int, relLen)
		for j := range Ri {
			letter, err := binary.ReadVarint(rdr)
			if err != nil || letter == 0 {
				return ErrUnmarshal
			}
			Ri[j] = int(letter)
		}
		out[i] = Ri
	}
	if rdr.Len() != 0 {
		return ErrUnmarshal
	}

	*sig = out
	return nil
}

// WriteAsString writes sig as a tuple of tuples, e.g. "((1, 2, -1), (2,))"
func (sig Signature) WriteAsString(out io.Writer) {
	buf := strings.Builder{}
	buf.WriteByte('(')
	for i, Ri := range sig {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteByte('(')
		for j, letter := range Ri {
			if j > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "%d", letter)
		}
		if len(Ri) == 1 {
			buf.WriteByte(',')
		}
		buf.WriteByte(')')
	}
	if len(sig) == 1 {
		buf.WriteByte(',')
	}
	buf.WriteByte(')')
	io.WriteString(out, buf.String())
}

func (sig Signature) String() string {
	buf := strings.Builder{}
	sig.WriteAsString(&buf)
	return buf.String()
}

const (
	OrbitIDSz = 8

	// MaxOrbitLength is the longest presentation length an OrbitID can hold.
	MaxOrbitLength = 0xFFFF
)

// FormOrbitID forms an OrbitID from a presentation length and a series number.
func FormOrbitID(length int, seriesID uint64) OrbitID {
	return OrbitID((uint64(length) << 48) | (seriesID & 0xFFFFFFFFFFFF))
}

func (oid OrbitID) Marshal(in []byte) []byte {
	return binary.BigEndian.AppendUint64(in, uint64(oid))
}

func (oid *OrbitID) Unmarshal(in []byte) error {
	if len(in) < OrbitIDSz {
		*oid = 0
		return ErrUnmarshal
	}
	*oid = OrbitID(binary.BigEndian.Uint64(in))
	return nil
}

// Length returns the total presentation length shared by all members of this orbit.
func (oid OrbitID) Length() int {
	return int(uint16(oid >> 48))
}

func (oid OrbitID) SeriesID() uint64 {
	return 0xFFFFFFFFFFFF & uint64(oid)
}

func (oid OrbitID) WriteAsString(out io.Writer) {
	fmt.Fprintf(out, "%d-%d", oid.Length(), oid.SeriesID())
}

func (oid OrbitID) String() string {
	return fmt.Sprintf("%d-%d", oid.Length(), oid.SeriesID())
}
