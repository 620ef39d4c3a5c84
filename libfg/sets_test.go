package libfg

import (
	"testing"

	"github.com/fine-structures/freegroup/freegroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseSet(t *testing.T, set freegroup.SignatureSet) {
	sigs := []freegroup.Signature{
		{{1, 1, 2}, {1, -2}},
		{{1, 2}},
		{{1}, {2}},
		{},
	}

	for _, sig := range sigs {
		added, err := set.TryAdd(sig)
		require.NoError(t, err)
		assert.True(t, added, "%v", sig)
	}
	for _, sig := range sigs {
		added, err := set.TryAdd(sig.Copy())
		require.NoError(t, err)
		assert.False(t, added, "%v", sig)
	}

	require.NoError(t, set.Close())

	// a closed set starts over
	added, err := set.TryAdd(sigs[0])
	require.NoError(t, err)
	assert.True(t, added)
	require.NoError(t, set.Close())
}

func TestSignatureSets(t *testing.T) {
	t.Run("ordered", func(t *testing.T) {
		exerciseSet(t, NewOrderedSignatureSet())
	})
	t.Run("dropDupes", func(t *testing.T) {
		exerciseSet(t, NewDropDupes(DropDupeOpts{PoolSz: 8}))
	})
	t.Run("lsm", func(t *testing.T) {
		exerciseSet(t, NewLSMSignatureSet())
	})
}

func TestOrderedSignatureSetOrder(t *testing.T) {
	set := NewOrderedSignatureSet()
	for _, sig := range []freegroup.Signature{
		{{1, 2, 3}},
		{{1}, {2}},
		{{1, -2}},
		{{1, 2}},
	} {
		_, err := set.TryAdd(sig)
		require.NoError(t, err)
	}

	// a stored signature is a copy
	sig := freegroup.Signature{{1, 1}}
	set.TryAdd(sig)
	sig[0][0] = 7

	assert.Equal(t, 5, set.Len())
	assert.Equal(t, []freegroup.Signature{
		{{1, -2}},
		{{1, 1}},
		{{1, 2}},
		{{1, 2, 3}},
		{{1}, {2}},
	}, set.Signatures())
}
