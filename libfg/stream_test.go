package libfg

import (
	"strings"
	"testing"

	"github.com/fine-structures/freegroup/freegroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type printBuf struct {
	strings.Builder
	closed bool
}

func (buf *printBuf) Close() error {
	buf.closed = true
	return nil
}

func TestPresentationStreamPrint(t *testing.T) {
	P := mustPresentation(t, "AB", "b")

	out := &printBuf{}
	stream := freegroup.StreamPresentation(P).Print(out, "P")
	require.Equal(t, 1, stream.PullAll())
	assert.True(t, out.closed)
	assert.Equal(t, "P,000001,generators: [A, B]\nrelators: [AB, b]\n", out.String())
	assert.NoError(t, stream.Err())
}

func TestPresentationStreamPushPull(t *testing.T) {
	P := mustPresentation(t, "AB")
	Q := mustPresentation(t, "AAB", "Ab")

	stream := freegroup.NewPresentationStream()
	go func() {
		stream.PushPresentation(P)
		stream.PushPresentation(Q)
		stream.PushPresentation(P)
		stream.Close()
	}()

	first := stream.PullPresentation()
	assert.True(t, P.Equal(first.(*Presentation)))
	assert.NotSame(t, P, first)

	// the repeat of P is dropped, Q is too long
	seen := NewOrderedSignatureSet()
	_, err := seen.TryAdd(first.Signature())
	require.NoError(t, err)
	assert.Equal(t, 0, stream.AddTo(seen).SelectLength(0, 2).PullAll())
	assert.Equal(t, 2, seen.Len())
}
