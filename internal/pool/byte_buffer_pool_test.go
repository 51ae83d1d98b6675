package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("runs"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, bb.Len())
	assert.Equal(t, []byte("runs"), bb.Bytes())

	capBefore := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, capBefore, cap(bb.B), "Reset should keep capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op with enough room", func(t *testing.T) {
		bb := NewByteBuffer(32)
		bb.Grow(10)
		assert.Equal(t, 32, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(4)
		_, _ = bb.Write([]byte("abcd"))
		bb.Grow(1)
		assert.Equal(t, 4+PayloadBufferDefaultSize, cap(bb.B))
		assert.Equal(t, []byte("abcd"), bb.Bytes())
	})

	t.Run("large request wins", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(PayloadBufferDefaultSize * 2)
		assert.GreaterOrEqual(t, cap(bb.B), PayloadBufferDefaultSize*2)
	})
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte{1, 2, 3})

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []byte{1, 2, 3}, out.Bytes())
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(8, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	_, _ = bb.Write([]byte("data"))
	p.Put(bb)

	again := p.Get()
	require.NotNil(t, again)
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	p.Put(nil)
	p.Put(NewByteBuffer(128)) // over threshold, dropped silently
}

func TestPayloadBuffer(t *testing.T) {
	bb := GetPayloadBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	PutPayloadBuffer(bb)
}
