package quicstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssemblerOrderedContiguous(t *testing.T) {
	var a assembler
	a.insert(0, []byte("hello"))
	buf := make([]byte, 5)
	n, err := a.read(buf)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "hello", string(buf))
}

func TestAssemblerOutOfOrder(t *testing.T) {
	var a assembler
	a.insert(5, []byte("world"))
	buf := make([]byte, 10)
	n, err := a.read(buf)
	require.NoError(t, err)
	require.Equal(t, 0, n, "no contiguous prefix yet")

	a.insert(0, []byte("hello"))
	n, err = a.read(buf)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, "helloworld", string(buf))
}

func TestAssemblerOverlapDeduped(t *testing.T) {
	var a assembler
	a.insert(0, []byte("hello"))
	a.insert(2, []byte("llorama"))
	buf := make([]byte, 9)
	n, err := a.read(buf)
	require.NoError(t, err)
	require.Equal(t, 9, n)
	require.Equal(t, "hellorama", string(buf))
}

func TestAssemblerUnorderedPoisonsOrderedRead(t *testing.T) {
	var a assembler
	a.insert(0, []byte("hello"))
	offset, data, ok := a.readUnordered()
	require.True(t, ok)
	require.Equal(t, uint64(0), offset)
	require.Equal(t, "hello", string(data))

	_, err := a.read(make([]byte, 1))
	require.ErrorIs(t, err, ErrIllegalOrderedRead)
}

func TestAssemblerStopDropsBuffered(t *testing.T) {
	var a assembler
	a.insert(0, []byte("hello"))
	a.stop()
	require.True(t, a.isStopped())
	n, err := a.read(make([]byte, 5))
	require.NoError(t, err)
	require.Equal(t, 0, n)

	a.insert(5, []byte("world"))
	require.Equal(t, uint64(5), a.end(), "insert after stop is a no-op")
}

func TestAssemblerIsFullyRead(t *testing.T) {
	var a assembler
	a.insert(0, []byte("hi"))
	require.False(t, a.isFullyRead())
	_, err := a.read(make([]byte, 2))
	require.NoError(t, err)
	require.True(t, a.isFullyRead())
}
