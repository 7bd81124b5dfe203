package quicstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 63, 64, 16383, 16384, 1073741823, 1073741824, 1 << 61}
	for _, v := range values {
		buf := appendVarint(nil, v)
		require.Equal(t, varintLen(v), len(buf))
		got, n, ok := readVarint(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
		require.Equal(t, v, got)
	}
}

func TestReadVarintShortBuffer(t *testing.T) {
	buf := appendVarint(nil, 16384)
	_, _, ok := readVarint(buf[:1])
	require.False(t, ok)
}
