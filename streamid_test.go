package quicstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamIdRoundTrip(t *testing.T) {
	cases := []struct {
		side  Side
		dir   Dir
		index uint64
	}{
		{SideClient, DirBi, 0},
		{SideServer, DirBi, 0},
		{SideClient, DirUni, 7},
		{SideServer, DirUni, 1 << 30},
	}
	for _, c := range cases {
		id := NewStreamId(c.side, c.dir, c.index)
		require.Equal(t, c.side, id.Side())
		require.Equal(t, c.dir, id.Dir())
		require.Equal(t, c.index, id.Index())
	}
}

func TestStreamIdInitiator(t *testing.T) {
	id := NewStreamId(SideServer, DirUni, 0)
	require.True(t, id.Initiator(SideServer))
	require.False(t, id.Initiator(SideClient))
}

func TestSideOther(t *testing.T) {
	require.Equal(t, SideServer, SideClient.other())
	require.Equal(t, SideClient, SideServer.other())
}
