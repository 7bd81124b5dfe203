package quicstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamFrameEncodeDecodeShape(t *testing.T) {
	f := StreamFrame{Id: NewStreamId(SideClient, DirBi, 3), Offset: 128, Fin: true, Data: []byte("payload")}
	buf := f.encode(nil)

	typ := buf[0]
	require.Equal(t, byte(frameTypeStream)|0x04|0x02|0x01, typ)

	id, n, ok := readVarint(buf[1:])
	require.True(t, ok)
	require.Equal(t, uint64(f.Id), id)

	offset, n2, ok := readVarint(buf[1+n:])
	require.True(t, ok)
	require.Equal(t, f.Offset, offset)

	length, n3, ok := readVarint(buf[1+n+n2:])
	require.True(t, ok)
	require.Equal(t, uint64(len(f.Data)), length)
	require.Equal(t, "payload", string(buf[1+n+n2+n3:]))
}

func TestResetStreamFrameEncode(t *testing.T) {
	f := ResetStreamFrame{Id: NewStreamId(SideServer, DirUni, 1), ErrorCode: ErrorCodeFlowControl, FinalSize: 4096}
	buf := f.encode(nil)
	require.Equal(t, byte(frameTypeResetStream), buf[0])
}

func TestMaxStreamsFrameEncodePicksDir(t *testing.T) {
	bi := MaxStreamsFrame{Dir: DirBi, Count: 5}.encode(nil)
	require.Equal(t, byte(frameTypeMaxStreamsBidi), bi[0])

	uni := MaxStreamsFrame{Dir: DirUni, Count: 5}.encode(nil)
	require.Equal(t, byte(frameTypeMaxStreamsUni), uni[0])
}
