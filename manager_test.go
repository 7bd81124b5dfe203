package quicstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, side Side) *StreamManager {
	t.Helper()
	return NewStreamManager(StreamManagerConfig{
		Side:                side,
		MaxRemoteBidi:       128,
		MaxRemoteUni:        128,
		SendWindow:          1024 * 1024,
		ReceiveWindow:       1024 * 1024,
		StreamReceiveWindow: 1024 * 1024,
	})
}

func TestResetFlowControl(t *testing.T) {
	client := newTestManager(t, SideClient)
	id := NewStreamId(SideServer, DirUni, 0)
	initialMax := client.localMaxData

	transmit, err := client.Received(StreamFrame{Id: id, Offset: 0, Fin: false, Data: make([]byte, 2048)})
	require.NoError(t, err)
	require.False(t, bool(transmit))
	require.Equal(t, uint64(2048), client.dataRecvd)
	require.Equal(t, uint64(0), client.localMaxData-initialMax)

	_, _, err = client.Read(id, make([]byte, 1024))
	require.NoError(t, err)
	require.Equal(t, uint64(1024), client.localMaxData-initialMax)

	transmit, err = client.ReceivedReset(ResetStreamFrame{Id: id, ErrorCode: 0, FinalSize: 4096})
	require.NoError(t, err)
	require.False(t, bool(transmit))
	require.Equal(t, uint64(4096), client.dataRecvd)
	require.Equal(t, uint64(4096), client.localMaxData-initialMax)
}

func TestResetAfterEmptyFrameFlowControl(t *testing.T) {
	client := newTestManager(t, SideClient)
	id := NewStreamId(SideServer, DirUni, 0)
	initialMax := client.localMaxData

	transmit, err := client.Received(StreamFrame{Id: id, Offset: 4096, Fin: false, Data: nil})
	require.NoError(t, err)
	require.False(t, bool(transmit))
	require.Equal(t, uint64(4096), client.dataRecvd)
	require.Equal(t, uint64(0), client.localMaxData-initialMax)

	transmit, err = client.ReceivedReset(ResetStreamFrame{Id: id, ErrorCode: 0, FinalSize: 4096})
	require.NoError(t, err)
	require.False(t, bool(transmit))
	require.Equal(t, uint64(4096), client.dataRecvd)
	require.Equal(t, uint64(4096), client.localMaxData-initialMax)
}

func TestDuplicateResetFlowControl(t *testing.T) {
	client := newTestManager(t, SideClient)
	id := NewStreamId(SideServer, DirUni, 0)

	transmit, err := client.ReceivedReset(ResetStreamFrame{Id: id, ErrorCode: 0, FinalSize: 4096})
	require.NoError(t, err)
	require.False(t, bool(transmit))
	require.Equal(t, uint64(4096), client.dataRecvd)

	transmit, err = client.ReceivedReset(ResetStreamFrame{Id: id, ErrorCode: 0, FinalSize: 4096})
	require.NoError(t, err)
	require.False(t, bool(transmit))
	require.Equal(t, uint64(4096), client.dataRecvd)
}

func TestRecvStopped(t *testing.T) {
	client := newTestManager(t, SideClient)
	id := NewStreamId(SideServer, DirUni, 0)
	initialMax := client.localMaxData

	transmit, err := client.Received(StreamFrame{Id: id, Offset: 0, Fin: false, Data: make([]byte, 32)})
	require.NoError(t, err)
	require.False(t, bool(transmit))
	require.Equal(t, initialMax, client.localMaxData)

	res, err := client.Stop(id)
	require.NoError(t, err)
	require.Equal(t, StopResult{StopSending: true, MaxData: false}, res)

	_, err = client.Stop(id)
	require.ErrorIs(t, err, ErrUnknownStream)

	_, _, err = client.Read(id, nil)
	require.ErrorIs(t, err, ErrUnknownStream)

	_, _, err = client.ReadUnordered(id)
	require.ErrorIs(t, err, ErrUnknownStream)

	require.Equal(t, uint64(32), client.localMaxData-initialMax)

	transmit, err = client.Received(StreamFrame{Id: id, Offset: 32, Fin: true, Data: make([]byte, 16)})
	require.NoError(t, err)
	require.False(t, bool(transmit))
	require.Equal(t, uint64(48), client.localMaxData-initialMax)

	_, stillPresent := client.recv[id]
	require.False(t, stillPresent)
}

func TestStoppedReset(t *testing.T) {
	client := newTestManager(t, SideClient)
	id := NewStreamId(SideServer, DirUni, 0)

	transmit, err := client.Received(StreamFrame{Id: id, Offset: 0, Fin: false, Data: make([]byte, 32)})
	require.NoError(t, err)
	require.False(t, bool(transmit))

	res, err := client.Stop(id)
	require.NoError(t, err)
	require.Equal(t, StopResult{StopSending: true, MaxData: false}, res)

	transmit, err = client.ReceivedReset(ResetStreamFrame{Id: id, ErrorCode: 0, FinalSize: 32})
	require.NoError(t, err)
	require.False(t, bool(transmit))

	_, stillPresent := client.recv[id]
	require.False(t, stillPresent, "stream state is freed")
}

func TestSendStopped(t *testing.T) {
	params := &TransportParameters{
		InitialMaxStreamsUni:    1,
		InitialMaxData:          42,
		InitialMaxStreamDataUni: 42,
	}
	server := newTestManager(t, SideServer)
	server.SetParams(params)
	id, ok := server.Open(params, DirUni)
	require.True(t, ok)

	var reason ErrorCode = 0
	server.ReceivedStopSending(id, reason)

	_, err := server.Write(id, nil)
	werr, ok := err.(*WriteError)
	require.True(t, ok)
	require.Equal(t, writeErrStopped, werr.kind)
	require.Equal(t, reason, werr.Code)

	err = server.Reset(id)
	require.NoError(t, err)

	_, err = server.Write(id, nil)
	require.ErrorIs(t, err, ErrUnknownStream)
}
