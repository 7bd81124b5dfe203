package quicstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendBufferWriteAndTransmit(t *testing.T) {
	var b sendBuffer
	b.write([]byte("hello world"))
	require.True(t, b.hasUnsentData())
	require.Equal(t, uint64(11), b.offset())

	r := b.pollTransmit(5)
	require.Equal(t, byteRange{0, 5}, r)
	require.Equal(t, "hello", string(b.get(r)))

	r = b.pollTransmit(100)
	require.Equal(t, byteRange{5, 11}, r)
	require.False(t, b.hasUnsentData())
}

func TestSendBufferAckMergesRanges(t *testing.T) {
	var b sendBuffer
	b.write([]byte("0123456789"))
	b.pollTransmit(10)

	b.ack(byteRange{0, 3})
	b.ack(byteRange{5, 8})
	require.False(t, b.isFullyAcked())
	b.ack(byteRange{3, 5})
	b.ack(byteRange{8, 10})
	require.True(t, b.isFullyAcked())
}

func TestSendBufferRetransmitFIFO(t *testing.T) {
	var b sendBuffer
	b.write([]byte("0123456789"))
	b.pollTransmit(10)
	b.retransmitRange(byteRange{2, 5})
	b.retransmitRange(byteRange{7, 9})

	r := b.pollTransmit(100)
	require.Equal(t, byteRange{2, 5}, r)
	r = b.pollTransmit(100)
	require.Equal(t, byteRange{7, 9}, r)
}

func TestSendBufferRetransmitAllForZeroRTT(t *testing.T) {
	var b sendBuffer
	b.write([]byte("0123456789"))
	b.pollTransmit(6)
	b.retransmitAllForZeroRTT()

	r := b.pollTransmit(100)
	require.Equal(t, byteRange{0, 6}, r)
}

func TestSendBufferUnacked(t *testing.T) {
	var b sendBuffer
	b.write([]byte("0123456789"))
	b.pollTransmit(10)
	require.Equal(t, uint64(10), b.unacked())
	b.ack(byteRange{0, 4})
	require.Equal(t, uint64(6), b.unacked())
}
