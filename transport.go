package quicstream

// Transport is the minimal send side a demo or test driver needs to
// move encoded frame bytes between two StreamManager instances.
// Mirrors minq's Transport/TransportFactory split (transport.go),
// narrowed to the one method this package's demo actually needs:
// StreamManager itself never dials, listens, or blocks on I/O.
type Transport interface {
	Send(packet []byte) error
}

// pipeTransport delivers packets synchronously into a peer queue, the
// way minq's tests use a mock Transport that appends to a channel
// instead of touching a real socket. Used by bin/streamdemo to avoid
// pulling in real UDP plumbing, which belongs to the handshake layer
// this package doesn't implement.
type pipeTransport struct {
	peer *[][]byte
}

func (t *pipeTransport) Send(packet []byte) error {
	cp := make([]byte, len(packet))
	copy(cp, packet)
	*t.peer = append(*t.peer, cp)
	return nil
}

// NewPipe returns two Transports wired to each other's inbox, plus the
// inboxes themselves so a driver can pop delivered packets off.
func NewPipe() (a, b Transport, aInbox, bInbox *[][]byte) {
	aBox := &[][]byte{}
	bBox := &[][]byte{}
	return &pipeTransport{peer: bBox}, &pipeTransport{peer: aBox}, aBox, bBox
}
