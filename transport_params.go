package quicstream

// TransportParameters carries the subset of QUIC transport parameters
// (RFC 9000 section 18.2) this package consumes. They arrive twice in
// a real connection: once per newly-opened/allocated stream (so a
// locally-opened stream picks up whatever was negotiated so far) and
// once in bulk via StreamManager.SetParams after the handshake
// completes.
type TransportParameters struct {
	InitialMaxData uint64

	InitialMaxStreamsBidi uint64
	InitialMaxStreamsUni  uint64

	// InitialMaxStreamDataBidiLocal is, confusingly, named from the
	// perspective of the peer that sent these parameters: it bounds
	// data this endpoint may send on a bidirectional stream *the peer*
	// opened. See insertStream for the side this actually applies to.
	InitialMaxStreamDataBidiLocal  uint64
	InitialMaxStreamDataBidiRemote uint64
	InitialMaxStreamDataUni        uint64
}
