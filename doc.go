/*
Package quicstream implements the stream multiplexing core of a QUIC
transport endpoint: the subsystem that owns the lifecycle, flow
control, ordering, and frame generation/ingestion for every
application stream on a connection, as described by
draft-ietf-quic-transport.

Packet encryption, loss detection, congestion control, the handshake,
path validation, and datagram I/O are treated as peers that feed
parsed frames into this package (via the Received* methods) and drain
frame-encoding requests and events out of it (via WriteControlFrames,
WriteStreamFrames and Poll). This package never performs I/O itself
and never blocks.
*/
package quicstream
