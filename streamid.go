package quicstream

import "fmt"

// Side identifies which endpoint of a connection opened a stream.
type Side uint8

// Side values, matching the low bit of a StreamId.
const (
	SideClient = Side(0)
	SideServer = Side(1)
)

func (s Side) String() string {
	if s == SideServer {
		return "server"
	}
	return "client"
}

// other returns the peer's Side.
func (s Side) other() Side {
	return s ^ 1
}

// Dir is a stream's directionality.
type Dir uint8

// Dir values, matching bit 1 of a StreamId.
const (
	DirBi  = Dir(0)
	DirUni = Dir(1)
)

func (d Dir) String() string {
	if d == DirUni {
		return "uni"
	}
	return "bi"
}

// dirs enumerates both directions, in the fixed order the [2]T arrays
// in StreamManager are indexed by.
var dirs = [2]Dir{DirBi, DirUni}

// StreamId is a QUIC stream identifier: a 62-bit unsigned integer
// encoding (index << 2) | (dir << 1) | side. StreamIds are immutable
// values, not pointers into any map.
type StreamId uint64

// MaxStreamOffset is the largest representable stream byte offset
// (2^62 - 1); StreamManager stops asking for MAX_DATA once its
// connection-level receive credit passes it.
const MaxStreamOffset = uint64(1)<<62 - 1

// NewStreamId builds a StreamId from its component parts.
func NewStreamId(side Side, dir Dir, index uint64) StreamId {
	return StreamId(index<<2 | uint64(dir)<<1 | uint64(side))
}

// Side returns the endpoint that opened the stream.
func (id StreamId) Side() Side {
	return Side(id & 0x1)
}

// Dir returns the stream's directionality.
func (id StreamId) Dir() Dir {
	return Dir((id >> 1) & 0x1)
}

// Index returns the stream's ordinal among streams with the same
// (Side, Dir).
func (id StreamId) Index() uint64 {
	return uint64(id) >> 2
}

// Initiator reports whether the stream was opened by endpoint `side`.
func (id StreamId) Initiator(side Side) bool {
	return id.Side() == side
}

func (id StreamId) String() string {
	return fmt.Sprintf("%s-%s-%d", id.Side(), id.Dir(), id.Index())
}
