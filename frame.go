package quicstream

// Wire frame types this package produces and consumes (RFC 9000
// section 19). Encoding follows minq's layering: a frame knows how to
// encode itself into a byte slice and report its own worst-case
// encoded size, the way minq's connection.go sizes frames before
// deciding whether they fit in the remaining packet budget
// (packetOverhead / SIZE_BOUND-style checks in write_control_frames).

type frameType byte

const (
	frameTypeStream         frameType = 0x08 // low 3 bits carry OFF/LEN/FIN flags
	frameTypeResetStream    frameType = 0x04
	frameTypeStopSending    frameType = 0x05
	frameTypeMaxData        frameType = 0x10
	frameTypeMaxStreamData  frameType = 0x11
	frameTypeMaxStreamsBidi frameType = 0x12
	frameTypeMaxStreamsUni  frameType = 0x13
)

// StreamFrame carries application bytes for one stream (RFC 9000
// section 19.8).
type StreamFrame struct {
	Id     StreamId
	Offset uint64
	Fin    bool
	Data   []byte
}

// streamFrameSizeBound is the worst-case header size (type + id +
// offset + length, each an 8-byte varint) excluding the payload
// itself; callers reserve this much room before measuring how much
// payload will actually fit.
const streamFrameSizeBound = 1 + 8 + 8 + 8

func (f StreamFrame) encode(buf []byte) []byte {
	typ := frameTypeStream
	if f.Offset != 0 {
		typ |= 0x04 // OFF bit
	}
	typ |= 0x02 // always include an explicit LEN
	if f.Fin {
		typ |= 0x01
	}
	buf = append(buf, byte(typ))
	buf = appendVarint(buf, uint64(f.Id))
	if f.Offset != 0 {
		buf = appendVarint(buf, f.Offset)
	}
	buf = appendVarint(buf, uint64(len(f.Data)))
	return append(buf, f.Data...)
}

// ResetStreamFrame abandons a send stream (RFC 9000 section 19.4).
type ResetStreamFrame struct {
	Id         StreamId
	ErrorCode  ErrorCode
	FinalSize  uint64
}

const resetStreamFrameSizeBound = 1 + 8 + 8 + 8

func (f ResetStreamFrame) encode(buf []byte) []byte {
	buf = append(buf, byte(frameTypeResetStream))
	buf = appendVarint(buf, uint64(f.Id))
	buf = appendVarint(buf, uint64(f.ErrorCode))
	return appendVarint(buf, f.FinalSize)
}

// StopSendingFrame asks the peer to abandon a send stream (RFC 9000
// section 19.5).
type StopSendingFrame struct {
	Id        StreamId
	ErrorCode ErrorCode
}

const stopSendingFrameSizeBound = 1 + 8 + 8

func (f StopSendingFrame) encode(buf []byte) []byte {
	buf = append(buf, byte(frameTypeStopSending))
	buf = appendVarint(buf, uint64(f.Id))
	return appendVarint(buf, uint64(f.ErrorCode))
}

// MaxDataFrame raises the connection-level flow control limit (RFC
// 9000 section 19.9).
type MaxDataFrame struct {
	Limit uint64
}

const maxDataFrameSizeBound = 1 + 8

func (f MaxDataFrame) encode(buf []byte) []byte {
	buf = append(buf, byte(frameTypeMaxData))
	return appendVarint(buf, f.Limit)
}

// MaxStreamDataFrame raises a single stream's flow control limit (RFC
// 9000 section 19.10).
type MaxStreamDataFrame struct {
	Id    StreamId
	Limit uint64
}

const maxStreamDataFrameSizeBound = 1 + 8 + 8

func (f MaxStreamDataFrame) encode(buf []byte) []byte {
	buf = append(buf, byte(frameTypeMaxStreamData))
	buf = appendVarint(buf, uint64(f.Id))
	return appendVarint(buf, f.Limit)
}

// MaxStreamsFrame raises the number of streams of Dir the peer may
// open (RFC 9000 section 19.11).
type MaxStreamsFrame struct {
	Dir   Dir
	Count uint64
}

const maxStreamsFrameSizeBound = 1 + 8

func (f MaxStreamsFrame) encode(buf []byte) []byte {
	typ := frameTypeMaxStreamsBidi
	if f.Dir == DirUni {
		typ = frameTypeMaxStreamsUni
	}
	buf = append(buf, byte(typ))
	return appendVarint(buf, f.Count)
}

// StreamMeta describes one emitted STREAM frame, returned by
// WriteStreamFrames so the loss-detection collaborator can later call
// ReceivedAckOf or Retransmit with exactly what was sent.
type StreamMeta struct {
	Id      StreamId
	Offsets byteRange
	Fin     bool
}
