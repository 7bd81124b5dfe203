package quicstream

// RecvState is the state of a recv stream's finite-state machine
// (spec.md §4.7). Mirrors minq's RecvStreamState constants, trimmed
// the same way SendState is: DataRecvd is folded into Recv (tracked
// via finalSize instead of a distinct tag) since this package only
// needs to distinguish "still receiving", "reset", and "closed".
type RecvState uint8

const (
	RecvStateRecv RecvState = iota
	RecvStateResetRecvd
	RecvStateClosed
)

func (s RecvState) String() string {
	switch s {
	case RecvStateRecv:
		return "Recv"
	case RecvStateResetRecvd:
		return "ResetRecvd"
	case RecvStateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// recvStream is the per-stream recv-side state described in spec.md
// §3 "Receive state". Behavior tracks quinn-proto's Recv struct.
type recvStream struct {
	state    RecvState
	finalSize *uint64 // set once FIN or RESET_STREAM fixes the size
	resetCode ErrorCode

	assembler assembler

	sentMaxStreamData uint64
}

func newRecvStream() *recvStream {
	return &recvStream{}
}

// isFinished reports that no more data is expected from the peer.
func (s *recvStream) isFinished() bool {
	return s.state != RecvStateRecv
}

// isClosed reports that the stream reached its terminal state: fully
// drained by the application, reset and reported to a reader, or
// stopped and then finished by the peer (spec.md invariant 8 removal
// condition).
func (s *recvStream) isClosed() bool {
	return s.state == RecvStateClosed
}

// ingest applies a STREAM frame's payload, enforcing the final-size
// and flow-control checks of spec.md §4.1 received(stream_frame).
// received and localMaxData are connection-level counters; window is
// stream_receive_window.
func (s *recvStream) ingest(f StreamFrame, received, localMaxData, window uint64) (newBytes uint64, err error) {
	end := f.Offset + uint64(len(f.Data))
	if end >= 1<<62 {
		return 0, flowControlError("maximum stream offset too large")
	}

	if s.finalSize != nil {
		if end > *s.finalSize || (f.Fin && end != *s.finalSize) {
			return 0, finalSizeError("")
		}
	}

	prevEnd := s.assembler.end()
	if end > prevEnd {
		newBytes = end - prevEnd
	}
	streamMaxData := s.assembler.bytesRead() + window
	if end > streamMaxData || received+newBytes > localMaxData {
		return 0, flowControlError("")
	}

	if f.Fin {
		if s.assembler.isStopped() {
			s.state = RecvStateClosed
		} else if s.finalSize == nil {
			size := end
			s.finalSize = &size
		}
	}

	s.assembler.insert(f.Offset, f.Data)
	return newBytes, nil
}

// read delegates to the assembler; see spec.md §4.3 for the contract.
// A blocked stream returns ErrReadBlocked. A fully drained stream
// returns n==0 with a nil error and moves to RecvStateClosed; done is
// always false, so callers check isClosed to tell the two apart.
func (s *recvStream) read(buf []byte) (n int, done bool, err error) {
	if s.assembler.isStopped() {
		return 0, false, ErrUnknownStream
	}
	n, err = s.assembler.read(buf)
	if err != nil {
		return 0, false, err
	}
	if n > 0 {
		return n, false, nil
	}
	return 0, false, s.readBlocked()
}

func (s *recvStream) readUnordered() (offset uint64, data []byte, done bool, err error) {
	if s.assembler.isStopped() {
		return 0, nil, false, ErrUnknownStream
	}
	offset, data, ok := s.assembler.readUnordered()
	if ok {
		return offset, data, false, nil
	}
	return 0, nil, false, s.readBlocked()
}

// readBlocked classifies the "no bytes returned" case per spec.md
// §4.7: a latched reset surfaces once then closes the stream; a
// fully-drained Recv stream closes and reports done via a nil error;
// an already closed stream yields ErrUnknownStream; anything else is
// ErrReadBlocked.
func (s *recvStream) readBlocked() error {
	switch s.state {
	case RecvStateResetRecvd:
		s.state = RecvStateClosed
		return newReadResetError(s.resetCode)
	case RecvStateClosed:
		return ErrUnknownStream
	default: // RecvStateRecv
		if s.finalSize != nil && *s.finalSize == s.assembler.end() && s.assembler.isFullyRead() {
			s.state = RecvStateClosed
			return nil
		}
		return ErrReadBlocked
	}
}

// reset applies a RESET_STREAM; returns false if redundant (spec.md
// §4.1 received_reset).
func (s *recvStream) reset(code ErrorCode, finalSize uint64) bool {
	if s.state == RecvStateResetRecvd || s.state == RecvStateClosed {
		return false
	}
	s.state = RecvStateResetRecvd
	s.resetCode = code
	size := finalSize
	s.finalSize = &size
	s.assembler.clear()
	return true
}

// stop latches the assembler's stopped flag; spec.md §4.1 stop(id).
func (s *recvStream) stop() {
	s.assembler.stop()
}

// receivingUnknownSize reports whether a final size hasn't been
// determined yet, used to gate MAX_STREAM_DATA announcements (a
// finished-size stream needs no more credit).
func (s *recvStream) receivingUnknownSize() bool {
	return s.state == RecvStateRecv && s.finalSize == nil
}

// maxStreamData computes the window that should be advertised in a
// MAX_STREAM_DATA frame, and whether the increase is significant
// enough to be worth transmitting now (spec.md §4.2).
func (s *recvStream) maxStreamData(window uint64) (max uint64, transmit bool) {
	max = s.assembler.bytesRead() + window
	diff := max - s.sentMaxStreamData
	return max, s.receivingUnknownSize() && diff >= window/8
}

func (s *recvStream) recordSentMaxStreamData(sent uint64) {
	if sent > s.sentMaxStreamData {
		s.sentMaxStreamData = sent
	}
}
