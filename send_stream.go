package quicstream

// SendState is the state of a send stream's finite-state machine
// (spec.md §4.6). Mirrors minq's SendStreamState constants, trimmed
// to the states this package actually tracks: DataRecvd and
// ResetRecvd are transient and cause immediate removal from the send
// map (spec.md invariant 9), so they're never observed from outside a
// single method call.
type SendState uint8

const (
	SendStateReady SendState = iota
	SendStateDataSent
	SendStateResetSent
)

func (s SendState) String() string {
	switch s {
	case SendStateReady:
		return "Ready"
	case SendStateDataSent:
		return "DataSent"
	case SendStateResetSent:
		return "ResetSent"
	default:
		return "Unknown"
	}
}

// sendStream is the per-stream send-side state described in spec.md
// §3 "Send state". Field names track the spec directly; behavior
// tracks quinn-proto's Send struct (original_source streams.rs).
type sendStream struct {
	maxData           uint64
	state             SendState
	finishAcked       bool // only meaningful in SendStateDataSent
	pending           sendBuffer
	finPending        bool
	connectionBlocked bool
	stopReason        *ErrorCode
}

func newSendStream(maxData uint64) *sendStream {
	return &sendStream{maxData: maxData, state: SendStateReady}
}

func (s *sendStream) isReset() bool {
	return s.state == SendStateResetSent
}

func (s *sendStream) isWritable() bool {
	return s.state == SendStateReady
}

func (s *sendStream) isPending() bool {
	return s.pending.hasUnsentData() || s.finPending
}

func (s *sendStream) offset() uint64 {
	return s.pending.offset()
}

// write appends up to len(data) bytes bounded by the stream's own
// flow-control budget (max_data - already-written). The connection
// level budget is applied by the caller before this is reached.
func (s *sendStream) write(data []byte) (int, error) {
	if !s.isWritable() {
		return 0, ErrUnknownStream
	}
	if s.stopReason != nil {
		return 0, newWriteStoppedError(*s.stopReason)
	}
	budget := s.maxData - s.pending.offset()
	if budget == 0 {
		return 0, ErrWriteBlocked
	}
	n := uint64(len(data))
	if n > budget {
		n = budget
	}
	s.pending.write(data[:n])
	return int(n), nil
}

// finish sets the FIN bit to be emitted; spec.md §4.1 Finish.
func (s *sendStream) finish() error {
	if s.stopReason != nil {
		return newFinishStoppedError(*s.stopReason)
	}
	if s.state != SendStateReady {
		return ErrUnknownStream
	}
	s.state = SendStateDataSent
	s.finPending = true
	return nil
}

// reset transitions Ready/DataSent -> ResetSent; a no-op if already
// reset (caller rejects the redundant call before reaching here).
func (s *sendStream) reset() {
	if s.state == SendStateReady || s.state == SendStateDataSent {
		s.state = SendStateResetSent
	}
}

func (s *sendStream) stop(code ErrorCode) {
	c := code
	s.stopReason = &c
}

// ack applies an acknowledged range and reports whether the stream
// just reached DataRecvd (fully-sent-and-acked, including FIN).
func (s *sendStream) ack(meta StreamMeta) (reachedDataRecvd bool) {
	s.pending.ack(meta.Offsets)
	if s.state == SendStateDataSent {
		s.finishAcked = s.finishAcked || meta.Fin
		if s.finishAcked && s.pending.isFullyAcked() {
			return true
		}
	}
	return false
}

// increaseMaxData applies a MAX_STREAM_DATA update and reports
// whether the stream was blocked at its old limit (spec.md §4.1
// received_max_stream_data).
func (s *sendStream) increaseMaxData(offset uint64) (unblocked bool) {
	if offset <= s.maxData || s.state != SendStateReady {
		return false
	}
	wasBlocked := s.pending.offset() == s.maxData
	s.maxData = offset
	return wasBlocked
}
