package quicstream

import "fmt"

// ErrorCode is a QUIC transport error code (RFC 9000 section 20.1).
type ErrorCode uint64

// Transport error codes this package can raise. The connection layer
// is responsible for turning these into an outgoing CONNECTION_CLOSE;
// this package only classifies and reports them.
const (
	ErrorCodeFlowControl    = ErrorCode(0x3)
	ErrorCodeStreamLimit    = ErrorCode(0x4)
	ErrorCodeStreamState    = ErrorCode(0x5)
	ErrorCodeFinalSize      = ErrorCode(0x6)
	ErrorCodeFrameEncoding  = ErrorCode(0x7)
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeFlowControl:
		return "FLOW_CONTROL_ERROR"
	case ErrorCodeStreamLimit:
		return "STREAM_LIMIT_ERROR"
	case ErrorCodeStreamState:
		return "STREAM_STATE_ERROR"
	case ErrorCodeFinalSize:
		return "FINAL_SIZE_ERROR"
	case ErrorCodeFrameEncoding:
		return "FRAME_ENCODING_ERROR"
	default:
		return fmt.Sprintf("ErrorCode(%#x)", uint64(c))
	}
}

// TransportError is a protocol violation by the peer. It is always
// fatal: the connection layer that owns this StreamManager must tear
// down the connection on receipt, never retry or ignore it.
type TransportError struct {
	Code   ErrorCode
	Reason string
}

func (e *TransportError) Error() string {
	if e.Reason == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func flowControlError(reason string) error {
	return &TransportError{Code: ErrorCodeFlowControl, Reason: reason}
}

func finalSizeError(reason string) error {
	return &TransportError{Code: ErrorCodeFinalSize, Reason: reason}
}

func streamStateError(reason string) error {
	return &TransportError{Code: ErrorCodeStreamState, Reason: reason}
}

func streamLimitError(reason string) error {
	return &TransportError{Code: ErrorCodeStreamLimit, Reason: reason}
}

func frameEncodingError(reason string) error {
	return &TransportError{Code: ErrorCodeFrameEncoding, Reason: reason}
}

// ErrUnknownStream is returned wherever spec.md calls for
// "UnknownStream": the stream doesn't exist, was never opened, or has
// already finished/reset far enough that its state was discarded.
// It is also returned for redundant, already-applied local calls
// (double reset, double stop) per spec.md's "redundant operation"
// handling — never a panic, never a transport error.
var ErrUnknownStream = fmt.Errorf("unknown stream")

// WriteError is returned by StreamManager.Write.
type WriteError struct {
	// kind distinguishes UnknownStream/Blocked from Stopped; Stopped
	// carries Code.
	kind writeErrorKind
	Code ErrorCode
}

type writeErrorKind uint8

const (
	writeErrUnknownStream writeErrorKind = iota
	writeErrBlocked
	writeErrStopped
)

// ErrWriteBlocked indicates the write produced zero bytes because
// connection-level or stream-level flow control credit is exhausted.
// A Writable event will follow once credit is available again.
var ErrWriteBlocked = &WriteError{kind: writeErrBlocked}

func newWriteStoppedError(code ErrorCode) *WriteError {
	return &WriteError{kind: writeErrStopped, Code: code}
}

func (e *WriteError) Error() string {
	switch e.kind {
	case writeErrBlocked:
		return "unable to accept further writes"
	case writeErrStopped:
		return fmt.Sprintf("stopped by peer: code %s", e.Code)
	default:
		return ErrUnknownStream.Error()
	}
}

// Is lets errors.Is(err, ErrUnknownStream) and errors.Is(err,
// ErrWriteBlocked) work against a *WriteError.
func (e *WriteError) Is(target error) bool {
	switch target {
	case ErrUnknownStream:
		return e.kind == writeErrUnknownStream
	case ErrWriteBlocked:
		return e.kind == writeErrBlocked
	}
	return false
}

// ReadError is returned by StreamManager.Read and ReadUnordered.
type ReadError struct {
	kind readErrorKind
	Code ErrorCode
}

type readErrorKind uint8

const (
	readErrUnknownStream readErrorKind = iota
	readErrBlocked
	readErrReset
	readErrIllegalOrderedRead
)

// ErrReadBlocked indicates no data is available yet; a Readable event
// will follow once more data (or a terminal condition) arrives.
var ErrReadBlocked = &ReadError{kind: readErrBlocked}

// ErrIllegalOrderedRead is returned when an ordered Read follows an
// earlier ReadUnordered on the same stream: once out-of-order reads
// have been permitted, the ordered prefix can no longer be
// reconstructed.
var ErrIllegalOrderedRead = &ReadError{kind: readErrIllegalOrderedRead}

func newReadResetError(code ErrorCode) *ReadError {
	return &ReadError{kind: readErrReset, Code: code}
}

func (e *ReadError) Error() string {
	switch e.kind {
	case readErrBlocked:
		return "blocked"
	case readErrReset:
		return fmt.Sprintf("reset by peer: code %s", e.Code)
	case readErrIllegalOrderedRead:
		return "ordered read after unordered read"
	default:
		return ErrUnknownStream.Error()
	}
}

func (e *ReadError) Is(target error) bool {
	switch target {
	case ErrUnknownStream:
		return e.kind == readErrUnknownStream
	case ErrReadBlocked:
		return e.kind == readErrBlocked
	case ErrIllegalOrderedRead:
		return e.kind == readErrIllegalOrderedRead
	}
	return false
}

// FinishError is returned by StreamManager.Finish.
type FinishError struct {
	kind finishErrorKind
	Code ErrorCode
}

type finishErrorKind uint8

const (
	finishErrUnknownStream finishErrorKind = iota
	finishErrStopped
)

func newFinishStoppedError(code ErrorCode) *FinishError {
	return &FinishError{kind: finishErrStopped, Code: code}
}

func (e *FinishError) Error() string {
	if e.kind == finishErrStopped {
		return fmt.Sprintf("stopped by peer: code %s", e.Code)
	}
	return ErrUnknownStream.Error()
}

func (e *FinishError) Is(target error) bool {
	return target == ErrUnknownStream && e.kind == finishErrUnknownStream
}
