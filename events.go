package quicstream

// StreamEvent is an application-facing notification surfaced by
// StreamManager.Poll. It mirrors quinn-proto's StreamEvent enum
// (spec.md §6).
type StreamEvent struct {
	Kind StreamEventKind
	Id   StreamId
	Dir  Dir
	Code ErrorCode // only set for Stopped
}

// StreamEventKind discriminates StreamEvent.
type StreamEventKind uint8

const (
	// EventOpened indicates one or more new peer-initiated streams of
	// Dir have been opened; call Accept to retrieve them.
	EventOpened StreamEventKind = iota
	// EventReadable indicates Id has data or a terminal condition
	// waiting to be read.
	EventReadable
	// EventWritable indicates a formerly write-blocked stream may now
	// accept a write.
	EventWritable
	// EventFinished indicates Id's send side has been fully
	// acknowledged, including its FIN. An acknowledged reset produces
	// no event.
	EventFinished
	// EventStopped indicates the peer asked this endpoint to stop
	// sending on Id, via STOP_SENDING.
	EventStopped
	// EventAvailable indicates at least one new stream of Dir may now
	// be opened.
	EventAvailable
)

func openedEvent(dir Dir) StreamEvent       { return StreamEvent{Kind: EventOpened, Dir: dir} }
func readableEvent(id StreamId) StreamEvent { return StreamEvent{Kind: EventReadable, Id: id} }
func writableEvent(id StreamId) StreamEvent { return StreamEvent{Kind: EventWritable, Id: id} }
func finishedEvent(id StreamId) StreamEvent { return StreamEvent{Kind: EventFinished, Id: id} }
func stoppedEvent(id StreamId, code ErrorCode) StreamEvent {
	return StreamEvent{Kind: EventStopped, Id: id, Code: code}
}
func availableEvent(dir Dir) StreamEvent { return StreamEvent{Kind: EventAvailable, Dir: dir} }

// ShouldTransmit is a hint returned to the collaborator that now is a
// good time to send an outbound frame of the kind the producing call
// documents (e.g. a write_control_frames pending flag). It exists
// purely so callers don't confuse a bool flow-control hint with an
// unrelated bool return elsewhere in the API.
type ShouldTransmit bool
