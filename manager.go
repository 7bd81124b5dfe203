package quicstream

import (
	"github.com/sirupsen/logrus"
)

// StreamManagerConfig carries the per-connection knobs that used to live
// as package constants/TlsConfig fields in minq (kInitialMaxStreamData
// and friends). See spec.md §4.1 "open"/"set_params".
type StreamManagerConfig struct {
	Side Side

	MaxRemoteBidi uint64
	MaxRemoteUni  uint64

	SendWindow           uint64
	ReceiveWindow        uint64
	StreamReceiveWindow  uint64

	Logger *logrus.Entry
}

// StreamManager is the single core type of this package: the per-
// connection state for every multiplexed stream, subparts B-E of
// spec.md §3 layered over the StreamId algebra in streamid.go.
//
// It is synchronous and single-threaded: no goroutine, channel, or
// blocking call appears anywhere in its methods. Callers own their own
// concurrency; this type is a plain, re-entrant-unsafe state machine,
// matching minq's Connection (driven from one goroutine per
// connection, never internally locked).
type StreamManager struct {
	side Side

	send map[StreamId]*sendStream
	recv map[StreamId]*recvStream

	next      [2]uint64 // locally initiated, next index to allocate
	max       [2]uint64 // max locally-initiated streams the peer permits
	maxRemote [2]uint64 // max remote-initiated streams we permit

	nextRemote         [2]uint64 // lowest remote index not yet opened
	opened             [2]bool
	nextReportedRemote [2]uint64

	sendStreams int

	pending            []StreamId
	events             []StreamEvent
	connectionBlocked  []StreamId

	maxData       uint64
	receiveWindow uint64
	localMaxData  uint64
	sentMaxData   uint64

	dataSent   uint64
	dataRecvd  uint64
	unackedData uint64
	sendWindow  uint64

	streamReceiveWindow uint64

	log *logrus.Entry
}

// NewStreamManager pre-creates the peer-initiated streams the
// configuration already grants the remote side credit to open,
// mirroring Streams::new's pre-allocation loop.
func NewStreamManager(cfg StreamManagerConfig) *StreamManager {
	m := &StreamManager{
		side:                cfg.Side,
		send:                make(map[StreamId]*sendStream),
		recv:                make(map[StreamId]*recvStream),
		maxRemote:           [2]uint64{cfg.MaxRemoteBidi, cfg.MaxRemoteUni},
		receiveWindow:       cfg.ReceiveWindow,
		localMaxData:        cfg.ReceiveWindow,
		sentMaxData:         cfg.ReceiveWindow,
		sendWindow:          cfg.SendWindow,
		streamReceiveWindow: cfg.StreamReceiveWindow,
		log:                 newManagerLogger(cfg.Logger),
	}

	for _, dir := range dirs {
		for i := uint64(0); i < m.maxRemote[dir]; i++ {
			m.insertStream(nil, true, NewStreamId(m.side.other(), dir, i))
		}
	}
	return m
}

// Open allocates a new locally-initiated stream, or reports that the
// peer hasn't granted enough credit yet (spec.md §4.1 open).
func (m *StreamManager) Open(params *TransportParameters, dir Dir) (StreamId, bool) {
	if m.next[dir] >= m.max[dir] {
		return 0, false
	}
	id := NewStreamId(m.side, dir, m.next[dir])
	m.next[dir]++
	m.insertStream(params, false, id)
	m.sendStreams++
	m.logf(logStream, "opened %s", id)
	return id, true
}

// SetParams applies the peer's transport parameters, raising this
// side's send-side limits and the per-stream max_data already handed
// out to pre-allocated peer-initiated bidi streams.
func (m *StreamManager) SetParams(params *TransportParameters) {
	m.max[DirBi] = params.InitialMaxStreamsBidi
	m.max[DirUni] = params.InitialMaxStreamsUni
	m.ReceivedMaxData(params.InitialMaxData)
	for i := uint64(0); i < m.maxRemote[DirBi]; i++ {
		id := NewStreamId(m.side.other(), DirBi, i)
		if s, ok := m.send[id]; ok {
			s.maxData = params.InitialMaxStreamDataBidiLocal
		}
	}
}

// SendStreams reports the number of streams with an open send half,
// distinct from len(send) because it excludes remote-initiated
// streams the peer is merely permitted to open.
func (m *StreamManager) SendStreams() int {
	return m.sendStreams
}

// AllocRemoteStream extends the peer's credit to open one more stream
// of dir, used when the application raises its accept backlog.
func (m *StreamManager) AllocRemoteStream(params *TransportParameters, dir Dir) {
	id := NewStreamId(m.side.other(), dir, m.maxRemote[dir])
	m.maxRemote[dir]++
	m.insertStream(params, true, id)
}

// Accept reports the next remote-initiated stream the application
// hasn't yet been told about, if any.
func (m *StreamManager) Accept(dir Dir) (StreamId, bool) {
	if m.nextRemote[dir] == m.nextReportedRemote[dir] {
		return 0, false
	}
	x := m.nextReportedRemote[dir]
	m.nextReportedRemote[dir] = x + 1
	if dir == DirBi {
		m.sendStreams++
	}
	return NewStreamId(m.side.other(), dir, x), true
}

// ZeroRttRejected tears down every locally-initiated stream's state,
// as if 0-RTT data had never been sent: only streams this side opened
// are affected, and only the index counters for outgoing streams are
// reset.
func (m *StreamManager) ZeroRttRejected() {
	for _, dir := range dirs {
		for i := uint64(0); i < m.next[dir]; i++ {
			delete(m.send, NewStreamId(m.side, dir, i))
			if dir == DirBi {
				delete(m.recv, NewStreamId(m.side, dir, i))
			}
		}
		m.next[dir] = 0
	}
	m.pending = nil
	m.dataSent = 0
	m.connectionBlocked = nil
}

// ReadResult reports bytes read from an ordered Read, and whether a
// MAX_STREAM_DATA / MAX_DATA frame should now be enqueued. A caller
// that ignores these booleans silently drops flow-control credit.
type ReadResult struct {
	Len             int
	TransmitMaxStreamData ShouldTransmit
	TransmitMaxData       ShouldTransmit
}

// Read drains up to len(buf) ordered bytes from id. ok is false once
// the stream is fully drained and closed, at which point the entry is
// removed and no further Read calls on id are valid.
func (m *StreamManager) Read(id StreamId, buf []byte) (res ReadResult, ok bool, err error) {
	rs, present := m.recv[id]
	if !present {
		return ReadResult{}, false, ErrUnknownStream
	}
	n, _, rerr := rs.read(buf)
	if rerr != nil {
		if _, isReset := asReadReset(rerr); isReset {
			delete(m.recv, id)
		}
		return ReadResult{}, false, rerr
	}
	if n == 0 && rs.isClosed() {
		delete(m.recv, id)
		return ReadResult{}, false, nil
	}
	_, transmitMSD := rs.maxStreamData(m.streamReceiveWindow)
	transmitMD := m.addReadCredits(uint64(n))
	return ReadResult{Len: n, TransmitMaxStreamData: ShouldTransmit(transmitMSD), TransmitMaxData: ShouldTransmit(transmitMD)}, true, nil
}

// ReadUnorderedResult is the read_unordered counterpart of ReadResult.
type ReadUnorderedResult struct {
	Offset                uint64
	Data                  []byte
	TransmitMaxStreamData ShouldTransmit
	TransmitMaxData       ShouldTransmit
}

func (m *StreamManager) ReadUnordered(id StreamId) (res ReadUnorderedResult, ok bool, err error) {
	rs, present := m.recv[id]
	if !present {
		return ReadUnorderedResult{}, false, ErrUnknownStream
	}
	offset, data, done, rerr := rs.readUnordered()
	if rerr != nil {
		if _, isReset := asReadReset(rerr); isReset {
			delete(m.recv, id)
		}
		return ReadUnorderedResult{}, false, rerr
	}
	if !done && data == nil && rs.isClosed() {
		delete(m.recv, id)
		return ReadUnorderedResult{}, false, nil
	}
	_, transmitMSD := rs.maxStreamData(m.streamReceiveWindow)
	transmitMD := m.addReadCredits(uint64(len(data)))
	return ReadUnorderedResult{Offset: offset, Data: data, TransmitMaxStreamData: ShouldTransmit(transmitMSD), TransmitMaxData: ShouldTransmit(transmitMD)}, true, nil
}

// Write queues data for id, bounded by both the connection-level
// budget and the stream's own flow control window.
func (m *StreamManager) Write(id StreamId, data []byte) (int, error) {
	limit := min64(m.maxData-m.dataSent, m.sendWindow-m.unackedData)
	stream, present := m.send[id]
	if !present {
		return 0, ErrUnknownStream
	}
	if limit == 0 {
		if !stream.connectionBlocked {
			stream.connectionBlocked = true
			m.connectionBlocked = append(m.connectionBlocked, id)
		}
		return 0, ErrWriteBlocked
	}

	wasPending := stream.isPending()
	n := uint64(len(data))
	if n > limit {
		n = limit
	}
	written, err := stream.write(data[:n])
	if err != nil {
		return 0, err
	}
	m.dataSent += uint64(written)
	m.unackedData += uint64(written)
	if !wasPending {
		m.pending = append(m.pending, id)
	}
	return written, nil
}

// Received processes an incoming STREAM frame, returning whether a
// MAX_DATA frame should now be enqueued.
func (m *StreamManager) Received(f StreamFrame) (ShouldTransmit, error) {
	if err := m.validateReceiveId(f.Id); err != nil {
		return false, err
	}

	rs, present := m.recv[f.Id]
	if !present {
		return false, nil
	}
	if rs.isFinished() {
		return false, nil
	}

	newBytes, err := rs.ingest(f, m.dataRecvd, m.localMaxData, m.streamReceiveWindow)
	if err != nil {
		return false, err
	}
	m.dataRecvd += newBytes

	if !rs.assembler.isStopped() {
		m.onStreamFrame(true, f.Id)
		return false, nil
	}

	if rs.isClosed() {
		delete(m.recv, f.Id)
	}
	return ShouldTransmit(m.addReadCredits(newBytes)), nil
}

// ReceivedReset processes an incoming RESET_STREAM frame.
func (m *StreamManager) ReceivedReset(f ResetStreamFrame) (ShouldTransmit, error) {
	if err := m.validateReceiveId(f.Id); err != nil {
		return false, err
	}

	rs, present := m.recv[f.Id]
	if !present {
		return false, nil
	}
	end := rs.assembler.end()

	if rs.finalSize != nil {
		if *rs.finalSize != f.FinalSize {
			return false, finalSizeError("inconsistent value")
		}
	} else if end > f.FinalSize {
		return false, finalSizeError("lower than high water mark")
	}

	if !rs.reset(f.ErrorCode, f.FinalSize) {
		return false, nil
	}
	bytesRead := rs.assembler.bytesRead()
	stopped := rs.assembler.isStopped()
	if stopped {
		delete(m.recv, f.Id)
	}
	m.onStreamFrame(!stopped, f.Id)

	if bytesRead != f.FinalSize {
		m.dataRecvd += f.FinalSize - end
		return ShouldTransmit(m.addReadCredits(f.FinalSize - bytesRead)), nil
	}
	return false, nil
}

// ReceivedStopSending processes an incoming STOP_SENDING frame.
func (m *StreamManager) ReceivedStopSending(id StreamId, code ErrorCode) {
	stream, present := m.send[id]
	if !present {
		return
	}
	m.events = append(m.events, stoppedEvent(id, code))
	stream.stop(code)
	m.onStreamFrame(false, id)
}

// Finish marks id as finished, generating an empty FIN frame if
// necessary.
func (m *StreamManager) Finish(id StreamId) error {
	stream, present := m.send[id]
	if !present {
		return ErrUnknownStream
	}
	wasPending := stream.isPending()
	if err := stream.finish(); err != nil {
		return err
	}
	if !wasPending {
		m.pending = append(m.pending, id)
	}
	return nil
}

// Reset abandons pending and future writes on id without itself
// transmitting a RESET_STREAM frame; the caller is responsible for
// scheduling the frame.
func (m *StreamManager) Reset(id StreamId) error {
	stream, present := m.send[id]
	if !present {
		return ErrUnknownStream
	}
	if stream.state == SendStateResetSent {
		return ErrUnknownStream
	}
	m.unackedData -= stream.pending.unacked()
	stream.reset()
	m.streamLogger(id, logStream).Debug("send side reset")
	return nil
}

// ResetAcked forgets a stream once its RESET_STREAM frame is
// acknowledged.
func (m *StreamManager) ResetAcked(id StreamId) {
	stream, present := m.send[id]
	if !present {
		return
	}
	if stream.state == SendStateResetSent {
		m.sendStreams--
		delete(m.send, id)
	}
}

// StopResult mirrors quinn-proto's StopResult: both fields indicate
// whether a frame needs enqueuing as a result of the call.
type StopResult struct {
	StopSending ShouldTransmit
	MaxData     ShouldTransmit
}

// Stop ceases accepting data on id from the application side.
func (m *StreamManager) Stop(id StreamId) (StopResult, error) {
	stream, present := m.recv[id]
	if !present {
		return StopResult{}, ErrUnknownStream
	}
	if stream.assembler.isStopped() {
		return StopResult{}, ErrUnknownStream
	}
	stream.stop()
	stopSending := !stream.isFinished()

	readCredits := stream.assembler.end() - stream.assembler.bytesRead()
	maxData := m.addReadCredits(readCredits)
	return StopResult{StopSending: ShouldTransmit(stopSending), MaxData: ShouldTransmit(maxData)}, nil
}

// StopReason reports the error code the peer sent a STOP_SENDING
// with, if any.
func (m *StreamManager) StopReason(id StreamId) (*ErrorCode, error) {
	stream, present := m.send[id]
	if !present {
		return nil, ErrUnknownStream
	}
	return stream.stopReason, nil
}

// CanSend reports whether any stream has data or a FIN queued for
// transmission in a STREAM frame. Control frames are not tracked here.
func (m *StreamManager) CanSend() bool {
	return len(m.pending) > 0
}

// WriteStreamFrames drains the pending queue into STREAM frames until
// maxBufSize is reached, returning metadata for each frame so the
// caller's loss-detection collaborator can later call ReceivedAckOf or
// Retransmit.
func (m *StreamManager) WriteStreamFrames(buf []byte, maxBufSize int) ([]byte, []StreamMeta) {
	var metas []StreamMeta
	for len(buf)+streamFrameSizeBound < maxBufSize {
		maxDataLen := maxBufSize - len(buf) - streamFrameSizeBound
		if maxDataLen <= 0 {
			break
		}
		if len(m.pending) == 0 {
			break
		}
		id := m.pending[0]
		m.pending = m.pending[1:]

		stream, present := m.send[id]
		if !present {
			continue
		}
		if stream.isReset() {
			continue
		}
		offsets := stream.pending.pollTransmit(uint64(maxDataLen))
		fin := offsets.End == stream.pending.offset() && stream.state == SendStateDataSent
		if fin {
			stream.finPending = false
		}
		if stream.isPending() {
			m.pending = append(m.pending, id)
		}

		meta := StreamMeta{Id: id, Offsets: offsets, Fin: fin}
		frame := StreamFrame{Id: id, Offset: offsets.Start, Fin: fin, Data: stream.pending.get(offsets)}
		buf = frame.encode(buf)
		metas = append(metas, meta)
		m.logf(logScheduler, "scheduled stream %s offsets %d..%d fin=%v", id, offsets.Start, offsets.End, fin)
	}
	return buf, metas
}

// WriteControlFrames encodes control frames (RESET_STREAM,
// STOP_SENDING, MAX_DATA, MAX_STREAM_DATA, MAX_STREAMS) into buf in
// that order, mirroring write_control_frames's budget-checked loop
// shape: once the next frame of a kind would not fit in maxSize, the
// rest of that kind is skipped and the following kinds are still
// tried. pendingReset, pendingStop and pendingMaxStreamData name the
// streams a frame is wanted for; wantMaxData and wantMaxStreams are
// caller-owned flags, the same way quinn-proto's Retransmits tracks
// max_data/max_uni_stream_id/max_bi_stream_id: a caller that never
// sets wantMaxStreams[dir] sees no MAX_STREAMS_{BIDI,UNI} frame at
// all. All of these inputs are read only: the flags are not cleared,
// and the call does not report which IDs were written or keep a set
// of sent frames.
func (m *StreamManager) WriteControlFrames(buf []byte, pendingReset []StreamId, pendingStop []StreamId, pendingMaxStreamData []StreamId, wantMaxData bool, wantMaxStreams [2]bool, maxSize int) []byte {
	for _, id := range pendingReset {
		if len(buf)+resetStreamFrameSizeBound >= maxSize {
			break
		}
		stream, present := m.send[id]
		if !present {
			continue
		}
		code := ErrorCode(0)
		if stream.stopReason != nil {
			code = *stream.stopReason
		}
		buf = ResetStreamFrame{Id: id, ErrorCode: code, FinalSize: stream.offset()}.encode(buf)
	}

	for _, id := range pendingStop {
		if len(buf)+stopSendingFrameSizeBound >= maxSize {
			break
		}
		stream, present := m.recv[id]
		if !present || stream.isFinished() {
			continue
		}
		buf = StopSendingFrame{Id: id}.encode(buf)
	}

	if wantMaxData && len(buf)+maxDataFrameSizeBound < maxSize {
		m.recordSentMaxData(m.localMaxData)
		buf = MaxDataFrame{Limit: m.localMaxData}.encode(buf)
	}

	for _, id := range pendingMaxStreamData {
		if len(buf)+maxStreamDataFrameSizeBound >= maxSize {
			break
		}
		rs, present := m.recv[id]
		if !present || rs.isFinished() {
			continue
		}
		max, _ := rs.maxStreamData(m.streamReceiveWindow)
		rs.recordSentMaxStreamData(max)
		buf = MaxStreamDataFrame{Id: id, Limit: max}.encode(buf)
	}

	for _, dir := range dirs {
		if !wantMaxStreams[dir] {
			continue
		}
		if len(buf)+maxStreamsFrameSizeBound >= maxSize {
			break
		}
		buf = MaxStreamsFrame{Dir: dir, Count: m.maxRemote[dir]}.encode(buf)
	}

	return buf
}

// onStreamFrame notifies the application that a new stream was opened
// or an existing one became readable.
func (m *StreamManager) onStreamFrame(notifyReadable bool, id StreamId) {
	if id.Initiator(m.side) {
		if notifyReadable {
			m.events = append(m.events, readableEvent(id))
		}
		return
	}
	next := &m.nextRemote[id.Dir()]
	if id.Index() >= *next {
		*next = id.Index() + 1
		m.opened[id.Dir()] = true
	} else if notifyReadable {
		m.events = append(m.events, readableEvent(id))
	}
}

// ReceivedAckOf applies an acknowledged STREAM frame, removing the
// stream and emitting a Finished event once every byte (including
// FIN) has been acked.
func (m *StreamManager) ReceivedAckOf(meta StreamMeta) {
	stream, present := m.send[meta.Id]
	if !present {
		return
	}
	if stream.isReset() {
		return
	}
	m.unackedData -= meta.Offsets.len()
	if stream.ack(meta) {
		m.sendStreams--
		delete(m.send, meta.Id)
		m.events = append(m.events, finishedEvent(meta.Id))
	}
}

// Retransmit re-queues a lost STREAM frame's range for resend.
func (m *StreamManager) Retransmit(meta StreamMeta) {
	stream, present := m.send[meta.Id]
	if !present {
		return
	}
	if !stream.isPending() {
		m.pending = append(m.pending, meta.Id)
	}
	stream.finPending = stream.finPending || meta.Fin
	stream.pending.retransmitRange(meta.Offsets)
}

// RetransmitAllForZeroRtt re-queues, on every locally-initiated
// stream, everything already handed out for transmission, so that data
// first sent in 0-RTT packets goes out again. Streams whose data is
// fully acknowledged and that have no pending FIN are skipped. After
// ZeroRttRejected there are no such streams left, so it does nothing.
func (m *StreamManager) RetransmitAllForZeroRtt() {
	for _, dir := range dirs {
		for index := uint64(0); index < m.next[dir]; index++ {
			id := NewStreamId(m.side, dir, index)
			stream, present := m.send[id]
			if !present {
				continue
			}
			if stream.pending.isFullyAcked() && !stream.finPending {
				continue
			}
			if !stream.isPending() {
				m.pending = append(m.pending, id)
			}
			stream.pending.retransmitAllForZeroRTT()
		}
	}
}

// ReceivedMaxStreams processes an incoming MAX_STREAMS frame.
func (m *StreamManager) ReceivedMaxStreams(dir Dir, count uint64) error {
	if count > 1<<60 {
		return frameEncodingError("unrepresentable stream limit")
	}
	if count > m.max[dir] {
		m.max[dir] = count
		m.events = append(m.events, availableEvent(dir))
	}
	return nil
}

// ReceivedMaxData processes an incoming MAX_DATA frame.
func (m *StreamManager) ReceivedMaxData(n uint64) {
	if n > m.maxData {
		m.logf(logFlowControl, "peer raised connection max data to %d", n)
		m.maxData = n
	}
}

// ReceivedMaxStreamData processes an incoming MAX_STREAM_DATA frame.
func (m *StreamManager) ReceivedMaxStreamData(id StreamId, offset uint64) error {
	if !id.Initiator(m.side) && id.Dir() == DirUni {
		return streamStateError("MAX_STREAM_DATA on recv-only stream")
	}

	if ss, present := m.send[id]; present {
		if ss.increaseMaxData(offset) {
			m.events = append(m.events, writableEvent(id))
		}
	} else if id.Initiator(m.side) && m.isLocalUnopened(id) {
		return streamStateError("MAX_STREAM_DATA on unopened stream")
	}

	m.onStreamFrame(false, id)
	return nil
}

// Poll yields the next queued stream event, if any.
func (m *StreamManager) Poll() (StreamEvent, bool) {
	for _, dir := range dirs {
		if m.opened[dir] {
			m.opened[dir] = false
			return openedEvent(dir), true
		}
	}
	if id, ok := m.pollUnblocked(); ok {
		return writableEvent(id), true
	}
	if len(m.events) == 0 {
		return StreamEvent{}, false
	}
	ev := m.events[0]
	m.events = m.events[1:]
	return ev, true
}

// pollUnblocked finds a stream previously blocked on connection-level
// flow control or send window limits that no longer apply.
func (m *StreamManager) pollUnblocked() (StreamId, bool) {
	if m.flowBlocked() {
		return 0, false
	}
	for len(m.connectionBlocked) > 0 {
		id := m.connectionBlocked[len(m.connectionBlocked)-1]
		m.connectionBlocked = m.connectionBlocked[:len(m.connectionBlocked)-1]
		stream, present := m.send[id]
		if !present {
			continue
		}
		stream.connectionBlocked = false
		if stream.isWritable() {
			return id, true
		}
	}
	return 0, false
}

// validateReceiveId checks the peer's use of id as a send stream
// against this side's stream limits.
func (m *StreamManager) validateReceiveId(id StreamId) error {
	if m.side == id.Side() {
		switch id.Dir() {
		case DirUni:
			return streamStateError("illegal operation on send-only stream")
		case DirBi:
			if id.Index() >= m.next[DirBi] {
				return streamStateError("operation on unopened stream")
			}
		}
		return nil
	}
	if id.Index() >= m.maxRemote[id.Dir()] {
		return streamLimitError("")
	}
	return nil
}

// isLocalUnopened reports whether a locally-initiated stream id has
// never been opened.
func (m *StreamManager) isLocalUnopened(id StreamId) bool {
	return id.Index() >= m.next[id.Dir()]
}

// insertStream creates the send and/or recv halves appropriate for
// id's directionality and initiator, applying params' per-stream
// max_data when available. The local/remote reversal mirrors
// quinn-proto: transport parameters are named from the peer's
// perspective, so a remote-initiated bidi stream's send budget comes
// from InitialMaxStreamDataBidiLocal (the peer's limit for streams it
// opened), while a
// locally-initiated one's comes from InitialMaxStreamDataBidiRemote.
func (m *StreamManager) insertStream(params *TransportParameters, remote bool, id StreamId) {
	bi := id.Dir() == DirBi
	if bi || !remote {
		var maxData uint64
		if params != nil {
			switch {
			case id.Dir() == DirUni:
				maxData = params.InitialMaxStreamDataUni
			case remote:
				maxData = params.InitialMaxStreamDataBidiLocal
			default:
				maxData = params.InitialMaxStreamDataBidiRemote
			}
		}
		m.send[id] = newSendStream(maxData)
	}
	if bi || remote {
		m.recv[id] = newRecvStream()
	}
}

// flowBlocked reports whether application writes are blocked on
// connection-level flow control or the send window.
func (m *StreamManager) flowBlocked() bool {
	return m.dataSent >= m.maxData || m.unackedData >= m.sendWindow
}

// addReadCredits grows the connection-level receive window and
// reports whether the increase is significant enough to be worth a
// MAX_DATA frame right away.
func (m *StreamManager) addReadCredits(credits uint64) bool {
	m.localMaxData += credits
	if m.localMaxData > MaxStreamOffset {
		return false
	}
	diff := m.localMaxData - m.sentMaxData
	return diff >= m.receiveWindow/8
}

func (m *StreamManager) recordSentMaxData(sent uint64) {
	if sent > m.sentMaxData {
		m.sentMaxData = sent
	}
}

func asReadReset(err error) (ErrorCode, bool) {
	re, ok := err.(*ReadError)
	if ok && re.kind == readErrReset {
		return re.Code, true
	}
	return 0, false
}
