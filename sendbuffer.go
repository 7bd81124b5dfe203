package quicstream

import "sort"

// byteRange is a half-open [Start, End) span of stream offsets.
type byteRange struct {
	Start, End uint64
}

func (r byteRange) len() uint64 { return r.End - r.Start }

// sendBuffer is the send-side byte-buffer collaborator described in
// spec.md §4.4. It tracks everything ever written to a stream, which
// of it has been handed out for transmission, and which of that has
// been acknowledged, plus a FIFO retransmit queue for ranges lost in
// flight. Mirrors the bookkeeping minq's sendStreamBase.chunks does,
// generalized to support partial acknowledgement and retransmission.
type sendBuffer struct {
	data []byte // everything ever written, data[i] is offset i

	unsentFrom uint64 // data[unsentFrom:] has never been handed to poll_transmit
	acked      []byteRange // merged, sorted, disjoint acknowledged ranges
	ackedBytes uint64

	retransmit []byteRange // FIFO of previously-sent ranges to resend
}

// write appends newly-written application bytes.
func (b *sendBuffer) write(data []byte) {
	b.data = append(b.data, data...)
}

// offset is the total number of bytes ever written: the stream's
// current (possibly non-final) size.
func (b *sendBuffer) offset() uint64 {
	return uint64(len(b.data))
}

func (b *sendBuffer) hasUnsentData() bool {
	return b.unsentFrom < b.offset()
}

func (b *sendBuffer) isFullyAcked() bool {
	return b.ackedBytes == b.offset()
}

// unacked is the number of bytes handed to poll_transmit (at least
// once) that have not yet been acknowledged.
func (b *sendBuffer) unacked() uint64 {
	return b.unsentFrom - b.ackedWithin(0, b.unsentFrom)
}

func (b *sendBuffer) ackedWithin(start, end uint64) uint64 {
	var n uint64
	for _, r := range b.acked {
		lo, hi := max64(r.Start, start), min64(r.End, end)
		if hi > lo {
			n += hi - lo
		}
	}
	return n
}

// pollTransmit returns the next range to transmit: the retransmit
// queue is drained first (FIFO), then fresh unsent data, each clipped
// to at most maxLen bytes.
func (b *sendBuffer) pollTransmit(maxLen uint64) byteRange {
	if maxLen == 0 {
		return byteRange{}
	}
	if len(b.retransmit) > 0 {
		r := b.retransmit[0]
		if r.len() <= maxLen {
			b.retransmit = b.retransmit[1:]
			return r
		}
		b.retransmit[0].Start += maxLen
		return byteRange{r.Start, r.Start + maxLen}
	}
	start := b.unsentFrom
	end := b.offset()
	if end-start > maxLen {
		end = start + maxLen
	}
	b.unsentFrom = end
	return byteRange{start, end}
}

// get returns the byte view for a previously-returned range.
func (b *sendBuffer) get(r byteRange) []byte {
	return b.data[r.Start:r.End]
}

// ack marks a range as acknowledged, merging it into the disjoint set
// of acked ranges.
func (b *sendBuffer) ack(r byteRange) {
	if r.len() == 0 {
		return
	}
	b.acked = append(b.acked, r)
	sort.Slice(b.acked, func(i, j int) bool { return b.acked[i].Start < b.acked[j].Start })
	merged := b.acked[:0]
	b.ackedBytes = 0
	for _, cur := range b.acked {
		if len(merged) > 0 && cur.Start <= merged[len(merged)-1].End {
			last := &merged[len(merged)-1]
			if cur.End > last.End {
				last.End = cur.End
			}
		} else {
			merged = append(merged, cur)
		}
	}
	b.acked = merged
	for _, r := range b.acked {
		b.ackedBytes += r.len()
	}
}

// retransmitRange re-queues a range for retransmission, e.g. after
// loss detection declares it lost.
func (b *sendBuffer) retransmitRange(r byteRange) {
	b.retransmit = append(b.retransmit, r)
}

// retransmitAllForZeroRTT re-queues everything ever handed to
// pollTransmit, so that data first sent in 0-RTT packets is sent again.
func (b *sendBuffer) retransmitAllForZeroRTT() {
	if b.unsentFrom > 0 {
		b.retransmit = append(b.retransmit, byteRange{0, b.unsentFrom})
	}
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
