package quicstream

import "sort"

// chunk is one contiguous run of received bytes, keyed by its
// starting stream offset. Mirrors minq's streamChunk
// (stream.go: offset, last, data) but without the "last" flag, which
// this package tracks separately as the recv stream's final size.
type chunk struct {
	offset uint64
	data   []byte
}

func (c chunk) end() uint64 {
	return c.offset + uint64(len(c.data))
}

// assembler is the reassembly-buffer collaborator described in
// spec.md §4.3. It accepts out-of-order, overlapping, and duplicate
// STREAM frame payloads and exposes both a strictly ordered Read and
// an unordered drain. It never blocks and never allocates beyond what
// insert is given.
type assembler struct {
	chunks   []chunk // sorted by offset, mutually non-overlapping
	readPos  uint64  // contiguous bytes delivered via ordered Read
	delivered uint64 // total bytes delivered via Read + ReadUnordered
	high     uint64  // one past the highest byte offset ever observed
	stopped  bool
	unordered bool // an unordered read has occurred; poisons ordered Read
}

// insert adds a received byte range, deduplicating and merging
// against what's already buffered. Bytes already delivered (offset+len
// <= readPos) are dropped; overlapping bytes already buffered are
// trimmed from the incoming range before it's stored.
func (a *assembler) insert(offset uint64, data []byte) {
	if a.stopped {
		return
	}
	end := offset + uint64(len(data))
	if end > a.high {
		a.high = end
	}
	if end <= a.readPos {
		return
	}
	if offset < a.readPos {
		trim := a.readPos - offset
		data = data[trim:]
		offset = a.readPos
	}
	if len(data) == 0 {
		return
	}

	i := sort.Search(len(a.chunks), func(i int) bool { return a.chunks[i].offset >= offset })
	// Merge against the chunk immediately before the insertion point,
	// if it overlaps.
	if i > 0 {
		prev := a.chunks[i-1]
		if prev.end() >= offset {
			if prev.end() >= end {
				return // fully covered already
			}
			overlap := prev.end() - offset
			data = data[overlap:]
			offset += overlap
		}
	}
	c := chunk{offset: offset, data: dup(data)}

	// Drop/trim any following chunks this insert now covers.
	j := i
	for j < len(a.chunks) && a.chunks[j].offset <= c.end() {
		if a.chunks[j].end() > c.end() {
			// Extend c with the tail of the overlapping chunk.
			overlap := c.end() - a.chunks[j].offset
			c.data = append(c.data, a.chunks[j].data[overlap:]...)
		}
		j++
	}

	tail := append([]chunk{}, a.chunks[j:]...)
	a.chunks = append(append(a.chunks[:i:i], c), tail...)
}

func dup(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// read copies ordered, contiguous bytes into buf. It returns
// ErrIllegalOrderedRead if ReadUnordered was ever called on this
// assembler. A return of (0, nil) means no contiguous data is
// currently available (the caller decides what that means — blocked,
// or stream finished).
func (a *assembler) read(buf []byte) (int, error) {
	if a.unordered {
		return 0, ErrIllegalOrderedRead
	}
	var total int
	for len(buf) > 0 && len(a.chunks) > 0 && a.chunks[0].offset <= a.readPos {
		c := a.chunks[0]
		skip := a.readPos - c.offset
		n := copy(buf, c.data[skip:])
		a.readPos += uint64(n)
		a.delivered += uint64(n)
		total += n
		buf = buf[n:]
		if skip+uint64(n) >= uint64(len(c.data)) {
			a.chunks = a.chunks[1:]
		} else {
			a.chunks[0].data = c.data[skip+uint64(n):]
			a.chunks[0].offset = a.readPos
		}
	}
	return total, nil
}

// readUnordered pops one available fragment regardless of ordering
// and permanently poisons subsequent ordered reads, per spec.md §4.3.
func (a *assembler) readUnordered() (offset uint64, data []byte, ok bool) {
	if len(a.chunks) == 0 {
		return 0, nil, false
	}
	a.unordered = true
	c := a.chunks[0]
	a.chunks = a.chunks[1:]
	a.delivered += uint64(len(c.data))
	return c.offset, c.data, true
}

// end is the highest byte offset ever observed, plus one.
func (a *assembler) end() uint64 {
	return a.high
}

// bytesRead is the number of bytes handed to the application so far,
// via either Read or ReadUnordered.
func (a *assembler) bytesRead() uint64 {
	return a.delivered
}

// isFullyRead reports whether every byte up to end() has been
// delivered to the application (via either Read or ReadUnordered,
// matching bytesRead()) and no out-of-order fragments remain buffered.
func (a *assembler) isFullyRead() bool {
	return a.delivered == a.high && len(a.chunks) == 0
}

func (a *assembler) isStopped() bool {
	return a.stopped
}

// stop latches the stopped flag and drops buffered data; once
// stopped, insert is a no-op and ordered/unordered reads are rejected
// by the recv stream layer above.
func (a *assembler) stop() {
	a.stopped = true
	a.chunks = nil
}

// clear drops buffered data without latching stopped; used when a
// stream is reset so future reads fail immediately without
// re-delivering stale data.
func (a *assembler) clear() {
	a.chunks = nil
}
