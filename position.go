package ringbuffer

import "math"

// position is the packed (sequence, index) pair carried by the head and
// tail cursors. It is encoded as a single uint64 so a cursor can be moved
// with one atomic compare-and-swap: the low 32 bits hold the sequence
// (lap plus the closed flag in its top bit), the high 32 bits hold the
// slot index.
type position struct {
	lap    uint32
	index  uint32
	closed bool
}

const closedBit uint32 = 1 << 31
const lapMask uint32 = closedBit - 1

// tailStart is the tail's initial position: lap 0, index 0, open.
func tailStart() position { return position{lap: 0, index: 0} }

// headStart is the head's initial position: lap 1, index 0, open. The
// one-lap offset from tailStart is what lets length() distinguish empty
// from full when both cursors land on the same index.
func headStart() position { return position{lap: 1, index: 0} }

func encodeSeq(lap uint32, closed bool) uint32 {
	seq := lap & lapMask
	if closed {
		seq |= closedBit
	}
	return seq
}

func decodeSeq(seq uint32) (lap uint32, closed bool) {
	return seq & lapMask, seq&closedBit != 0
}

// encode packs p into the single atomic word stored in a cursor.
func encode(p position) uint64 {
	seq := encodeSeq(p.lap, p.closed)
	return uint64(seq) | uint64(p.index)<<32
}

// decode is the total inverse of encode: encode/decode round-trips every
// (lap, index, closed) triple representable in the packed word.
func decode(w uint64) position {
	seq := uint32(w)
	index := uint32(w >> 32)
	lap, closed := decodeSeq(seq)
	return position{lap: lap, index: index, closed: closed}
}

// advanceIndex moves p to the next index within the same lap. It is only
// ever called on the index+1 < capacity branch of acquire-slot, so
// index == math.MaxUint32 can only reach here if that invariant has
// already been violated elsewhere; asserted rather than allowed to wrap
// silently into index 0 of the wrong lap.
func advanceIndex(p position) position {
	if p.index == math.MaxUint32 {
		panic("ringbuffer: advanceIndex called at index == MaxUint32, capacity invariant violated")
	}
	return position{lap: p.lap, index: p.index + 1, closed: p.closed}
}

// advanceLap resets the index to 0 and moves the lap forward by two,
// wrapping modulo 2^31, while preserving the closed flag. The +2 step (not
// +1) keeps producer laps even and consumer laps odd forever, which is the
// parity invariant the slot array's target-lap protocol depends on.
func advanceLap(p position) position {
	return position{lap: wrapAddLap(p.lap, 2), index: 0, closed: p.closed}
}

// close sets the closed flag on p, preserving lap and index.
func closePosition(p position) position {
	return position{lap: p.lap, index: p.index, closed: true}
}

// wrapAddLap returns (lap+n) mod 2^31.
func wrapAddLap(lap uint32, n uint32) uint32 {
	return (lap + n) & lapMask
}
