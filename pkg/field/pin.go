package field

import "sync/atomic"

// PinID identifies one placed conductor.
type PinID uint32

// PinAllocator hands out pin ids in strictly increasing order starting at 0.
// Pins are never released or reused.
//
// The counter is atomic so a single allocator can be shared between
// goroutines, but callers that need ids to follow placement order must still
// allocate sequentially.
type PinAllocator struct {
	next atomic.Uint32
}

// NewPinAllocator creates an allocator whose first id is 0.
func NewPinAllocator() *PinAllocator {
	return &PinAllocator{}
}

// Allocate returns a fresh pin id.
func (a *PinAllocator) Allocate() PinID {
	return PinID(a.next.Add(1) - 1)
}

// Allocated returns how many ids have been handed out so far.
func (a *PinAllocator) Allocated() int {
	return int(a.next.Load())
}
