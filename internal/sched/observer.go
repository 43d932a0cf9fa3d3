package sched

import "time"

// FrameReport is handed to observers after every finished frame.
type FrameReport struct {
	Frame  uint64
	Budget time.Duration
	Depths [NumCategories]int // queue depths after draining, i.e. deferred per category
	Stats  Snapshot
}

// FrameObserver receives per-frame scheduler telemetry. Implementations must
// not block; the driver delivers reports on the frame thread.
type FrameObserver interface {
	OnFrameEnd(report FrameReport)
}
