package page

import (
	util "github.com/arraydb/bufferpool/internal/utils"
)

// Frame is a page descriptor: a slot in the buffer pool's frame array.
// It carries the resident page's identity and metadata alongside the raw
// bytes; the pool owns a contiguous []Frame for the life of the process.
type Frame struct {
	PageID   util.PageID
	PinCount int32
	IsDirty  bool
	Data     [util.PageSize]byte
}

// Reset returns the frame to its empty state. Callers must have already
// written back any dirty bytes (I6) before calling Reset.
func (f *Frame) Reset() {
	f.PageID = util.InvalidPageID
	f.PinCount = 0
	f.IsDirty = false
	f.Data = [util.PageSize]byte{}
}

// Bind assigns a page id to the frame and zeroes its bytes, as happens on
// both a Fetch miss (before the disk read fills Data) and NewPage.
func (f *Frame) Bind(id util.PageID) {
	f.PageID = id
	f.Data = [util.PageSize]byte{}
}
