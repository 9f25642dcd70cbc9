package util

// PageID identifies a page on disk. Assigned by the disk manager.
type PageID int64

// InvalidPageID is the sentinel marking an empty/unassigned frame.
const InvalidPageID PageID = -1

// FrameID names a slot in the buffer pool's frame array, in [0, pool_size).
type FrameID int

// InvalidFrameID marks the absence of a frame.
const InvalidFrameID FrameID = -1

// PageSize is the fixed size, in bytes, of every page and frame buffer. A
// build-time constant shared between the buffer pool and the disk manager.
const PageSize = 4096
