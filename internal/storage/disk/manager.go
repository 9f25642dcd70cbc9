// Package disk implements the external collaborator the buffer pool reads
// pages from and writes pages back to. The buffer pool only ever depends on
// the DiskManager interface; FileDiskManager and MemDiskManager are two
// interchangeable implementations of it.
package disk

import (
	util "github.com/arraydb/bufferpool/internal/utils"
)

// DiskManager is the buffer pool's sole view of persistent storage: raw
// page read/write and page-id allocation. Crash recovery, WAL, and
// checksumming are out of scope (spec §1) and live above this interface,
// if anywhere.
type DiskManager interface {
	// ReadPage fills out with the PageSize bytes stored for id. An id that
	// was allocated but never written reads back as all zero bytes, not
	// an error — FileDiskManager gets this for free past end-of-file;
	// MemDiskManager gets it by having AllocatePage eagerly store a
	// zeroed slice. MemDiskManager returns ErrPageNotFound for an id it
	// holds no bytes for; FileDiskManager zero-fills any id past
	// end-of-file, whether or not it was ever allocated.
	ReadPage(id util.PageID, out []byte) error
	// WritePage persists data (exactly PageSize bytes) under id.
	WritePage(id util.PageID, data []byte) error
	// AllocatePage reserves and returns a fresh page id.
	AllocatePage() (util.PageID, error)
	// DeallocatePage releases id for reuse. Idempotent.
	DeallocatePage(id util.PageID) error
	// Close releases any underlying resources. Idempotent.
	Close() error
}
