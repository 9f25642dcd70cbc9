package buffer

import (
	"github.com/arraydb/bufferpool/internal/storage/page"
	util "github.com/arraydb/bufferpool/internal/utils"
)

// PageGuard is the handle returned by FetchPage and NewPage: a scoped pin
// over a resident frame. Callers read and mutate the page through it, then
// release it via Pool.UnpinPage(guard.PageID(), dirty) — the guard itself
// carries no Unpin method so that marking dirty and releasing the pin stay
// deliberate, separate steps (spec §9).
//
// A guard must not be used after the pin it represents has been released.
type PageGuard struct {
	frame *page.Frame
}

// PageID returns the id of the page this guard pins.
func (g PageGuard) PageID() util.PageID {
	return g.frame.PageID
}

// Data exposes the frame's fixed-size byte buffer for reading or writing.
func (g PageGuard) Data() []byte {
	return g.frame.Data[:]
}

// PinCount reports the frame's current outstanding pin count, for
// diagnostics.
func (g PageGuard) PinCount() int32 {
	return g.frame.PinCount
}

// IsDirty reports whether the frame is currently marked dirty.
func (g PageGuard) IsDirty() bool {
	return g.frame.IsDirty
}

// MarkDirty records that the caller has modified Data since the last
// write-back. It does not itself write to disk (spec §4.3 note).
func (g PageGuard) MarkDirty() {
	g.frame.IsDirty = true
}
