package buffer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/arraydb/bufferpool/internal/storage/disk"
	"github.com/arraydb/bufferpool/internal/storage/page"
	util "github.com/arraydb/bufferpool/internal/utils"
)

// Exhaustion signal (spec §7). Misuse is reported through bool returns,
// and IOFailure is surfaced as a wrapped error from the underlying
// DiskManager instead of a sentinel.
var (
	// ErrPoolExhausted means no free frame and no evictable victim exist.
	ErrPoolExhausted = errors.New("buffer pool exhausted: no free or evictable frame")
)

// Pool is the buffer pool manager: a fixed-capacity cache of pool_size
// frames, backed by a free list, a page table, and an LRU replacer,
// orchestrating Fetch/New/Unpin/Flush/Delete against a DiskManager.
// Every operation below is serialized by mu, held across the disk call
// (spec §5) — the baseline design; finer-grained latching is explicitly
// left as an optimization in spec §9.
type Pool struct {
	mu sync.Mutex

	frames    []page.Frame
	pageTable map[util.PageID]util.FrameID
	freeList  []util.FrameID

	replacer Replacer
	disk     disk.DiskManager
	log      LogManager
	logger   *log.Logger
}

// NewPool constructs a pool with poolSize frames, backed by disk and log.
// log may be NopLogManager{} if write-ahead logging is not yet wired.
// Panics if poolSize is not positive, matching the teacher's convention
// for a construction-time precondition violation.
func NewPool(poolSize int, diskManager disk.DiskManager, logManager LogManager) *Pool {
	if poolSize <= 0 {
		panic(util.ErrInvalidPoolSize)
	}

	freeList := make([]util.FrameID, poolSize)
	for i := range freeList {
		freeList[i] = util.FrameID(i)
	}

	p := &Pool{
		frames:    make([]page.Frame, poolSize),
		pageTable: make(map[util.PageID]util.FrameID, poolSize),
		freeList:  freeList,
		replacer:  NewLRUReplacer(),
		disk:      diskManager,
		log:       logManager,
		logger:    log.Default(),
	}
	for i := range p.frames {
		p.frames[i].Reset()
	}
	return p
}

// PoolSize returns the fixed frame-array capacity.
func (p *Pool) PoolSize() int {
	return len(p.frames)
}

// FreeFrameCount reports how many frames have never held, or no longer
// hold, a page — a diagnostic accessor over invariant I4.
func (p *Pool) FreeFrameCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.freeList)
}

// ReplacerSize reports the number of resident, unpinned, evictable frames.
func (p *Pool) ReplacerSize() int {
	return p.replacer.Size()
}

// FetchPage returns a pinned handle to page_id, reading it from disk on a
// miss. A nil, nil return means the pool is exhausted (no free frame and
// no evictable victim) — not an error (spec §4.3, §7).
func (p *Pool) FetchPage(pageID util.PageID) (*PageGuard, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if frameID, ok := p.pageTable[pageID]; ok {
		f := &p.frames[frameID]
		f.PinCount++
		p.replacer.Pin(frameID)
		return &PageGuard{frame: f}, nil
	}

	frameID, err := p.selectFrame()
	if errors.Is(err, ErrPoolExhausted) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f := &p.frames[frameID]
	if err := p.writeBackIfDirty(f); err != nil {
		p.replacer.Unpin(frameID)
		return nil, err
	}
	p.evictPageTableEntry(f)

	f.Bind(pageID)
	if err := p.disk.ReadPage(pageID, f.Data[:]); err != nil {
		f.Reset()
		p.freeList = append(p.freeList, frameID)
		p.logger.Printf("buffer: fetch page %d failed: %v", pageID, err)
		return nil, fmt.Errorf("fetch page %d: %w", pageID, err)
	}

	f.PinCount = 1
	f.IsDirty = false
	p.pageTable[pageID] = frameID
	return &PageGuard{frame: f}, nil
}

// NewPage allocates a fresh page id via the disk manager and returns a
// pinned handle to it, evicting a victim frame if necessary. A nil guard
// with InvalidPageID and a nil error means the pool is exhausted.
func (p *Pool) NewPage() (*PageGuard, util.PageID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameID, err := p.selectFrame()
	if errors.Is(err, ErrPoolExhausted) {
		return nil, util.InvalidPageID, nil
	}
	if err != nil {
		return nil, util.InvalidPageID, err
	}

	f := &p.frames[frameID]
	if err := p.writeBackIfDirty(f); err != nil {
		p.replacer.Unpin(frameID)
		return nil, util.InvalidPageID, err
	}
	p.evictPageTableEntry(f)

	pageID, err := p.disk.AllocatePage()
	if err != nil {
		f.Reset()
		p.freeList = append(p.freeList, frameID)
		return nil, util.InvalidPageID, fmt.Errorf("allocate page: %w", err)
	}

	f.Bind(pageID)
	f.PinCount = 1
	f.IsDirty = true
	p.pageTable[pageID] = frameID
	return &PageGuard{frame: f}, pageID, nil
}

// UnpinPage releases one pin on pageID, recording isDirty. It returns
// false if pageID is not resident or is already fully unpinned
// (MisuseUnderflow); it never writes to disk (spec §4.3 note).
func (p *Pool) UnpinPage(pageID util.PageID, isDirty bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameID, ok := p.pageTable[pageID]
	if !ok {
		return false
	}
	f := &p.frames[frameID]
	if f.PinCount == 0 {
		return false
	}

	if isDirty {
		f.IsDirty = true
	}
	f.PinCount--
	if f.PinCount == 0 {
		p.replacer.Unpin(frameID)
	}
	return true
}

// FlushPage writes pageID's bytes to disk unconditionally and clears its
// dirty flag. It returns false if pageID is not resident; the frame stays
// resident and keeps its pin count either way (spec §4.3).
func (p *Pool) FlushPage(pageID util.PageID) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameID, ok := p.pageTable[pageID]
	if !ok {
		return false, nil
	}
	f := &p.frames[frameID]
	if err := p.disk.WritePage(pageID, f.Data[:]); err != nil {
		return false, fmt.Errorf("flush page %d: %w", pageID, err)
	}
	f.IsDirty = false
	return true, nil
}

// FlushAllPages writes back every resident dirty page and clears its
// dirty flag, leaving residency, pins, and the replacer untouched.
func (p *Pool) FlushAllPages() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for pageID, frameID := range p.pageTable {
		f := &p.frames[frameID]
		if !f.IsDirty {
			continue
		}
		if err := p.disk.WritePage(pageID, f.Data[:]); err != nil {
			return fmt.Errorf("flush all: page %d: %w", pageID, err)
		}
		f.IsDirty = false
	}
	return nil
}

// DeletePage removes pageID from the pool and returns its frame to the
// free list. It is idempotent: deleting a non-resident page succeeds.
// It fails (returns false) only if the page is still pinned (spec §4.3).
func (p *Pool) DeletePage(pageID util.PageID) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameID, ok := p.pageTable[pageID]
	if !ok {
		return true, nil
	}
	f := &p.frames[frameID]
	if f.PinCount != 0 {
		return false, nil
	}

	if err := p.disk.DeallocatePage(pageID); err != nil {
		return false, fmt.Errorf("deallocate page %d: %w", pageID, err)
	}

	delete(p.pageTable, pageID)
	p.replacer.Pin(frameID) // drop any victim candidacy before recycling
	f.Reset()
	p.freeList = append(p.freeList, frameID)
	return true, nil
}

// Close flushes every dirty resident page and releases the disk manager.
// Idempotent to the extent the underlying DiskManager's Close is.
func (p *Pool) Close() error {
	if err := p.FlushAllPages(); err != nil {
		return err
	}
	return p.disk.Close()
}

// selectFrame implements "select a frame" from spec §4.3: take the free
// list's front when non-empty, otherwise ask the replacer for a victim.
func (p *Pool) selectFrame() (util.FrameID, error) {
	if n := len(p.freeList); n > 0 {
		frameID := p.freeList[0]
		p.freeList = p.freeList[1:]
		return frameID, nil
	}

	frameID, ok := p.replacer.Victim()
	if !ok {
		return util.InvalidFrameID, ErrPoolExhausted
	}
	p.logger.Printf("buffer: evicting frame %d", frameID)
	return frameID, nil
}

// writeBackIfDirty persists f's bytes if dirty, clearing the flag only on
// success — a failed write-back leaves is_dirty true so a retry remains
// possible (spec §4.3 failure semantics, I6).
func (p *Pool) writeBackIfDirty(f *page.Frame) error {
	if !f.IsDirty {
		return nil
	}
	if err := p.disk.WritePage(f.PageID, f.Data[:]); err != nil {
		p.logger.Printf("buffer: write-back of page %d failed: %v", f.PageID, err)
		return fmt.Errorf("write back page %d: %w", f.PageID, err)
	}
	f.IsDirty = false
	return nil
}

// evictPageTableEntry removes f's current page from the page table, if
// it held one (it did not, if f came straight from the free list).
func (p *Pool) evictPageTableEntry(f *page.Frame) {
	if f.PageID != util.InvalidPageID {
		delete(p.pageTable, f.PageID)
	}
}
