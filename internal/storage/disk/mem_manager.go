package disk

import (
	"sync"

	util "github.com/arraydb/bufferpool/internal/utils"
)

// MemDiskManager is a DiskManager backed by an in-memory map, for testing
// the buffer pool and replacer in isolation from the filesystem.
type MemDiskManager struct {
	mu      sync.Mutex
	pages   map[util.PageID][]byte
	nextID  util.PageID
	freeIDs []util.PageID
	closed  bool
}

// NewMemDiskManager returns an empty in-memory disk manager.
func NewMemDiskManager() *MemDiskManager {
	return &MemDiskManager{pages: make(map[util.PageID][]byte)}
}

// Seed writes data directly into page id, bypassing AllocatePage, so tests
// can set up disk contents before exercising the buffer pool.
func (m *MemDiskManager) Seed(id util.PageID, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, util.PageSize)
	copy(buf, data)
	m.pages[id] = buf
	if id >= m.nextID {
		m.nextID = id + 1
	}
}

func (m *MemDiskManager) ReadPage(id util.PageID, out []byte) error {
	if len(out) != util.PageSize {
		return util.ErrPageOutOfBounds
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return util.ErrDiskManagerClosed
	}

	buf, ok := m.pages[id]
	if !ok {
		return util.ErrPageNotFound
	}
	copy(out, buf)
	return nil
}

func (m *MemDiskManager) WritePage(id util.PageID, data []byte) error {
	if len(data) != util.PageSize {
		return util.ErrPageOutOfBounds
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return util.ErrDiskManagerClosed
	}

	buf := make([]byte, util.PageSize)
	copy(buf, data)
	m.pages[id] = buf
	return nil
}

// AllocatePage stores a zeroed slice for the new id up front, so a
// ReadPage of an allocated-but-never-written page matches
// FileDiskManager's past-end-of-file zero-fill instead of ErrPageNotFound.
func (m *MemDiskManager) AllocatePage() (util.PageID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return util.InvalidPageID, util.ErrDiskManagerClosed
	}

	if n := len(m.freeIDs); n > 0 {
		id := m.freeIDs[n-1]
		m.freeIDs = m.freeIDs[:n-1]
		m.pages[id] = make([]byte, util.PageSize)
		return id, nil
	}

	id := m.nextID
	m.nextID++
	m.pages[id] = make([]byte, util.PageSize)
	return id, nil
}

func (m *MemDiskManager) DeallocatePage(id util.PageID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return util.ErrDiskManagerClosed
	}
	delete(m.pages, id)
	for _, free := range m.freeIDs {
		if free == id {
			return nil
		}
	}
	m.freeIDs = append(m.freeIDs, id)
	return nil
}

// Close marks the manager closed. Idempotent.
func (m *MemDiskManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
