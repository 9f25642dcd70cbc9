package buffer

import (
	"container/list"
	"sync"

	util "github.com/arraydb/bufferpool/internal/utils"
)

// Replacer maintains the set of unpinned frames in LRU order and hands out
// eviction victims on demand. It never discards a frame on its own — only
// Victim and Pin, driven by the buffer pool, remove a tracked frame.
type Replacer interface {
	// Unpin marks frameID as eligible for eviction, as the most recently
	// used candidate. No-op if already tracked.
	Unpin(frameID util.FrameID)
	// Pin removes frameID from victim candidacy. No-op if not tracked.
	Pin(frameID util.FrameID)
	// Victim removes and returns the least-recently-used tracked frame.
	Victim() (util.FrameID, bool)
	// Size reports the number of currently tracked frames.
	Size() int
}

// LRUReplacer is the prescribed pure-LRU Replacer: a doubly linked list for
// O(1) ordering paired with a map for O(1) membership, grounded in the
// idiom used across the retrieved corpus for the same structure (e.g.
// Arsenal591-simple-db-golang's LRUReplacer). Thread-safe on its own so it
// can be driven standalone, per spec §5.
type LRUReplacer struct {
	mu    sync.Mutex
	order *list.List
	index map[util.FrameID]*list.Element
}

// NewLRUReplacer returns an empty replacer.
func NewLRUReplacer() *LRUReplacer {
	return &LRUReplacer{
		order: list.New(),
		index: make(map[util.FrameID]*list.Element),
	}
}

func (r *LRUReplacer) Unpin(frameID util.FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, tracked := r.index[frameID]; tracked {
		return
	}
	r.index[frameID] = r.order.PushBack(frameID)
}

func (r *LRUReplacer) Pin(frameID util.FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	elem, tracked := r.index[frameID]
	if !tracked {
		return
	}
	r.order.Remove(elem)
	delete(r.index, frameID)
}

func (r *LRUReplacer) Victim() (util.FrameID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	front := r.order.Front()
	if front == nil {
		return util.InvalidFrameID, false
	}
	frameID := front.Value.(util.FrameID)
	r.order.Remove(front)
	delete(r.index, frameID)
	return frameID, true
}

func (r *LRUReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}
