package page

import (
	util "github.com/arraydb/bufferpool/internal/utils"
)

// NewTestFrame builds a bound frame pre-populated with data, for use in
// buffer-pool and replacer tests that need a resident frame without going
// through a full Fetch/NewPage cycle.
func NewTestFrame(pageID util.PageID, data []byte) *Frame {
	f := &Frame{PageID: pageID}
	if len(data) > len(f.Data) {
		data = data[:len(f.Data)]
	}
	copy(f.Data[:], data)
	return f
}
