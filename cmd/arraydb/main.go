// Command arraydb is a small demonstration harness for the buffer pool: it
// allocates a few pages, writes through the pool, forces an eviction by
// exceeding pool capacity, and reports what ended up on disk.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/arraydb/bufferpool/internal/storage/buffer"
	"github.com/arraydb/bufferpool/internal/storage/disk"
)

func main() {
	path := os.Args[0] + ".demo.dat"
	dm, err := disk.NewFileDiskManager(path)
	if err != nil {
		log.Fatalf("open disk manager: %v", err)
	}
	defer dm.Close()
	defer os.Remove(path)

	pool := buffer.NewPool(2, dm, buffer.NopLogManager{})

	g1, id1, err := pool.NewPage()
	if err != nil {
		log.Fatalf("new page: %v", err)
	}
	copy(g1.Data(), []byte("hello from frame 0"))
	g1.MarkDirty()
	pool.UnpinPage(id1, true)
	fmt.Printf("allocated page %d\n", id1)

	g2, id2, err := pool.NewPage()
	if err != nil {
		log.Fatalf("new page: %v", err)
	}
	copy(g2.Data(), []byte("hello from frame 1"))
	g2.MarkDirty()
	pool.UnpinPage(id2, true)
	fmt.Printf("allocated page %d\n", id2)

	// Pool capacity is 2; a third NewPage evicts the LRU victim (id1).
	g3, id3, err := pool.NewPage()
	if err != nil {
		log.Fatalf("new page: %v", err)
	}
	copy(g3.Data(), []byte("hello from frame 0, again"))
	g3.MarkDirty()
	pool.UnpinPage(id3, true)
	fmt.Printf("allocated page %d (evicted page %d's frame)\n", id3, id1)

	g1Again, err := pool.FetchPage(id1)
	if err != nil {
		log.Fatalf("fetch page %d: %v", id1, err)
	}
	fmt.Printf("page %d re-read from disk: %q\n", id1, string(g1Again.Data()[:18]))
	pool.UnpinPage(id1, false)

	if err := pool.Close(); err != nil {
		log.Fatalf("close pool: %v", err)
	}
}
