package buffer

// LogManager is an opaque handle the buffer pool retains for future
// write-ahead-log integration (spec §5, §6). No Fetch/New/Unpin/Flush/
// Delete operation calls into it today.
type LogManager interface {
	// Flush forces any buffered log records to stable storage.
	Flush() error
}

// NopLogManager is a LogManager that does nothing, for callers that have
// not wired a real log manager yet.
type NopLogManager struct{}

func (NopLogManager) Flush() error { return nil }
