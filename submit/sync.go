package submit

// SyncMode controls whether Submit blocks until the GPU has finished
// the submitted work.
type SyncMode uint8

const (
	// SyncNone queues the work and returns immediately.
	SyncNone SyncMode = iota
	// SyncCPU blocks until the GPU signals completion of the batch.
	SyncCPU
)

// String returns the string representation of a SyncMode.
func (m SyncMode) String() string {
	if m == SyncCPU {
		return "SyncCPU"
	}
	return "SyncNone"
}
