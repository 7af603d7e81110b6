package submit

import "github.com/gogpu/frame/recording"

// Executor translates recordings into GPU work on a device queue.
// Context calls Execute with the batch of recordings taken by Submit,
// in insertion order.
type Executor interface {
	// Execute plays the recordings back on the device. With SyncCPU
	// it returns only after the GPU has finished the batch.
	Execute(recs []*recording.Recording, mode SyncMode) error
}

// NullExecutor discards all submitted work. It stands in for a real
// backend in tests and lets the pipeline run without a GPU.
type NullExecutor struct{}

// Execute does nothing and reports success.
func (NullExecutor) Execute([]*recording.Recording, SyncMode) error { return nil }

// Ensure NullExecutor implements Executor.
var _ Executor = NullExecutor{}
