package storage

// Storage aggregates the run store. Validation runs are single-shot
// in-memory snapshots, so there is no database behind this.
type Storage struct {
	Runs IRunsTable
}

// NewStorage creates in-memory storage.
func NewStorage() *Storage {
	return &Storage{
		Runs: NewRunsTable(),
	}
}
