package rowsource

import "context"

// Source defines the interface for loading one tabular input list. The
// estimation core never touches files or the network; everything arrives
// through this contract.
type Source interface {
	// Load reads the source and returns its rows. Failures come back as
	// SourceError so the caller can decide between degrading and aborting.
	Load(ctx context.Context) (*Table, error)

	// Name returns the name of the source, used in anomaly reports
	Name() string
}
