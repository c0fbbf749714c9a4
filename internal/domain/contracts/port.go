package contracts

import "context"

// Analyzer produces a compliance verdict for contract text. Implementations
// return the raw model output; decoding happens in ParseReport.
type Analyzer interface {
	Analyze(ctx context.Context, contractText string) (string, error)
}
