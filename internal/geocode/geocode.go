package geocode

import "context"

// Result is either a resolved coordinate pair or nothing. Lookup failures are
// absorbed into an unresolved Result, never an error, so callers cannot
// mistake a missing coordinate for a hard failure.
type Result struct {
	Lat      float64
	Lon      float64
	Resolved bool
}

type Resolver interface {
	Resolve(ctx context.Context, address string) Result
}
