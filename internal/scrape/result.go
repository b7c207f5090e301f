package scrape

import "fmt"

// Result tracks counts and errors from an ingestion run. RoutesTotal /
// RoutesSuccess / RoutesFailed count sources attempted, succeeded and failed
// (the log table predates the bulk endpoint and kept its column names).
type Result struct {
	Source        string
	RoutesTotal   int
	RoutesSuccess int
	RoutesFailed  int
	PricesFound   int
	DurationMs    int64
	Errors        []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf("sources=%d/%d prices=%d duration=%dms errors=%d",
		r.RoutesSuccess, r.RoutesTotal, r.PricesFound, r.DurationMs, len(r.Errors))
}
