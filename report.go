package md1img

import "errors"

// ExtractResult records the outcome of extracting a single entry.
type ExtractResult struct {
	// Name is the internal entry name.
	Name string
	// Path is the resolved destination path.
	Path string
	// Size is the number of bytes written (or that would have been
	// written under dry-run).
	Size int
	// Compression is the transform that was applied.
	Compression Compression
	// Err is non-nil when this entry failed. Other entries are
	// unaffected.
	Err error
}

// ExtractReport summarizes a best-effort extraction. Per-entry failures
// are collected here instead of aborting the remaining entries.
type ExtractReport struct {
	Results []ExtractResult
	DryRun  bool
}

// Failed returns the results of entries that could not be extracted.
func (r *ExtractReport) Failed() []ExtractResult {
	var failed []ExtractResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins every per-entry failure, or returns nil when all entries
// extracted cleanly.
func (r *ExtractReport) Err() error {
	errs := make([]error, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}
