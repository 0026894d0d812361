// Package harness times store operations across backends and dataset
// sizes.
package harness

// Result holds the timings for one backend at one dataset size. Times are
// milliseconds. Insert covers a whole batch; search, update and delete are
// per operation.
type Result struct {
	RunID        string  `json:"run_id,omitempty"`
	Structure    string  `json:"structure"`
	Size         int     `json:"size"`
	InsertMs     float64 `json:"insert_time_ms"`
	InsertSpread float64 `json:"insert_spread"`
	SearchMs     float64 `json:"search_time_ms"`
	SearchSpread float64 `json:"search_spread"`
	UpdateMs     float64 `json:"update_time_ms"`
	UpdateSpread float64 `json:"update_spread"`
	DeleteMs     float64 `json:"delete_time_ms"`
	DeleteSpread float64 `json:"delete_spread"`
}
