package domain

import "time"

// DefaultTimeout applies to any target that does not configure its own.
const DefaultTimeout = 10 * time.Second

// Target is one monitored endpoint. The target list is loaded once at
// process start and treated as read-only for the life of the process.
type Target struct {
	Name    string        `json:"name"`
	URL     string        `json:"url"`
	Timeout time.Duration `json:"timeout"`
}

// CheckOutcome is the result of one probe against one target.
// Error, StatusCode and ResponseTimeMS are pointers to allow nil:
// a transport failure has no status code, a success has no error.
type CheckOutcome struct {
	Name           string  `json:"name"`
	URL            string  `json:"url"`
	Success        bool    `json:"success"`
	Error          *string `json:"error"`
	StatusCode     *int    `json:"status_code"`
	ResponseTimeMS *int64  `json:"response_time_ms"`
}

// RunSummary aggregates one full pass over all targets. It is built
// once per run, serialized to the caller, and never persisted.
type RunSummary struct {
	Timestamp    time.Time      `json:"timestamp"`
	TotalChecked int            `json:"total_checked"`
	Successful   int            `json:"successful"`
	Failed       int            `json:"failed"`
	Results      []CheckOutcome `json:"results"`
}
