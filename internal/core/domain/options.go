package domain

import "time"

// Wait defaults.
const (
	DefaultWaitTimeout  = 20 * time.Minute
	DefaultPollInterval = 30 * time.Second
)

// CallOptions tunes a single API call.
type CallOptions struct {
	// Timeout overrides the client's default request timeout when non-zero.
	Timeout time.Duration
}

// CallOption mutates CallOptions.
type CallOption func(*CallOptions)

// WithTimeout sets a per-call request timeout.
func WithTimeout(d time.Duration) CallOption {
	return func(o *CallOptions) {
		o.Timeout = d
	}
}

// ApplyCallOptions folds opts into a CallOptions value.
func ApplyCallOptions(opts ...CallOption) CallOptions {
	var o CallOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WaitOptions tunes WaitForReport.
type WaitOptions struct {
	// Timeout is the overall wait budget (default 20 minutes).
	Timeout time.Duration

	// Interval is the pause between status fetches (default 30 seconds).
	Interval time.Duration

	// OnProgress, if set, is called with every fetched report.
	OnProgress func(*Report)
}

// WithDefaults fills zero fields.
func (o WaitOptions) WithDefaults() WaitOptions {
	if o.Timeout <= 0 {
		o.Timeout = DefaultWaitTimeout
	}
	if o.Interval <= 0 {
		o.Interval = DefaultPollInterval
	}
	return o
}
