package retry

import "time"

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
)

// Options represents retry settings
type Options struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Classifier  Classifier
	Sleeper     Sleeper
	OnRetry     func(attempt int, delay time.Duration, err error)
}

// Option modifies Options
type Option func(*Options)

// WithMaxAttempts sets max number of calls
func WithMaxAttempts(n int) Option {
	return func(o *Options) {
		o.MaxAttempts = n
	}
}

// WithBaseDelay sets backoff base delay
func WithBaseDelay(d time.Duration) Option {
	return func(o *Options) {
		o.BaseDelay = d
	}
}

// WithClassifier sets error classifier
func WithClassifier(c Classifier) Option {
	return func(o *Options) {
		o.Classifier = c
	}
}

// WithSleeper sets backoff sleeper
func WithSleeper(s Sleeper) Option {
	return func(o *Options) {
		o.Sleeper = s
	}
}

// WithOnRetry sets a callback invoked before every backoff sleep
func WithOnRetry(fn func(attempt int, delay time.Duration, err error)) Option {
	return func(o *Options) {
		o.OnRetry = fn
	}
}

// NewOptions creates options with defaults applied
func NewOptions(options []Option) *Options {
	ret := &Options{}
	for _, opt := range options {
		opt(ret)
	}
	if ret.MaxAttempts <= 0 {
		ret.MaxAttempts = DefaultMaxAttempts
	}
	if ret.BaseDelay <= 0 {
		ret.BaseDelay = DefaultBaseDelay
	}
	if ret.Classifier == nil {
		ret.Classifier = DefaultClassifier
	}
	if ret.Sleeper == nil {
		ret.Sleeper = TimerSleeper{}
	}
	return ret
}
