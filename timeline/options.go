package timeline

import (
	"time"

	"impractical.co/sesqui/internal/clock"
)

// Option configures a Controller or a mounted Timeline.
type Option func(*options)

type options struct {
	clock          clock.Clock
	debounce       time.Duration
	minQueryLength int
	loader         *Loader
	site           *Site
	newID          func() string
}

func newOptions(opts ...Option) options {
	o := options{
		clock:          clock.Real(),
		debounce:       DefaultDebounce,
		minQueryLength: DefaultMinQueryLength,
		loader:         &Loader{},
		site:           DefaultSite(),
		newID:          NewID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock sets the clock used for the search debounce.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithDebounce sets how long the query has to stay unchanged before a
// search runs. Durations of zero or less are ignored.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithMinQueryLength sets the shortest trimmed query, in runes, that runs a
// search. Values below one are ignored.
func WithMinQueryLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minQueryLength = n
		}
	}
}

// WithLoader sets the Loader used to resolve dataset URLs.
func WithLoader(l *Loader) Option {
	return func(o *options) {
		if l != nil {
			o.loader = l
		}
	}
}

// WithSite sets the Site used to render the timeline's markup.
func WithSite(s *Site) Option {
	return func(o *options) {
		if s != nil {
			o.site = s
		}
	}
}

// WithIDFunc sets the function generating the timeline root's id.
func WithIDFunc(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}
