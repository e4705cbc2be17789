package migrate

import "cocomig/internal/diag"

// Markers are the v1 and v2 names the matchers look for.
type Markers struct {
	Module      string // cocotb
	Coroutine   string // coroutine
	Fork        string // fork
	StartSoon   string // start_soon
	ReturnValue string // ReturnValue
}

// DefaultMarkers returns the cocotb names.
func DefaultMarkers() Markers {
	return Markers{
		Module:      "cocotb",
		Coroutine:   "coroutine",
		Fork:        "fork",
		StartSoon:   "start_soon",
		ReturnValue: "ReturnValue",
	}
}

// retvalKeyword is the keyword form ReturnValue(retval=x).
const retvalKeyword = "retval"

type options struct {
	markers  Markers
	reporter diag.Reporter
}

// Option configures Scan and Migrate.
type Option func(*options)

// WithMarkers overrides the matched names. Empty fields keep their defaults.
func WithMarkers(m Markers) Option {
	return func(o *options) {
		def := DefaultMarkers()
		o.markers = Markers{
			Module:      orDefault(m.Module, def.Module),
			Coroutine:   orDefault(m.Coroutine, def.Coroutine),
			Fork:        orDefault(m.Fork, def.Fork),
			StartSoon:   orDefault(m.StartSoon, def.StartSoon),
			ReturnValue: orDefault(m.ReturnValue, def.ReturnValue),
		}
	}
}

// WithReporter mirrors every finding into r as a diagnostic.
func WithReporter(r diag.Reporter) Option {
	return func(o *options) { o.reporter = r }
}

func buildOptions(opts []Option) options {
	o := options{markers: DefaultMarkers()}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
