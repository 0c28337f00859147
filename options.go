package arrhash

// Options configures a Table beyond the region it's bound to, following
// the kiwi/linearhash convention (spy16-kiwi's option.go and
// index/linearhash/options.go): a struct paired with a package-level
// defaultOptions, carrying a Log hook that defaults to a no-op.
type Options struct {
	// Log receives one line for Open, OpenExisting and Close; wire
	// log.Printf in to see them.
	Log func(msg string, args ...interface{})
}

var defaultOptions = Options{
	Log: func(msg string, args ...interface{}) {},
}

func resolveOptions(opts *Options) Options {
	if opts == nil {
		return defaultOptions
	}
	out := *opts
	if out.Log == nil {
		out.Log = defaultOptions.Log
	}
	return out
}
