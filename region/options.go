package region

// Options configures how a region backend is created or attached,
// following the kiwi/linearhash convention (spy16-kiwi's option.go and
// index/linearhash/options.go): a struct paired with a package-level
// defaultOptions, carrying a Log hook that defaults to a no-op so callers
// that don't care about it never see a nil-func panic.
type Options struct {
	// Log receives one line per create/open/close; wire log.Printf in to
	// see them.
	Log func(msg string, args ...interface{})
}

var defaultOptions = Options{
	Log: func(msg string, args ...interface{}) {},
}

// resolved fills in any zero-value fields of opts with defaultOptions,
// treating a nil opts as "use every default" (kiwi.Open's opts == nil
// check, generalized to per-field fallback).
func resolved(opts *Options) Options {
	if opts == nil {
		return defaultOptions
	}
	out := *opts
	if out.Log == nil {
		out.Log = defaultOptions.Log
	}
	return out
}
