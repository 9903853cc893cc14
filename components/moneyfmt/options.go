package moneyfmt

// Options control how an amount is written.
type Options struct {
	// Currency is the ISO code placed before or after the amount per the
	// locale convention. Empty formats a bare number.
	Currency string

	// Locale is the language code selecting separators and code placement.
	// A region subtag is ignored, so "en-US" behaves like "en". Unknown
	// locales fall back to the "en" convention.
	Locale string

	// Precision is the number of fraction digits.
	Precision int
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the component defaults.
func DefaultOptions() Options {
	return Options{
		Currency:  "PLN",
		Locale:    "pl",
		Precision: 2,
	}
}

// NewOptions applies overrides to the defaults and normalizes the result.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Precision < 0 {
		opts.Precision = DefaultOptions().Precision
	}
	if opts.Locale == "" {
		opts.Locale = DefaultOptions().Locale
	}
	return opts
}

// WithCurrency sets the currency code. Empty drops the code.
func WithCurrency(code string) OptionFn {
	return func(o *Options) { o.Currency = code }
}

// WithLocale sets the formatting locale.
func WithLocale(locale string) OptionFn {
	return func(o *Options) { o.Locale = locale }
}

// WithPrecision sets the number of fraction digits.
func WithPrecision(digits int) OptionFn {
	return func(o *Options) { o.Precision = digits }
}
