package moneyfmt

import (
	"math"
	"strconv"
	"strings"
)

// convention describes how one locale writes an amount.
type convention struct {
	decimal   string
	grouping  string
	codeAfter bool
}

var conventions = map[string]convention{
	"pl": {decimal: ",", grouping: " ", codeAfter: true},
	"de": {decimal: ",", grouping: ".", codeAfter: true},
	"fr": {decimal: ",", grouping: " ", codeAfter: true},
	"en": {decimal: ".", grouping: ","},
}

// Format renders amount with the component defaults plus any overrides.
func Format(amount float64, fns ...OptionFn) string {
	return FormatWithOptions(amount, NewOptions(fns...))
}

// FormatWithOptions renders amount per opts. Callers holding raw Options
// are expected to have built them through NewOptions.
func FormatWithOptions(amount float64, opts Options) string {
	conv := conventionFor(opts.Locale)

	text := strconv.FormatFloat(math.Abs(amount), 'f', opts.Precision, 64)
	whole, frac, _ := strings.Cut(text, ".")
	out := groupDigits(whole, conv.grouping)
	if opts.Precision > 0 {
		out += conv.decimal + frac
	}
	if amount < 0 {
		out = "-" + out
	}

	if opts.Currency == "" {
		return out
	}
	if conv.codeAfter {
		return out + " " + opts.Currency
	}
	return opts.Currency + " " + out
}

func conventionFor(locale string) convention {
	lang, _, _ := strings.Cut(locale, "-")
	if conv, ok := conventions[strings.ToLower(lang)]; ok {
		return conv
	}
	return conventions["en"]
}

func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
