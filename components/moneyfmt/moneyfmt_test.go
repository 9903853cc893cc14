package moneyfmt_test

import (
	"testing"

	"github.com/goliatone/go-docgen/components/moneyfmt"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		fns    []moneyfmt.OptionFn
		want   string
	}{
		{"polish default", 1234.5, nil, "1 234,50 PLN"},
		{"english convention", 1234.5, []moneyfmt.OptionFn{
			moneyfmt.WithLocale("en"), moneyfmt.WithCurrency("USD"),
		}, "USD 1,234.50"},
		{"german grouping", 9876543.21, []moneyfmt.OptionFn{
			moneyfmt.WithLocale("de"), moneyfmt.WithCurrency("EUR"),
		}, "9.876.543,21 EUR"},
		{"region subtag ignored", 10, []moneyfmt.OptionFn{
			moneyfmt.WithLocale("en-US"), moneyfmt.WithCurrency("USD"),
		}, "USD 10.00"},
		{"unknown locale falls back", 5, []moneyfmt.OptionFn{
			moneyfmt.WithLocale("xx"), moneyfmt.WithCurrency("USD"),
		}, "USD 5.00"},
		{"no currency", 42, []moneyfmt.OptionFn{
			moneyfmt.WithCurrency(""),
		}, "42,00"},
		{"negative amount", -1234.5, nil, "-1 234,50 PLN"},
		{"zero precision", 1234.6, []moneyfmt.OptionFn{
			moneyfmt.WithLocale("en"), moneyfmt.WithCurrency(""), moneyfmt.WithPrecision(0),
		}, "1,235"},
		{"rounds fractions", 0.126, []moneyfmt.OptionFn{
			moneyfmt.WithLocale("en"), moneyfmt.WithCurrency(""),
		}, "0.13"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := moneyfmt.Format(tc.amount, tc.fns...); got != tc.want {
				t.Fatalf("Format(%v) = %q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}

func TestNewOptionsNormalizes(t *testing.T) {
	opts := moneyfmt.NewOptions(moneyfmt.WithPrecision(-3), moneyfmt.WithLocale(""), nil)
	if opts.Precision != 2 {
		t.Fatalf("Precision = %d, want 2", opts.Precision)
	}
	if opts.Locale != "pl" {
		t.Fatalf("Locale = %q, want %q", opts.Locale, "pl")
	}
}
