// Package moneyfmt formats monetary amounts for document templates:
// locale-aware separators, digit grouping, and currency code placement.
//
// The defaults follow the Polish invoice conventions the rest of the
// module defaults to; options select other locales and currencies. The
// docgenwiring subpackage exposes the formatter as a template filter.
package moneyfmt
