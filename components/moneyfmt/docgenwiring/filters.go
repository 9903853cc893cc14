// Package docgenwiring bridges the moneyfmt component into the document
// render engine.
package docgenwiring

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-docgen/components/moneyfmt"
	"github.com/goliatone/go-docgen/pkg/render"
)

// MoneyFilter returns an engine option registering a "money" filter backed
// by the component defaults plus any overrides. A string filter parameter
// overrides the currency code, so {{ total|money }} and
// {{ total|money:"EUR" }} both work. Filter names are global to the
// process, so build at most one engine with this option.
func MoneyFilter(fns ...moneyfmt.OptionFn) render.Option {
	opts := moneyfmt.NewOptions(fns...)
	return render.WithFilter("money", func(input, param any) (any, error) {
		amount, err := amountOf(input)
		if err != nil {
			return nil, err
		}
		chosen := opts
		if code, ok := param.(string); ok && code != "" {
			chosen.Currency = code
		}
		return moneyfmt.FormatWithOptions(amount, chosen), nil
	})
}

func amountOf(value any) (float64, error) {
	switch n := value.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		amount, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("docgenwiring: money filter: parse %q: %w", n, err)
		}
		return amount, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("docgenwiring: money filter: unsupported value type %T", value)
	}
}
