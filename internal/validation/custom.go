package validation

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	tagMoney     = "money"
	tagTimestamp = "timestamp"
)

// timestampLayouts are tried in order when parsing report bounds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 timestamps, zone-less timestamps and
// plain dates. Zone-less values are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func registerCustom(vld *validator.Validate) {
	// Amounts reach the rules as their canonical decimal string.
	vld.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	vld.RegisterValidation(tagMoney, func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return d.GreaterThanOrEqual(MinAmount) && d.Equal(d.Truncate(AmountScale))
	})

	vld.RegisterValidation(tagTimestamp, func(fl validator.FieldLevel) bool {
		_, ok := ParseTimestamp(fl.Field().String())
		return ok
	})
}
