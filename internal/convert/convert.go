package convert

import (
	"github.com/spf13/cast"

	"github.com/go-tangra/go-tangra-specs/internal/record"
	"github.com/go-tangra/go-tangra-specs/internal/store"
)

// Text renders a scalar leaf the way it appears in text, CSV cells and SQLite
// rows. Floats keep a decimal point ("6.0"), matching the JSON and YAML
// output. nil renders as "".
func Text(v any) string {
	switch f := v.(type) {
	case float64:
		return record.FormatFloat(f)
	case float32:
		return record.FormatFloat(float64(f))
	}
	return cast.ToString(v)
}

// Rows flattens a report into Property/Value string pairs.
func Rows(v record.Value) [][2]string {
	pairs := record.Flatten(v)
	rows := make([][2]string, len(pairs))
	for i, p := range pairs {
		rows[i] = [2]string{p.Key, Text(p.Value)}
	}
	return rows
}

// RecordToProperties flattens a report into store rows, in report order.
func RecordToProperties(v record.Value) []store.Property {
	rows := Rows(v)
	props := make([]store.Property, len(rows))
	for i, r := range rows {
		props[i] = store.Property{
			Position: int64(i + 1),
			Property: r[0],
			Value:    r[1],
		}
	}
	return props
}
