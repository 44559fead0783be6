package manifest

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-manifest/pkg/value"
)

// QuantitySeparator splits the magnitude from the unit in united values such
// as "10:microliter".
const QuantitySeparator = ":"

var quantityPattern = regexp.MustCompile(`^\s*[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?:[^\s:]+\s*$`)

// Quantity is a parsed united value.
type Quantity struct {
	Magnitude string
	Unit      string
}

// SplitQuantity breaks a united string at the first separator. Values with no
// separator are all magnitude.
func SplitQuantity(raw string) Quantity {
	magnitude, unit, _ := strings.Cut(raw, QuantitySeparator)
	return Quantity{Magnitude: strings.TrimSpace(magnitude), Unit: strings.TrimSpace(unit)}
}

// String joins the quantity back into "<magnitude>:<unit>".
func (q Quantity) String() string {
	return q.Magnitude + QuantitySeparator + q.Unit
}

// IsQuantity reports whether raw matches "<number>:<unit-token>".
func IsQuantity(raw string) bool {
	return quantityPattern.MatchString(raw)
}

// quantityBlank reports whether a united value has no magnitude, as when a
// form only has the unit selected. Non-string values are never blank.
func quantityBlank(v value.Value) bool {
	s, ok := v.Str()
	if !ok {
		return false
	}
	return SplitQuantity(s).Magnitude == ""
}
