package pricing

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// LooseNumber accepts a JSON number or a numeric string. Anything else
// (null, empty string, garbage) decodes without error as an absent value,
// so form input that is mid-edit never fails the request.
type LooseNumber struct {
	value decimal.Decimal
	set   bool
}

func Number(v decimal.Decimal) LooseNumber {
	return LooseNumber{value: v, set: true}
}

func NumberFromInt(v int64) LooseNumber {
	return Number(decimal.NewFromInt(v))
}

func (n LooseNumber) Decimal() (decimal.Decimal, bool) {
	return n.value, n.set
}

func (n *LooseNumber) UnmarshalJSON(b []byte) error {
	*n = LooseNumber{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	n.value, n.set = d, true
	return nil
}

func (n LooseNumber) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return []byte(n.value.String()), nil
}

// MaxQuantity caps a single line item.
const MaxQuantity = 1_000_000

// WholeNumber truncates d toward zero and reports whether the result lies in
// [lo, hi]. The bounds are checked on the decimal, so values past int64 never wrap.
func WholeNumber(d decimal.Decimal, lo, hi int64) (int, bool) {
	t := d.Truncate(0)
	if t.LessThan(decimal.NewFromInt(lo)) || t.GreaterThan(decimal.NewFromInt(hi)) {
		return 0, false
	}
	return int(t.IntPart()), true
}

// CoerceQuantity turns raw quantity input into a whole number in [1, MaxQuantity].
// Missing, non-numeric and sub-1 values become 1 and larger values are clamped.
// Fractions are truncated (2.5 units is priced as 2), since line items store
// integer quantities.
func CoerceQuantity(n LooseNumber) int {
	d, ok := n.Decimal()
	if !ok {
		return 1
	}
	if d.GreaterThan(decimal.NewFromInt(MaxQuantity)) {
		return MaxQuantity
	}
	if q, ok := WholeNumber(d, 1, MaxQuantity); ok {
		return q
	}
	return 1
}

// CoerceShipping returns the shipping cost, or zero when missing or non-numeric.
func CoerceShipping(n LooseNumber) decimal.Decimal {
	d, ok := n.Decimal()
	if !ok {
		return decimal.Zero
	}
	return d
}
