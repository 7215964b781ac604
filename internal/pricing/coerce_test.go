package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantSet  bool
		wantText string
	}{
		{"Number", `3`, true, "3"},
		{"Decimal", `12.5`, true, "12.5"},
		{"NumericString", `"4"`, true, "4"},
		{"PaddedString", `" 7.25 "`, true, "7.25"},
		{"EmptyString", `""`, false, ""},
		{"Garbage", `"abc"`, false, ""},
		{"Null", `null`, false, ""},
		{"Bool", `true`, false, ""},
		{"Object", `{}`, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n LooseNumber
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))

			d, ok := n.Decimal()
			assert.Equal(t, tt.wantSet, ok)
			if tt.wantSet {
				assert.Equal(t, tt.wantText, d.String())
			}
		})
	}
}

func TestLooseNumber_InStruct(t *testing.T) {
	var body struct {
		Quantity LooseNumber `json:"quantity"`
		Shipping LooseNumber `json:"shippingCost"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":"2"}`), &body))

	assert.Equal(t, 2, CoerceQuantity(body.Quantity))
	assert.True(t, CoerceShipping(body.Shipping).IsZero())

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"quantity":2,"shippingCost":null}`, string(out))
}

func TestCoerceQuantity(t *testing.T) {
	assert.Equal(t, 1, CoerceQuantity(LooseNumber{}))
	assert.Equal(t, 1, CoerceQuantity(NumberFromInt(0)))
	assert.Equal(t, 1, CoerceQuantity(NumberFromInt(-3)))
	assert.Equal(t, 5, CoerceQuantity(NumberFromInt(5)))
	assert.Equal(t, 2, CoerceQuantity(Number(dec("2.9"))))
	assert.Equal(t, 1, CoerceQuantity(Number(dec("0.5"))))
}

func TestCoerceQuantity_Extremes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"Huge", `"1e30"`, MaxQuantity},
		{"PastInt64", `"1e19"`, MaxQuantity},
		{"AtCap", `1000000`, MaxQuantity},
		{"JustOverCap", `1000000.5`, MaxQuantity},
		{"HugeNegative", `"-1e30"`, 1},
		{"Fraction", `2.5`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n LooseNumber
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.Equal(t, tt.want, CoerceQuantity(n))
		})
	}
}

func TestWholeNumber(t *testing.T) {
	v, ok := WholeNumber(dec("3.9"), 0, 10)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = WholeNumber(dec("-0.5"), 0, 10)
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = WholeNumber(dec("11"), 0, 10)
	assert.False(t, ok)

	_, ok = WholeNumber(dec("-1"), 0, 10)
	assert.False(t, ok)

	_, ok = WholeNumber(dec("18446744073709551617"), 0, 10)
	assert.False(t, ok)
}

func TestCoerceShipping(t *testing.T) {
	assert.True(t, CoerceShipping(LooseNumber{}).IsZero())
	assertDecimal(t, "4.5", CoerceShipping(Number(dec("4.5"))))
	assertDecimal(t, "-2", CoerceShipping(NumberFromInt(-2)))
}
