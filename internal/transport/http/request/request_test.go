package request

import (
	"encoding/json"
	"testing"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantValue string
		wantValid bool
		wantEmpty bool
	}{
		{name: "string", in: `"ORD-1"`, wantValue: "ORD-1", wantValid: true},
		{name: "number", in: `12345`, wantValue: "12345", wantValid: true},
		{name: "fraction", in: `1.50`, wantValue: "1.5", wantValid: true},
		{name: "boolean", in: `true`, wantValue: "true", wantValid: true},
		{name: "zero", in: `0`, wantValue: "0", wantValid: true, wantEmpty: true},
		{name: "false", in: `false`, wantValue: "false", wantValid: true, wantEmpty: true},
		{name: "empty string", in: `""`, wantValue: "", wantValid: true, wantEmpty: true},
		{name: "null", in: `null`, wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got String
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantValid, got.Valid)

			if tt.wantEmpty {
				assert.Empty(t, got.OrEmpty())
			} else {
				assert.Equal(t, tt.wantValue, got.OrEmpty())
			}

			if tt.wantValid {
				require.NotNil(t, got.Ptr())
				assert.Equal(t, tt.wantValue, *got.Ptr())
			} else {
				assert.Nil(t, got.Ptr())
			}
		})
	}
}

func TestString_AbsentField(t *testing.T) {
	var body struct {
		Username String `json:"username"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))

	assert.False(t, body.Username.Valid)
	assert.Nil(t, body.Username.Ptr())
}

func TestString_RejectsCompositeValues(t *testing.T) {
	var got String

	var castErr *CastError
	require.ErrorAs(t, json.Unmarshal([]byte(`{"a":1}`), &got), &castErr)
	assert.Equal(t, "string", castErr.Kind)
	require.ErrorAs(t, json.Unmarshal([]byte(`[1]`), &got), &castErr)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Number
	}{
		{name: "integer", in: `2`, want: 2},
		{name: "fraction", in: `1.5`, want: 1.5},
		{name: "negative", in: `-3`, want: -3},
		{name: "numeric string", in: `"3.5"`, want: 3.5},
		{name: "padded string", in: `" 7 "`, want: 7},
		{name: "blank string", in: `""`, want: 0},
		{name: "true", in: `true`, want: 1},
		{name: "false", in: `false`, want: 0},
		{name: "null", in: `null`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Number
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumber_RejectsNonNumericValues(t *testing.T) {
	for _, in := range []string{`"lots"`, `"NaN"`, `"Infinity"`, `{}`, `[1]`} {
		t.Run(in, func(t *testing.T) {
			var got Number

			var castErr *CastError
			require.ErrorAs(t, json.Unmarshal([]byte(in), &got), &castErr)
			assert.Equal(t, "number", castErr.Kind)
		})
	}
}

func TestItemsToModel(t *testing.T) {
	var items []Item
	require.NoError(t, json.Unmarshal(
		[]byte(`[{"id":"7","name":"Rice","quantity":1.5,"price":"2"}]`),
		&items,
	))

	assert.Equal(t, []order.Item{{ID: 7, Name: "Rice", Quantity: 1.5, Price: 2}}, ItemsToModel(items))
	assert.Nil(t, ItemsToModel(nil))
	assert.Equal(t, []order.Item{}, ItemsToModel([]Item{}))
}
