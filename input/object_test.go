package input

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_KeepsInsertionOrder(t *testing.T) {
	// Setup
	obj := Object{}

	// Exercise
	obj.Set("zzz", 1)
	obj.Set("aaa", 2)
	obj.Set("mmm", 3)
	obj.Set("zzz", 4)

	// Verify
	assert.Equal(t, []string{"zzz", "aaa", "mmm"}, obj.Keys())
	assert.Equal(t, 3, obj.Len())
	v, ok := obj.Get("zzz")
	assert.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestObject_MarshalJSON(t *testing.T) {
	testCases := []struct {
		title    string
		input    string
		expected string
	}{
		{
			title:    "Empty",
			input:    `{}`,
			expected: `{}`,
		},
		{
			title:    "Order is preserved",
			input:    `{"zzz": "hello", "aaa": [3.14, true, null], "123": {"b": 1, "a": 2}}`,
			expected: `{"zzz":"hello","aaa":[3.14,true,null],"123":{"b":1,"a":2}}`,
		},
		{
			title:    "Large integers stay exact",
			input:    `{"id": 12345678901234567890}`,
			expected: `{"id":12345678901234567890}`,
		},
		{
			title:    "HTML is not escaped",
			input:    `{"html": "<b>&</b>"}`,
			expected: `{"html":"<b>&</b>"}`,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			// Setup
			v, err := DecodeJSON([]byte(tt.input))
			require.NoError(t, err)

			// Exercise
			b, err := JSONAPI.Marshal(v)

			// Verify
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(b))
		})
	}
}

func TestObject_ZeroValueMarshalsAsEmptyObject(t *testing.T) {
	b, err := JSONAPI.Marshal(Object{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestDecodeJSON(t *testing.T) {
	testCases := []struct {
		title         string
		input         string
		expected      interface{}
		shouldBeError bool
	}{
		{title: "String", input: `"hello"`, expected: "hello"},
		{title: "Number", input: ` 42 `, expected: json.Number("42")},
		{title: "Boolean", input: `false`, expected: false},
		{title: "Null", input: `null`, expected: nil},
		{title: "Array", input: `[1, "a"]`, expected: []interface{}{json.Number("1"), "a"}},
		{title: "Empty", input: ``, shouldBeError: true},
		{title: "Unquoted key", input: `{bad}`, shouldBeError: true},
		{title: "Trailing comma", input: `{"a": 1,}`, shouldBeError: true},
		{title: "Malformed number", input: `{"a": 1.2.3}`, shouldBeError: true},
		{title: "Two documents", input: `{} {}`, shouldBeError: true},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			v, err := DecodeJSON([]byte(tt.input))
			if tt.shouldBeError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestDecodeJSON_NestedObjectsAreOrdered(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"outer": {"b": 1, "a": [{"d": 1, "c": 2}]}}`))
	require.NoError(t, err)

	outer, ok := v.(Object)
	require.True(t, ok)
	inner, _ := outer.Get("outer")
	innerObj, ok := inner.(Object)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, innerObj.Keys())

	arr, _ := innerObj.Get("a")
	elem, ok := arr.([]interface{})[0].(Object)
	require.True(t, ok)
	assert.Equal(t, []string{"d", "c"}, elem.Keys())
}

func TestFormatValue(t *testing.T) {
	obj := Object{}
	obj.Set("k", "v")

	testCases := []struct {
		title    string
		input    interface{}
		expected string
	}{
		{title: "String", input: "hello world", expected: "hello world"},
		{title: "Number", input: json.Number("1920933"), expected: "1920933"},
		{title: "Float", input: json.Number("3.14"), expected: "3.14"},
		{title: "Boolean", input: true, expected: "true"},
		{title: "Null", input: nil, expected: "null"},
		{title: "Object", input: obj, expected: `{"k":"v"}`},
		{title: "Array", input: []interface{}{json.Number("1"), "a"}, expected: `[1,"a"]`},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.input))
		})
	}
}
