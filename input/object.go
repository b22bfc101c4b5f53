package input

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// JSONAPI encodes and decodes every JSON document reqline reads or writes.
// HTML characters are left unescaped.
var JSONAPI = jsoniter.Config{
	EscapeHTML: false,
	UseNumber:  true,
}.Froze()

// Object is a JSON object which remembers the order in which its keys were first set.
// The zero value is an empty object.
type Object struct {
	keys   []string
	values map[string]interface{}
}

// Set stores value under key. Setting an existing key keeps its position.
func (o *Object) Set(key string, value interface{}) {
	if o.values == nil {
		o.values = make(map[string]interface{})
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o Object) Get(key string) (interface{}, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Map returns an unordered copy of the top-level members.
func (o Object) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(o.keys))
	for _, key := range o.keys {
		m[key] = o.values[key]
	}
	return m
}

func (o Object) MarshalJSON() ([]byte, error) {
	stream := JSONAPI.BorrowStream(nil)
	defer JSONAPI.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, key := range o.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(key)
		stream.WriteVal(o.values[key])
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, errors.Wrap(stream.Error, "encoding JSON object")
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// DecodeJSON decodes a complete JSON document. Objects become Object (at every depth),
// arrays []interface{}, numbers json.Number.
func DecodeJSON(data []byte) (interface{}, error) {
	// jsoniter is lenient about number syntax and a few other corners, so the
	// document is checked against the strict grammar first.
	if !json.Valid(data) {
		return nil, errors.New("invalid JSON document")
	}

	iter := JSONAPI.BorrowIterator(data)
	defer JSONAPI.ReturnIterator(iter)

	v := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, errors.Wrap(iter.Error, "decoding JSON")
	}
	return v, nil
}

func readValue(iter *jsoniter.Iterator) interface{} {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		obj := Object{}
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
			obj.Set(field, readValue(iter))
			return true
		})
		return obj
	case jsoniter.ArrayValue:
		arr := []interface{}{}
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			arr = append(arr, readValue(iter))
			return true
		})
		return arr
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadNumber()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	default:
		iter.ReportError("readValue", "unexpected token")
		return nil
	}
}

// EncodeJSON encodes v compactly, without escaping HTML characters.
func EncodeJSON(v interface{}) ([]byte, error) {
	b, err := JSONAPI.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding JSON")
	}
	return b, nil
}

// decodeSection decodes the value of a HEADERS, QUERY or BODY section.
func decodeSection(keyword Keyword, raw string) (Object, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Object{}, nil
	}

	v, err := DecodeJSON([]byte(raw))
	if err != nil {
		return Object{}, newKeywordError(InvalidJSON, string(keyword))
	}
	obj, ok := v.(Object)
	if !ok {
		return Object{}, newKeywordError(InvalidJSON, string(keyword))
	}
	return obj, nil
}

// FormatValue renders a decoded JSON value as plain text, for query strings and
// header values.
func FormatValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	default:
		b, err := JSONAPI.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}
