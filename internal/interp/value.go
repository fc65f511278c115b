package interp

import (
	"encoding/json"
	"math/big"
)

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined is the runtime value of the undefined type. Go nil stands for null.
var Undefined any = undefinedValue{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// asNumber accepts every Go numeric kind plus json.Number.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func asBigInt(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case *big.Int:
		return n, n != nil
	case big.Int:
		return &n, true
	}
	return nil, false
}

func asRecord(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func describe(v any) string {
	switch {
	case v == nil:
		return "null"
	case IsUndefined(v):
		return "undefined"
	}
	if _, ok := asNumber(v); ok {
		return "number"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case *big.Int, big.Int:
		return "bigint"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return "unsupported value"
}
