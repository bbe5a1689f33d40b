package database

import (
	"database/sql/driver"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// ToNullableNumber coerces loosely typed input into a finite number.
// nil input, unparsable input and non-finite results all yield nil.
// Strings follow JavaScript Number() rules: surrounding whitespace is
// ignored, the empty string is zero and 0x/0o/0b prefixes are accepted.
func ToNullableNumber(v any) *float64 {
	if v == nil {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}

	if valuer, ok := v.(driver.Valuer); ok {
		inner, err := valuer.Value()
		if err != nil || inner == nil {
			return nil
		}
		v = inner
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	var n float64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n = float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		n = rv.Float()
	case reflect.Bool:
		if rv.Bool() {
			n = 1
		}
	case reflect.String:
		parsed, ok := parseNumber(rv.String())
		if !ok {
			return nil
		}
		n = parsed
	default:
		return nil
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

// nullableNumber returns the query argument form of ToNullableNumber.
func nullableNumber(v any) any {
	if n := ToNullableNumber(v); n != nil {
		return *n
	}
	return nil
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if strings.ContainsRune(s, '_') {
		return 0, false
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			// Integer literals of any width round to the nearest float64.
			// Too wide to represent gives Inf, which the caller drops.
			i, ok := new(big.Int).SetString(s, 0)
			if !ok {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(i).Float64()
			return f, true
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
