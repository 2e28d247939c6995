package tree

import (
	"encoding/json"
	"math"
	"math/bits"
)

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) (int, error) {
	if n < 1 {
		return 0, configErrorf("next power of two needs a positive integer, got %d", n)
	}
	if n == 1 {
		return 1, nil
	}
	if n > 1<<(bits.UintSize-2) {
		return 0, configErrorf("next power of two of %d overflows int", n)
	}
	return 1 << bits.Len(uint(n-1)), nil
}

// ValidateData checks that data is non-empty and holds no NaN.
func ValidateData[T Number](data []T) error {
	if len(data) == 0 {
		return configErrorf("data must be a non-empty sequence")
	}
	for i, v := range data {
		if isNaN(v) {
			return configErrorf("data element %d is not a number", i)
		}
	}
	return nil
}

// Values validates an untyped sequence, as decoded from YAML or JSON, and
// converts it to float64. Every element must be a Go numeric value or a
// json.Number.
func Values(raw []any) ([]float64, error) {
	if len(raw) == 0 {
		return nil, configErrorf("data must be a non-empty sequence")
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) {
			return nil, configErrorf("data element %d (%v) is not numeric", i, v)
		}
		out[i] = f
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

// isNaN is only ever true for float element types.
func isNaN[T Number](v T) bool {
	return v != v
}
