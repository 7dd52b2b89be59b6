package recipe

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseID parses a recipe reference the lenient way catalog links are written:
// leading whitespace and a sign are allowed, then base-10 digits are read up
// to the first non-digit. "12abc" is 12; "abc" has no id.
func ParseID(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return id, true
}

// NormalizeID converts an externally supplied reference into the catalog's
// canonical integer key. Unsupported kinds and non-integral numbers have no id.
func NormalizeID(ref any) (int, bool) {
	switch v := ref.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return intFromInt64(v)
	case uint:
		return intFromUint64(uint64(v))
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return intFromUint64(uint64(v))
	case uint64:
		return intFromUint64(v)
	case float32:
		return intFromFloat(float64(v))
	case float64:
		return intFromFloat(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return intFromInt64(i)
		}
		if f, err := v.Float64(); err == nil {
			return intFromFloat(f)
		}
		return 0, false
	case string:
		return ParseID(v)
	default:
		return 0, false
	}
}

func intFromInt64(v int64) (int, bool) {
	if v > math.MaxInt || v < math.MinInt {
		return 0, false
	}
	return int(v), true
}

func intFromUint64(v uint64) (int, bool) {
	if v > math.MaxInt {
		return 0, false
	}
	return int(v), true
}

func intFromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return intFromInt64(int64(f))
}
