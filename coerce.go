package apitour

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errType = errors.New("type mismatch")

// coerceString converts a raw textual value (query, path, header, form) to kind.
func coerceString(raw string, kind Kind) (any, error) {
	switch kind {
	case KindString:
		return raw, nil
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errType
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errType
		}
		return f, nil
	case KindBool:
		switch strings.ToLower(raw) {
		case "1", "true", "on", "yes", "y", "t":
			return true, nil
		case "0", "false", "off", "no", "n", "f":
			return false, nil
		}
		return nil, errType
	default:
		return nil, fmt.Errorf("unknown kind %d", kind)
	}
}

// coerceAny converts a decoded JSON value or a declared default to kind.
func coerceAny(v any, kind Kind) (any, error) {
	switch x := v.(type) {
	case string:
		if kind == KindString {
			return x, nil
		}
		return coerceString(x, kind)
	case json.Number:
		switch kind {
		case KindString:
			return nil, errType
		case KindInt:
			if n, err := x.Int64(); err == nil {
				return int(n), nil
			}
			f, err := x.Float64()
			if err != nil {
				return nil, errType
			}
			return coerceNumber(f, kind, f == math.Trunc(f))
		}
		return coerceString(x.String(), kind)
	case bool:
		if kind != KindBool {
			return nil, errType
		}
		return x, nil
	case int:
		return coerceNumber(float64(x), kind, true)
	case int32:
		return coerceNumber(float64(x), kind, true)
	case int64:
		return coerceNumber(float64(x), kind, true)
	case float64:
		return coerceNumber(x, kind, x == math.Trunc(x))
	default:
		return nil, errType
	}
}

func coerceNumber(f float64, kind Kind, integral bool) (any, error) {
	switch kind {
	case KindInt:
		if !integral || math.Abs(f) >= math.MaxInt64 {
			return nil, errType
		}
		return int(f), nil
	case KindFloat:
		return f, nil
	default:
		return nil, errType
	}
}

func typeMessage(kind Kind) string {
	switch kind {
	case KindInt:
		return "Input should be a valid integer"
	case KindFloat:
		return "Input should be a valid number"
	case KindBool:
		return "Input should be a valid boolean"
	default:
		return "Input should be a valid string"
	}
}
