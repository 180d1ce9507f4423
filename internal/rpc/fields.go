package rpc

import (
	"math"
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/fekuna/smart-inventory/internal/model"
)

func field(s *structpb.Struct, key string) (*structpb.Value, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, false
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, false
	}
	return v, true
}

// String returns the field as text; numbers are formatted, missing is "".
func String(s *structpb.Struct, key string) string {
	v, ok := field(s, key)
	if !ok {
		return ""
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64)
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue)
	}
	return ""
}

func RequiredString(s *structpb.Struct, key string) (string, error) {
	str := strings.TrimSpace(String(s, key))
	if str == "" {
		return "", model.InvalidInput("%s is required", key)
	}
	return str, nil
}

// Float accepts a number or a numeric string.
func Float(s *structpb.Struct, key string) (float64, error) {
	v, ok := field(s, key)
	if !ok {
		return 0, model.InvalidInput("%s is required", key)
	}
	var f float64
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		f = k.NumberValue
	case *structpb.Value_StringValue:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(k.StringValue), 64)
		if err != nil {
			return 0, model.InvalidInput("%s must be a number", key)
		}
		f = parsed
	default:
		return 0, model.InvalidInput("%s must be a number", key)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, model.InvalidInput("%s must be a number", key)
	}
	return f, nil
}

// Int accepts a whole number or a numeric string.
func Int(s *structpb.Struct, key string) (int, error) {
	f, err := Float(s, key)
	if err != nil {
		if _, ok := field(s, key); ok {
			return 0, model.InvalidInput("%s must be a whole number", key)
		}
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, model.InvalidInput("%s must be a whole number", key)
	}
	return int(f), nil
}

// OptionalInt treats a missing, null or blank field as unset.
func OptionalInt(s *structpb.Struct, key string) (*int, error) {
	v, ok := field(s, key)
	if !ok {
		return nil, nil
	}
	if str, isString := v.GetKind().(*structpb.Value_StringValue); isString && strings.TrimSpace(str.StringValue) == "" {
		return nil, nil
	}
	i, err := Int(s, key)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func OptionalFloat(s *structpb.Struct, key string, fallback float64) (float64, error) {
	if _, ok := field(s, key); !ok {
		return fallback, nil
	}
	return Float(s, key)
}
