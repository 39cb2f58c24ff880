// SPDX-License-Identifier: ice License 1.0

package mixpanel

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/goccy/go-reflect"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/mixpanel/time"
)

func Null() Value {
	return Value{kind: KindNull}
}

func String(val string) Value {
	return Value{kind: KindString, str: val}
}

func Int(val int64) Value {
	return Value{kind: KindNumber, isInt: true, integer: val}
}

// Float panics for NaN and Inf, use ValueOf for untrusted input.
func Float(val float64) Value {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		panic(errors.Wrapf(ErrUnsupportedValue, "%v is not a valid JSON number", val))
	}

	return Value{kind: KindNumber, float: val}
}

func Bool(val bool) Value {
	return Value{kind: KindBool, boolean: val}
}

func Array(vals ...Value) Value {
	return Value{kind: KindArray, array: append(make([]Value, 0, len(vals)), vals...)}
}

func Object(props Properties) Value {
	obj := make(Properties, len(props))
	for k, v := range props {
		obj[k] = v
	}

	return Value{kind: KindObject, object: obj}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Interface returns the plain Go representation: nil, string, int64, float64, bool, []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.isInt {
			return v.integer
		}

		return v.float
	case KindBool:
		return v.boolean
	case KindArray:
		arr := make([]any, 0, len(v.array))
		for _, elem := range v.array {
			arr = append(arr, elem.Interface())
		}

		return arr
	case KindObject:
		return v.object.Interface()
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str) //nolint:wrapcheck // We're just proxying it.
	case KindNumber:
		if v.isInt {
			return strconv.AppendInt(nil, v.integer, 10), nil //nolint:mnd,gomnd // Decimal.
		}

		return json.Marshal(v.float) //nolint:wrapcheck // We're just proxying it.
	case KindBool:
		return strconv.AppendBool(nil, v.boolean), nil
	case KindArray:
		if v.array == nil {
			return []byte("[]"), nil
		}

		return json.Marshal(v.array) //nolint:wrapcheck // We're just proxying it.
	case KindObject:
		if v.object == nil {
			return []byte("{}"), nil
		}

		return json.Marshal(map[string]Value(v.object)) //nolint:wrapcheck // We're just proxying it.
	default:
		return []byte("null"), nil
	}
}

func (*Value) UnmarshalJSON(context.Context, []byte) error {
	return ErrWriteOnly
}

func (p Properties) Interface() map[string]any {
	res := make(map[string]any, len(p))
	for k, v := range p {
		res[k] = v.Interface()
	}

	return res
}

// PropertiesOf converts every entry of props, reporting all the keys that couldn't be converted.
func PropertiesOf(props map[string]any) (Properties, error) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	res := make(Properties, len(props))
	var errs []error
	for _, k := range keys {
		val, err := ValueOf(props[k])
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "property `%v`", k))

			continue
		}
		res[k] = val
	}
	if err := multierror.Append(nil, errs...).ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "invalid properties")
	}

	return res, nil
}

// MustPropertiesOf is PropertiesOf for static property bags.
func MustPropertiesOf(props map[string]any) Properties {
	res, err := PropertiesOf(props)
	if err != nil {
		panic(err)
	}

	return res
}

// ValueOf converts val to a Value. Structs are converted through their JSON representation.
//
//nolint:funlen,gocyclo,revive,cyclop // A lot of types.
func ValueOf(val any) (Value, error) {
	switch typed := val.(type) {
	case nil:
		return Null(), nil
	case Value:
		return typed, nil
	case *Value:
		if typed == nil {
			return Null(), nil
		}

		return *typed, nil
	case Properties:
		return Object(typed), nil
	case string:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int32:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case float64:
		return floatValue(typed)
	case json.Number:
		return numberValue(typed)
	case stdlibtime.Time:
		return String(typed.UTC().Format(stdlibtime.RFC3339)), nil
	case *time.Time:
		if typed == nil || typed.Time == nil {
			return Null(), nil
		}

		return Int(typed.Millis()), nil
	case map[string]any:
		props, err := PropertiesOf(typed)
		if err != nil {
			return Null(), err
		}

		return Value{kind: KindObject, object: props}, nil
	case []any:
		return arrayValue(len(typed), func(ix int) any { return typed[ix] })
	case fmt.Stringer:
		return String(typed.String()), nil
	default:
		return reflectedValue(reflect.ValueOf(val))
	}
}

//nolint:exhaustive,gocyclo,revive,cyclop // The rest are unsupported.
func reflectedValue(val reflect.Value) (Value, error) {
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return Null(), nil
		}

		return ValueOf(val.Elem().Interface())
	case reflect.String:
		return String(val.String()), nil
	case reflect.Bool:
		return Bool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := val.Uint(); u <= math.MaxInt64 {
			return Int(int64(u)), nil
		}

		return floatValue(float64(val.Uint()))
	case reflect.Float32, reflect.Float64:
		return floatValue(val.Float())
	case reflect.Slice:
		if val.IsNil() {
			return Null(), nil
		}

		return arrayValue(val.Len(), func(ix int) any { return val.Index(ix).Interface() })
	case reflect.Array:
		return arrayValue(val.Len(), func(ix int) any { return val.Index(ix).Interface() })
	case reflect.Map:
		if mapType := reflect.TypeOf(val.Interface()); mapType.Key().Kind() != reflect.String {
			return Null(), errors.Wrapf(ErrUnsupportedValue, "map keys must be strings, got %v", mapType.String())
		}
		if val.IsNil() {
			return Null(), nil
		}
		props := make(map[string]any, val.Len())
		for _, key := range val.MapKeys() {
			props[key.String()] = val.MapIndex(key).Interface()
		}

		return ValueOf(props)
	case reflect.Struct:
		return structValue(val.Interface())
	default:
		return Null(), errors.Wrapf(ErrUnsupportedValue, "%v", val.Kind())
	}
}

func arrayValue(length int, elem func(int) any) (Value, error) {
	arr := make([]Value, 0, length)
	for ix := range length {
		val, err := ValueOf(elem(ix))
		if err != nil {
			return Null(), errors.Wrapf(err, "element %v", ix)
		}
		arr = append(arr, val)
	}

	return Value{kind: KindArray, array: arr}, nil
}

func floatValue(val float64) (Value, error) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return Null(), errors.Wrapf(ErrUnsupportedValue, "%v is not a valid JSON number", val)
	}

	return Value{kind: KindNumber, float: val}, nil
}

func numberValue(val json.Number) (Value, error) {
	if i, err := val.Int64(); err == nil {
		return Int(i), nil
	}
	f, err := val.Float64()
	if err != nil {
		return Null(), errors.Wrapf(ErrUnsupportedValue, "invalid number %q", val)
	}

	return floatValue(f)
}

func structValue(val any) (Value, error) {
	raw, err := json.Marshal(val)
	if err != nil {
		return Null(), errors.Wrapf(ErrUnsupportedValue, "%T can't be marshalled: %v", val, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var generic any
	if err = decoder.Decode(&generic); err != nil {
		return Null(), errors.Wrapf(err, "failed to decode %T", val)
	}

	return ValueOf(generic)
}
