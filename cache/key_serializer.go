package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// maxSegmentLen bounds individual key segments; longer ones are replaced
// by an xxhash digest so keys stay shard-friendly regardless of how large
// an identity value is.
const maxSegmentLen = 64

// KeySerializer builds a stable cache key from a scope (typically a schema
// name) plus arbitrary identity values. Implementations must produce
// identical keys for identical inputs across calls.
type KeySerializer interface {
	SerializeKey(scope string, args ...any) string
}

// defaultKeySerializer serializes values reflectively: deterministic map
// ordering, recursive slices, exported struct fields, JSON as the fallback
// for anything else.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// SerializeKey joins the scope and each serialized argument with
// KeySeparator. With no arguments the scope alone is the key.
func (s *defaultKeySerializer) SerializeKey(scope string, args ...any) string {
	if len(args) == 0 {
		return scope
	}
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, scope)
	for _, arg := range args {
		parts = append(parts, digest(s.serializeValue(arg)))
	}
	return strings.Join(parts, KeySeparator)
}

// digest caps a segment at maxSegmentLen by substituting an xxhash of the
// full serialized form.
func digest(segment string) string {
	if len(segment) <= maxSegmentLen {
		return segment
	}
	return fmt.Sprintf("xx:%016x", xxhash.Sum64String(segment))
}

func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}
		return s.serializeSeq("slice", rv)
	case reflect.Array:
		return s.serializeSeq("array", rv)
	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		return s.serializeMap(rv)
	case reflect.Struct:
		return s.serializeStruct(rv)
	case reflect.Func, reflect.Chan:
		// Pointer formatting is stable per process, which is all a cache
		// key needs.
		return fmt.Sprintf("%s:%p", rv.Kind(), v)
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return fmt.Sprintf("%v", v)
	default:
		return s.jsonFallback(v)
	}
}

func (s *defaultKeySerializer) serializeSeq(kind string, rv reflect.Value) string {
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = s.serializeValue(rv.Index(i).Interface())
	}
	return fmt.Sprintf("%s[%d]:{%s}", kind, len(parts), strings.Join(parts, ","))
}

// serializeMap emits key=value pairs sorted by serialized key so map
// iteration order never leaks into cache keys.
func (s *defaultKeySerializer) serializeMap(rv reflect.Value) string {
	pairs := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, fmt.Sprintf("%s=%s",
			s.serializeValue(iter.Key().Interface()),
			s.serializeValue(iter.Value().Interface())))
	}
	sort.Strings(pairs)
	return fmt.Sprintf("map[%d]:{%s}", len(pairs), strings.Join(pairs, ","))
}

func (s *defaultKeySerializer) serializeStruct(rv reflect.Value) string {
	rt := rv.Type()
	parts := make([]string, 0, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%s", field.Name, s.serializeValue(rv.Field(i).Interface())))
	}
	return fmt.Sprintf("struct:{%s}", strings.Join(parts, ","))
}

func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%s", reflect.TypeOf(v).String())
	}
	return fmt.Sprintf("json:%s", data)
}
