package params

import (
	"reflect"
	"strings"
)

// Common vtypes. Literal parsing produces int, float64, string, bool and
// []any, so these cover values supplied from the command line or files.
var (
	Int           = reflect.TypeFor[int]()
	Float         = reflect.TypeFor[float64]()
	String        = reflect.TypeFor[string]()
	Bool          = reflect.TypeFor[bool]()
	ContainerType = reflect.TypeFor[*Container]()
	ColorType     = colorType
	AutoColorType = autoColorType
	ErrorModeType = reflect.TypeFor[ErrorMode]()
)

// Number is the vtype set for int or float64 values.
var Number = []reflect.Type{Int, Float}

func acceptsType(types []reflect.Type, t reflect.Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func instanceOf(types []reflect.Type, value any) bool {
	if len(types) == 0 {
		return true
	}
	rt := reflect.TypeOf(value)
	if rt == nil {
		return false
	}
	for _, t := range types {
		if rt == t {
			return true
		}
		if t.Kind() == reflect.Interface && rt.Implements(t) {
			return true
		}
	}
	return false
}

func typeNames(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, " or ")
}

func isSequence(value any) bool {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return false
	}
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

// normalizeSequence copies a sequence into []T when a single vtype is
// declared, otherwise into []any. Elements must already be accepted.
func normalizeSequence(types []reflect.Type, value any) any {
	rv := reflect.ValueOf(value)
	if len(types) == 1 && types[0].Kind() != reflect.Interface {
		out := reflect.MakeSlice(reflect.SliceOf(types[0]), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(reflect.ValueOf(rv.Index(i).Interface()))
		}
		return out.Interface()
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func sequenceElements(value any) []any {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// sameValue decides whether an assignment changes a parameter. Containers
// compare by identity and handles by referent identity.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *Container:
		bv, ok := b.(*Container)
		return ok && av == bv
	case Handle:
		bv, ok := b.(Handle)
		return ok && av == bv
	}
	return reflect.DeepEqual(a, b)
}
