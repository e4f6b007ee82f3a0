// Package helpers holds small guards shared by constructors.
package helpers

import "reflect"

// Required panics with "<component>: <what> is required" when v is nil (including typed nil
// pointers, maps, slices, channels and funcs); otherwise it returns v.
func Required[T any](v T, component, what string) T {
	if isNil(v) {
		panic(component + ": " + what + " is required")
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
