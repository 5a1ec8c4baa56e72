// Package stroblmock defines what the VerifyStroblMocksUnused methods generated by stroblgen require of a mock.
//
// A Strobl mock records which of its methods were called and which parameters were assigned in option-set style
// values whose String form lists the members, e.g. "[.dateCalled, .reset]". The generated verification treats the
// empty set "[]" as unused and reports anything else.
package stroblmock

import (
	"reflect"
	"strings"
)

// Child is one labelled value exposed by a Reflectable mock.
type Child struct {
	Label string
	Value any
}

// Reflectable is implemented by mocks that expose their tracking state for verification.
// Children are inspected in the order returned. Generated code never calls StroblMirror on a nil mock, including a
// nil pointer stored in an interface field.
type Reflectable interface {
	StroblMirror() []Child
}

// Labels recognised by generated verification code.
const (
	CalledMethods            = "calledMethods"
	AssignedParameters       = "assignedParameters"
	CalledStaticMethods      = "calledStaticMethods"
	AssignedStaticParameters = "assignedStaticParameters"
)

// EmptySet is the String form of a tracking value with no members.
const EmptySet = "[]"

// FormatSet renders option-set members the way generated verification code expects: "[.a, .b]".
// No members renders as EmptySet.
func FormatSet(members ...string) string {
	if len(members) == 0 {
		return EmptySet
	}

	var buf strings.Builder

	buf.WriteString("[")

	for i, member := range members {
		if i > 0 {
			buf.WriteString(", ")
		}

		buf.WriteString(".")
		buf.WriteString(member)
	}

	buf.WriteString("]")

	return buf.String()
}

// IsNil reports whether v is nil or an interface holding a nil pointer, map, slice, channel or func.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	value := reflect.ValueOf(v)

	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return value.IsNil()
	default:
		return false
	}
}
