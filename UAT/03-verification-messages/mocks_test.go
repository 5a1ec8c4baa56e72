package messages

import (
	"fmt"
	"testing"

	"github.com/gstrobl17/stroblmocks/stroblmock"
)

// MockClock is a well-formed Strobl mock.
type MockClock struct {
	calledMethods      clockMethods
	assignedParameters clockParameters
}

func (m *MockClock) StroblMirror() []stroblmock.Child {
	return []stroblmock.Child{
		{Label: stroblmock.CalledMethods, Value: m.calledMethods},
		{Label: stroblmock.AssignedParameters, Value: m.assignedParameters},
	}
}

// MockFactory tracks package-level functions instead of methods.
type MockFactory struct {
	calledStaticMethods      factoryMethods
	assignedStaticParameters factoryParameters
}

func (m *MockFactory) StroblMirror() []stroblmock.Child {
	return []stroblmock.Child{
		{Label: stroblmock.CalledStaticMethods, Value: m.calledStaticMethods},
		{Label: stroblmock.AssignedStaticParameters, Value: m.assignedStaticParameters},
	}
}

type clockMethods uint8

// clockMethods values.
const (
	clockNow clockMethods = 1 << iota
	clockSleep
)

type clockParameters uint8

// clockParameters values.
const (
	clockDuration clockParameters = 1 << iota
)

type factoryMethods uint8

// factoryMethods values.
const (
	factoryMake factoryMethods = 1 << iota
)

type factoryParameters uint8

// factoryParameters values.
const (
	factoryZone factoryParameters = 1 << iota
)

// plainClock has no tracking at all.
type plainClock struct{}

// rawClock tracks calls in a value without a String method.
type rawClock struct {
	calledMethods uint8
}

// recordingTB captures the errors reported by a verification method so tests can inspect them.
type recordingTB struct {
	testing.TB

	errors []string
}

// untrackedClock only tracks parameters, so nothing says whether it was called.
type untrackedClock struct{}

func (m clockMethods) String() string {
	return setString(m, "now", "sleep")
}

func (p clockParameters) String() string {
	return setString(p, "duration")
}

func (m factoryMethods) String() string {
	return setString(m, "make")
}

func (p factoryParameters) String() string {
	return setString(p, "zone")
}

func (m *rawClock) StroblMirror() []stroblmock.Child {
	return []stroblmock.Child{
		{Label: stroblmock.CalledMethods, Value: m.calledMethods},
	}
}

func (r *recordingTB) Error(args ...any) {
	r.errors = append(r.errors, fmt.Sprint(args...))
}

func (r *recordingTB) Helper() {}

func (m *untrackedClock) StroblMirror() []stroblmock.Child {
	return []stroblmock.Child{
		{Label: stroblmock.AssignedParameters, Value: clockParameters(0)},
		{Label: "unrelated", Value: 42},
	}
}

// setString renders the members of an option set, naming bit i names[i].
func setString[T ~uint8](set T, names ...string) string {
	var members []string

	for i, name := range names {
		if set&(T(1)<<i) != 0 {
			members = append(members, name)
		}
	}

	return stroblmock.FormatSet(members...)
}
