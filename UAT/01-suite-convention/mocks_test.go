package scheduler_test

import (
	"time"

	"github.com/gstrobl17/stroblmocks/stroblmock"
)

type clockMethods uint8

// clockMethods values.
const (
	clockNow clockMethods = 1 << iota
)

// MockClock is a scheduler.Clock that records its calls.
type MockClock struct {
	calledMethods clockMethods
	now           time.Time
}

// Now records the call and returns the configured time.
func (m *MockClock) Now() time.Time {
	m.calledMethods |= clockNow

	return m.now
}

// StroblMirror exposes the call tracking for verification.
func (m *MockClock) StroblMirror() []stroblmock.Child {
	return []stroblmock.Child{
		{Label: stroblmock.CalledMethods, Value: m.calledMethods},
	}
}

// MockStore is a scheduler.Store that records its calls and the parameters it received.
type MockStore struct {
	calledMethods      storeMethods
	assignedParameters storeParameters
	name               string
	at                 time.Time
	pending            []string
	saveErr            error
}

// Pending records the call and returns the configured reminders.
func (m *MockStore) Pending() []string {
	m.calledMethods |= storePending

	return m.pending
}

// Save records the call and its parameters and returns the configured error.
func (m *MockStore) Save(name string, at time.Time) error {
	m.calledMethods |= storeSave
	m.assignedParameters |= storeName | storeAt
	m.name = name
	m.at = at

	return m.saveErr
}

// StroblMirror exposes the call and parameter tracking for verification.
func (m *MockStore) StroblMirror() []stroblmock.Child {
	return []stroblmock.Child{
		{Label: stroblmock.CalledMethods, Value: m.calledMethods},
		{Label: stroblmock.AssignedParameters, Value: m.assignedParameters},
	}
}

type storeMethods uint8

// storeMethods values.
const (
	storeSave storeMethods = 1 << iota
	storePending
)

type storeParameters uint8

// storeParameters values.
const (
	storeName storeParameters = 1 << iota
	storeAt
)

func (m clockMethods) String() string {
	return setString(m, "now")
}

func (m storeMethods) String() string {
	return setString(m, "save", "pending")
}

func (p storeParameters) String() string {
	return setString(p, "name", "at")
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
