package notify_test

import (
	"fmt"
	"testing"

	"github.com/gstrobl17/stroblmocks/stroblmock"
)

// MockLog is a notify.Log that records its calls.
type MockLog struct {
	calledMethods      logMethods
	assignedParameters logParameters
	failed             []string
}

// Failed records the call and the recipient.
func (m *MockLog) Failed(to string, _ error) {
	m.calledMethods |= logFailed
	m.assignedParameters |= logTo | logErr
	m.failed = append(m.failed, to)
}

// StroblMirror exposes the call and parameter tracking for verification.
func (m *MockLog) StroblMirror() []stroblmock.Child {
	return []stroblmock.Child{
		{Label: stroblmock.CalledMethods, Value: m.calledMethods},
		{Label: stroblmock.AssignedParameters, Value: m.assignedParameters},
	}
}

// MockSender is a notify.Sender that records its calls and fails for configured recipients.
type MockSender struct {
	calledMethods      senderMethods
	assignedParameters senderParameters
	failFor            map[string]error
	sent               []string
}

// Send records the call and its parameters.
func (m *MockSender) Send(to, message string) error {
	m.calledMethods |= senderSend
	m.assignedParameters |= senderTo | senderMessage

	if err := m.failFor[to]; err != nil {
		return err
	}

	m.sent = append(m.sent, to+": "+message)

	return nil
}

// StroblMirror exposes the call and parameter tracking for verification.
func (m *MockSender) StroblMirror() []stroblmock.Child {
	return []stroblmock.Child{
		{Label: stroblmock.CalledMethods, Value: m.calledMethods},
		{Label: stroblmock.AssignedParameters, Value: m.assignedParameters},
	}
}

type logMethods uint8

// logMethods values.
const (
	logFailed logMethods = 1 << iota
)

type logParameters uint8

// logParameters values.
const (
	logTo logParameters = 1 << iota
	logErr
)

type senderMethods uint8

// senderMethods values.
const (
	senderSend senderMethods = 1 << iota
)

type senderParameters uint8

// senderParameters values.
const (
	senderTo senderParameters = 1 << iota
	senderMessage
)

// recordingTB captures the errors reported by a verification method so tests can inspect them.
type recordingTB struct {
	testing.TB

	errors []string
}

func (r *recordingTB) Error(args ...any) {
	r.errors = append(r.errors, fmt.Sprint(args...))
}

func (r *recordingTB) Helper() {}

func (m logMethods) String() string {
	return setString(m, "failed")
}

func (p logParameters) String() string {
	return setString(p, "to", "err")
}

func (m senderMethods) String() string {
	return setString(m, "send")
}

func (p senderParameters) String() string {
	return setString(p, "to", "message")
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
