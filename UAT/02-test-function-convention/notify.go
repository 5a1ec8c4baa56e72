// Package notify delivers messages to recipients. Its tests use plain test functions on a fixture whose mocks are
// verified by the generated VerifyStroblMocksUnused method.
package notify

// Log records delivery failures.
type Log interface {
	Failed(to string, err error)
}

// Notifier sends a message to many recipients.
type Notifier struct {
	Sender Sender
	Log    Log
}

// NotifyAll sends message to every recipient and returns how many deliveries succeeded. Failures are logged.
func (n *Notifier) NotifyAll(message string, recipients ...string) int {
	delivered := 0

	for _, to := range recipients {
		err := n.Sender.Send(to, message)
		if err != nil {
			n.Log.Failed(to, err)

			continue
		}

		delivered++
	}

	return delivered
}

// Sender delivers a message to one recipient.
type Sender interface {
	Send(to, message string) error
}
