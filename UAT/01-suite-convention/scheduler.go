// Package scheduler schedules reminders against a clock and a store. Its tests use a testify suite whose mocks are
// verified by the generated VerifyStroblMocksUnused method.
package scheduler

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Clock tells the current time.
type Clock interface {
	Now() time.Time
}

// Store keeps scheduled reminders.
type Store interface {
	Save(name string, at time.Time) error
	Pending() []string
}

// Scheduler schedules reminders relative to its clock.
type Scheduler struct {
	Clock Clock
	Store Store
}

// Pending lists the reminders still waiting.
func (s *Scheduler) Pending() []string {
	return s.Store.Pending()
}

// RemindIn schedules name to fire after the given delay.
func (s *Scheduler) RemindIn(name string, after time.Duration) error {
	if after <= 0 {
		return errors.Wrapf(ErrNotInFuture, "%s in %s", name, after)
	}

	err := s.Store.Save(name, s.Clock.Now().Add(after))
	if err != nil {
		return errors.Wrapf(err, "failed to save %s", name)
	}

	return nil
}

// Exported variables.
var (
	ErrNotInFuture = errors.New("reminder is not in the future")
)
