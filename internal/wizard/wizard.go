// Package wizard models the onboarding flow as an explicit finite-state
// machine. Transitions are pure functions over an immutable Session value.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

// State is a named step of the flow.
type State int

const (
	Welcome State = iota
	Registration
	Subscription
	Payment
	Profile
	Journey
)

var stateNames = [...]string{
	Welcome:      "welcome",
	Registration: "registration",
	Subscription: "subscription",
	Payment:      "payment",
	Profile:      "profile",
	Journey:      "journey",
}

func (s State) String() string {
	if s < Welcome || s > Journey {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

var (
	// ErrTransition is returned when Next is called on a terminal state.
	ErrTransition = errors.New(config.ErrWizardTransition)

	// ErrIncomplete is returned when a guard rejects the current session data.
	// It wraps the specific cause.
	ErrIncomplete = errors.New(config.ErrWizardIncomplete)

	ErrNameRequired = errors.New(config.ErrWizardName)
	ErrTierRequired = errors.New(config.ErrWizardTier)
)

// Session carries the data collected along the flow.
type Session struct {
	State     State
	Name      string
	BirthDate string
	Tier      Tier
	Paid      bool
}

// Restart returns a fresh session at the welcome step.
func Restart() Session {
	return Session{State: Welcome}
}

// WithRegistration returns a copy of s holding the registration form values.
func (s Session) WithRegistration(name, birthDate string) Session {
	s.Name = strings.TrimSpace(name)
	s.BirthDate = strings.TrimSpace(birthDate)
	return s
}

// WithTier returns a copy of s with the chosen subscription tier.
func (s Session) WithTier(t Tier) Session {
	s.Tier = t
	return s
}

// Next advances to the following step if the guard of the current step passes.
func Next(s Session) (Session, error) {
	// s is a copy: a rejected transition returns the input unchanged.
	switch s.State {
	case Welcome:
		s.State = Registration
	case Registration:
		if s.Name == "" {
			return s, fmt.Errorf("%w: %w", ErrIncomplete, ErrNameRequired)
		}
		if _, err := numerology.ParseDate(s.BirthDate); err != nil {
			return s, fmt.Errorf("%w: %w", ErrIncomplete, err)
		}
		s.State = Subscription
	case Subscription:
		if _, ok := LookupTier(s.Tier); !ok {
			return s, fmt.Errorf("%w: %w", ErrIncomplete, ErrTierRequired)
		}
		s.State = Payment
	case Payment:
		// No processor behind this step; confirming is paying.
		s.Paid = true
		s.State = Profile
	case Profile:
		s.State = Journey
	default:
		return s, fmt.Errorf("%w: from %s", ErrTransition, s.State)
	}
	return s, nil
}

// Back returns to the previous step. Welcome stays at welcome and a paid
// session cannot step back into payment.
func Back(s Session) Session {
	switch s.State {
	case Welcome:
	case Profile:
		if !s.Paid {
			s.State = Payment
		}
	default:
		// States are declared in flow order.
		s.State--
	}
	return s
}
