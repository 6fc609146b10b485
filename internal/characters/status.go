package characters

import (
	"errors"
	"fmt"
)

// Status is a character's position in the career lifecycle.
type Status string

const (
	StatusActive             Status = "active"
	StatusUnderInvestigation Status = "under_investigation"
	StatusDetained           Status = "detained"
	StatusImprisoned         Status = "imprisoned"
	StatusExiled             Status = "exiled"
	StatusExecuted           Status = "executed"
	StatusDead               Status = "dead"
	StatusDisappeared        Status = "disappeared"
	StatusRetired            Status = "retired"
	StatusRehabilitated      Status = "rehabilitated"
)

var statusText = map[Status]string{
	StatusActive:             "Active",
	StatusUnderInvestigation: "Under Investigation",
	StatusDetained:           "Detained",
	StatusImprisoned:         "Imprisoned",
	StatusExiled:             "Exiled",
	StatusExecuted:           "Executed",
	StatusDead:               "Dead",
	StatusDisappeared:        "Disappeared",
	StatusRetired:            "Retired",
	StatusRehabilitated:      "Rehabilitated",
}

// transitions lists the permitted edges of the lifecycle. Executed and dead
// have no outgoing edges.
var transitions = map[Status][]Status{
	StatusActive:             {StatusUnderInvestigation, StatusDetained, StatusRetired},
	StatusUnderInvestigation: {StatusImprisoned, StatusExiled, StatusExecuted, StatusDead, StatusDisappeared},
	StatusDetained:           {StatusImprisoned, StatusExiled, StatusExecuted, StatusDead, StatusDisappeared},
	StatusImprisoned:         {StatusRehabilitated},
	StatusExiled:             {StatusRehabilitated},
	StatusDisappeared:        {StatusRehabilitated},
	StatusRehabilitated:      {StatusActive},
}

// DisplayText returns the status as shown to the player.
func (s Status) DisplayText() string {
	if t, ok := statusText[s]; ok {
		return t
	}
	return string(s)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusText[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusExecuted || s == StatusDead
}

// IsPresent reports whether a character in status s still moves within the
// apparatus and can hold relationships.
func (s Status) IsPresent() bool {
	switch s {
	case StatusActive, StatusUnderInvestigation, StatusDetained, StatusRehabilitated:
		return true
	}
	return false
}

// CanTransition reports whether the edge from -> to is permitted.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ErrInvalidTransition matches any *TransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// TransitionError reports a status edge that the lifecycle does not permit.
type TransitionError struct {
	Character string
	From, To  Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Character, e.From, e.To)
}

// Is lets errors.Is(err, ErrInvalidTransition) match.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
