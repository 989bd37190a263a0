package daycounter

import (
	"errors"
	"fmt"
	"strings"
)

// DismissPolicy decides whether the date picker stays open after a change.
type DismissPolicy int

const (
	// AutoDismiss closes the picker as soon as a date is chosen.
	AutoDismiss DismissPolicy = iota
	// ManualDismiss keeps the picker open until it is dismissed explicitly.
	ManualDismiss
)

var ErrUnknownPolicy = errors.New("unknown picker dismiss policy")

func ParseDismissPolicy(s string) (DismissPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "android":
		return AutoDismiss, nil
	case "manual", "ios":
		return ManualDismiss, nil
	default:
		return AutoDismiss, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

func (p DismissPolicy) String() string {
	if p == ManualDismiss {
		return "manual"
	}
	return "auto"
}

// visibleAfterChange is the picker visibility once a change event was handled.
func (p DismissPolicy) visibleAfterChange() bool {
	return p == ManualDismiss
}
