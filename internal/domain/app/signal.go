package app

import "fmt"

// SignalKind enumerates the control signals
type SignalKind int

const (
	SignalContinue SignalKind = iota
	SignalExit
	SignalLaunch
)

// String returns the signal kind name
func (k SignalKind) String() string {
	switch k {
	case SignalContinue:
		return "continue"
	case SignalExit:
		return "exit"
	case SignalLaunch:
		return "launch"
	default:
		return "unknown"
	}
}

// Signal is what a Step hands back to the scheduler
type Signal struct {
	Kind   SignalKind
	Target Descriptor
}

var (
	// Continue keeps the current instance running
	Continue = Signal{Kind: SignalContinue}
	// Exit returns to the default app
	Exit = Signal{Kind: SignalExit}
)

// Launch replaces the current instance with a fresh instance of d
func Launch(d Descriptor) Signal {
	return Signal{Kind: SignalLaunch, Target: d}
}

// String describes the signal for logs
func (s Signal) String() string {
	if s.Kind == SignalLaunch {
		return fmt.Sprintf("launch(%s)", s.Target.ID)
	}
	return s.Kind.String()
}
