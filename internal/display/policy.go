package display

import "fmt"

// FailurePolicy decides what a decode failure does to the rest of a run.
type FailurePolicy int

const (
	// FailSkip logs the failure and moves on to the next frame.
	FailSkip FailurePolicy = iota
	// FailAbort stops the run at the first failed frame.
	FailAbort
)

func (p FailurePolicy) String() string {
	switch p {
	case FailSkip:
		return "skip"
	case FailAbort:
		return "abort"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParseFailurePolicy parses "skip" or "abort".
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "skip", "":
		return FailSkip, nil
	case "abort":
		return FailAbort, nil
	default:
		return FailSkip, fmt.Errorf("unknown decode failure policy %q", s)
	}
}

// RunPolicy decides what Start does while another run is active.
type RunPolicy int

const (
	// RunReplace cancels active runs before starting the new one.
	RunReplace RunPolicy = iota
	// RunAllow lets runs overlap; each renders into the same view.
	RunAllow
	// RunReject refuses to start while a run is active.
	RunReject
)

func (p RunPolicy) String() string {
	switch p {
	case RunReplace:
		return "replace"
	case RunAllow:
		return "allow"
	case RunReject:
		return "reject"
	default:
		return fmt.Sprintf("RunPolicy(%d)", int(p))
	}
}

// ParseRunPolicy parses "replace", "allow" or "reject".
func ParseRunPolicy(s string) (RunPolicy, error) {
	switch s {
	case "replace", "":
		return RunReplace, nil
	case "allow":
		return RunAllow, nil
	case "reject":
		return RunReject, nil
	default:
		return RunReplace, fmt.Errorf("unknown run policy %q", s)
	}
}
