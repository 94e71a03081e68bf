package biometric

// OutcomeKind classifies a biometric prompt result.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeCancelled
	OutcomeUnavailable
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the full result of one prompt. Err is set for Failed.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

func (o Outcome) OK() bool { return o.Kind == OutcomeSuccess }
